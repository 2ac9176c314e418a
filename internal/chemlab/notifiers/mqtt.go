package notifiers

import (
	"context"
	"fmt"
	"time"

	"github.com/daniacca/chemlab/internal/chemlab"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTNotifier publishes reaction events to an MQTT topic. Classroom
// dashboards subscribe to the topic to mirror every student vessel.
type MQTTNotifier struct {
	id     string
	topic  string
	qos    byte
	client mqtt.Client
}

// NewMQTTNotifier connects to the broker and returns a notifier
// publishing on the given topic.
func NewMQTTNotifier(id, brokerURL, clientID, topic string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(10 * time.Second)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("timed out connecting to MQTT broker %s", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", brokerURL, err)
	}

	return &MQTTNotifier{
		id:     id,
		topic:  topic,
		qos:    1,
		client: client,
	}, nil
}

// ID returns the notifier ID
func (mn *MQTTNotifier) ID() string {
	return mn.id
}

// Type returns the notifier type
func (mn *MQTTNotifier) Type() string {
	return "mqtt"
}

// Notify publishes the reaction event on the configured topic
func (mn *MQTTNotifier) Notify(ctx context.Context, event chemlab.ReactionEvent) error {
	jsonData, err := event.JSON()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	token := mn.client.Publish(mn.topic, mn.qos, false, jsonData)

	done := make(chan struct{})
	go func() {
		token.Wait()
		close(done)
	}()

	select {
	case <-done:
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close disconnects from the broker
func (mn *MQTTNotifier) Close() error {
	mn.client.Disconnect(250)
	return nil
}
