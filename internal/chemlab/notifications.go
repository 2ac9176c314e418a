package chemlab

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// ReactionEvent is emitted every time a prediction produces a reaction,
// so external consumers (live beaker views, classroom dashboards) can
// follow what happens in the vessel.
type ReactionEvent struct {
	Ingredients   []string      `json:"ingredients"`
	Temperature   Temperature   `json:"temperature"`
	Concentration Concentration `json:"concentration"`
	RuleID        string        `json:"rule_id,omitempty"`
	Timestamp     int64         `json:"timestamp"`

	Result ReactionResult `json:"result"`
}

// NewReactionEvent builds an event from a prediction and its inputs.
func NewReactionEvent(ingredients []string, temp Temperature, conc Concentration, ruleID string, result ReactionResult) ReactionEvent {
	return ReactionEvent{
		Ingredients:   ingredients,
		Temperature:   temp,
		Concentration: conc,
		RuleID:        ruleID,
		Timestamp:     time.Now().Unix(),
		Result:        result,
	}
}

// JSON returns the event as JSON bytes.
func (e ReactionEvent) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Notifier is the interface every notification channel implements.
type Notifier interface {
	// ID returns a unique identifier for this notifier
	ID() string

	// Type returns the type of notifier (e.g., "webhook", "websocket", "mqtt")
	Type() string

	// Notify delivers a reaction event. The context carries cancellation
	// and timeout.
	Notify(ctx context.Context, event ReactionEvent) error

	// Close releases any resources held by the notifier
	Close() error
}

type notificationJob struct {
	Event ReactionEvent
}

// NotificationManager fans reaction events out to every registered
// notifier from a background worker, so prediction requests never block
// on slow delivery channels.
type NotificationManager struct {
	mu        sync.RWMutex
	notifiers map[string]Notifier
	jobs      chan notificationJob
	closed    bool
	wg        sync.WaitGroup
	logger    Logger
}

// NewNotificationManager creates a manager with a single worker.
func NewNotificationManager() *NotificationManager {
	return NewNotificationManagerWithLogger(NewNoOpLogger())
}

// NewNotificationManagerWithLogger creates a manager with an injected logger.
func NewNotificationManagerWithLogger(logger Logger) *NotificationManager {
	mgr := &NotificationManager{
		notifiers: make(map[string]Notifier),
		jobs:      make(chan notificationJob, 1024),
		logger:    logger,
	}
	mgr.startWorkers(1)
	return mgr
}

// RegisterNotifier registers a notifier with the manager.
func (nm *NotificationManager) RegisterNotifier(notifier Notifier) error {
	if notifier == nil {
		return fmt.Errorf("notifier cannot be nil")
	}
	id := notifier.ID()
	if id == "" {
		return fmt.Errorf("notifier ID cannot be empty")
	}

	nm.mu.Lock()
	defer nm.mu.Unlock()

	if _, exists := nm.notifiers[id]; exists {
		return fmt.Errorf("notifier with ID %s already exists", id)
	}
	nm.notifiers[id] = notifier
	return nil
}

// UnregisterNotifier removes and closes a notifier.
func (nm *NotificationManager) UnregisterNotifier(id string) error {
	nm.mu.Lock()
	notifier, exists := nm.notifiers[id]
	nm.mu.Unlock()

	if !exists {
		return fmt.Errorf("notifier with ID %s not found", id)
	}
	if err := notifier.Close(); err != nil {
		return fmt.Errorf("error closing notifier %s: %w", id, err)
	}

	nm.mu.Lock()
	delete(nm.notifiers, id)
	nm.mu.Unlock()
	return nil
}

// GetNotifier retrieves a notifier by ID.
func (nm *NotificationManager) GetNotifier(id string) (Notifier, bool) {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	notifier, exists := nm.notifiers[id]
	return notifier, exists
}

// ListNotifiers returns all registered notifier IDs.
func (nm *NotificationManager) ListNotifiers() []string {
	nm.mu.RLock()
	defer nm.mu.RUnlock()
	ids := make([]string, 0, len(nm.notifiers))
	for id := range nm.notifiers {
		ids = append(ids, id)
	}
	return ids
}

// Publish enqueues an event for delivery to every registered notifier.
// Non-blocking: events are dropped with a log line when the queue is full.
func (nm *NotificationManager) Publish(event ReactionEvent) {
	nm.mu.RLock()
	closed := nm.closed
	count := len(nm.notifiers)
	nm.mu.RUnlock()

	if closed || count == 0 {
		return
	}

	select {
	case nm.jobs <- notificationJob{Event: event}:
	default:
		nm.logger.Warnf("notification queue full, dropping event: rule_id=%s", event.RuleID)
	}
}

func (nm *NotificationManager) startWorkers(n int) {
	for i := 0; i < n; i++ {
		nm.wg.Add(1)
		go nm.worker()
	}
}

func (nm *NotificationManager) worker() {
	defer nm.wg.Done()
	for job := range nm.jobs {
		nm.dispatchJob(job)
	}
}

func (nm *NotificationManager) dispatchJob(job notificationJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	nm.mu.RLock()
	notifiers := make([]Notifier, 0, len(nm.notifiers))
	for _, n := range nm.notifiers {
		notifiers = append(notifiers, n)
	}
	nm.mu.RUnlock()

	for _, notifier := range notifiers {
		nm.notifyWithRetry(ctx, notifier, job.Event)
	}
}

// notifyWithRetry delivers with a small exponential backoff so a
// transient webhook or broker hiccup does not lose the event.
func (nm *NotificationManager) notifyWithRetry(ctx context.Context, notifier Notifier, event ReactionEvent) {
	const maxRetries = 3
	backoff := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := notifier.Notify(ctx, event)
		if err == nil {
			return
		}

		nm.logger.Warnf("notification failed: notifier=%s attempt=%d error=%v", notifier.ID(), attempt+1, err)
		if attempt == maxRetries {
			nm.logger.Errorf("notification failed after %d attempts: notifier=%s", maxRetries+1, notifier.ID())
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
			backoff *= 2
		}
	}
}

// Close shuts down the workers and closes every registered notifier.
func (nm *NotificationManager) Close() error {
	nm.mu.Lock()
	if nm.closed {
		nm.mu.Unlock()
		return nil
	}
	nm.closed = true
	close(nm.jobs)
	nm.mu.Unlock()

	nm.wg.Wait()

	nm.mu.Lock()
	defer nm.mu.Unlock()
	var errs []error
	for id, notifier := range nm.notifiers {
		if err := notifier.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing notifier %s: %w", id, err))
		}
	}
	nm.notifiers = make(map[string]Notifier)

	if len(errs) > 0 {
		return fmt.Errorf("errors closing notifiers: %v", errs)
	}
	return nil
}
