package chemlab

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"
)

// mockNotifier is a test implementation of Notifier
type mockNotifier struct {
	id          string
	notifyFunc  func(context.Context, ReactionEvent) error
	closeFunc   func() error
	notifyCount int
	mu          sync.Mutex
}

func (m *mockNotifier) ID() string   { return m.id }
func (m *mockNotifier) Type() string { return "mock" }
func (m *mockNotifier) Notify(ctx context.Context, event ReactionEvent) error {
	m.mu.Lock()
	m.notifyCount++
	m.mu.Unlock()
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, event)
	}
	return nil
}
func (m *mockNotifier) Close() error {
	if m.closeFunc != nil {
		return m.closeFunc()
	}
	return nil
}

func (m *mockNotifier) getNotifyCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifyCount
}

func testEvent() ReactionEvent {
	return NewReactionEvent(
		[]string{"hydrochloric acid", "sodium hydroxide"},
		TemperatureRoom, ConcentrationDilute,
		"hcl-naoh-neutralization",
		ReactionResult{Equation: "HCl(aq) + NaOH(aq) → NaCl(aq) + H₂O(l)", ReactionType: "neutralization"},
	)
}

func TestNewNotificationManager(t *testing.T) {
	nm := NewNotificationManager()
	if nm == nil {
		t.Fatal("NewNotificationManager returned nil")
	}

	notifiers := nm.ListNotifiers()
	if notifiers == nil {
		t.Error("Expected non-nil notifiers list")
	}
	if len(notifiers) != 0 {
		t.Errorf("Expected empty notifiers list, got %d", len(notifiers))
	}

	if err := nm.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
}

func TestNotificationManager_RegisterNotifier(t *testing.T) {
	nm := NewNotificationManager()
	defer nm.Close()

	notifier := &mockNotifier{id: "test-1"}
	if err := nm.RegisterNotifier(notifier); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// duplicate ID
	if err := nm.RegisterNotifier(&mockNotifier{id: "test-1"}); err == nil {
		t.Error("Expected error for duplicate registration")
	}

	if err := nm.RegisterNotifier(nil); err == nil {
		t.Error("Expected error for nil notifier")
	}
	if err := nm.RegisterNotifier(&mockNotifier{id: ""}); err == nil {
		t.Error("Expected error for empty notifier ID")
	}

	got, ok := nm.GetNotifier("test-1")
	if !ok || got != notifier {
		t.Error("GetNotifier did not return the registered notifier")
	}
}

func TestNotificationManager_UnregisterNotifier(t *testing.T) {
	nm := NewNotificationManager()
	defer nm.Close()

	closeCalled := false
	notifier := &mockNotifier{
		id:        "test-1",
		closeFunc: func() error { closeCalled = true; return nil },
	}
	if err := nm.RegisterNotifier(notifier); err != nil {
		t.Fatalf("RegisterNotifier failed: %v", err)
	}

	if err := nm.UnregisterNotifier("test-1"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if !closeCalled {
		t.Error("Expected Close to be called on unregister")
	}
	if _, ok := nm.GetNotifier("test-1"); ok {
		t.Error("notifier still registered after unregister")
	}

	if err := nm.UnregisterNotifier("absent"); err == nil {
		t.Error("Expected error for unknown notifier ID")
	}
}

func TestNotificationManager_Publish(t *testing.T) {
	nm := NewNotificationManager()
	defer nm.Close()

	first := &mockNotifier{id: "first"}
	second := &mockNotifier{id: "second"}
	if err := nm.RegisterNotifier(first); err != nil {
		t.Fatalf("RegisterNotifier failed: %v", err)
	}
	if err := nm.RegisterNotifier(second); err != nil {
		t.Fatalf("RegisterNotifier failed: %v", err)
	}

	nm.Publish(testEvent())

	// delivery happens on the worker goroutine
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if first.getNotifyCount() == 1 && second.getNotifyCount() == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("expected one delivery per notifier, got first=%d second=%d",
		first.getNotifyCount(), second.getNotifyCount())
}

func TestNotificationManager_RetriesOnFailure(t *testing.T) {
	nm := NewNotificationManager()
	defer nm.Close()

	notifier := &mockNotifier{
		id: "flaky",
		notifyFunc: func(context.Context, ReactionEvent) error {
			return errors.New("delivery failed")
		},
	}
	if err := nm.RegisterNotifier(notifier); err != nil {
		t.Fatalf("RegisterNotifier failed: %v", err)
	}

	nm.Publish(testEvent())

	// 1 initial attempt + 3 retries
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if notifier.getNotifyCount() == 4 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("expected 4 delivery attempts, got %d", notifier.getNotifyCount())
}

func TestNotificationManager_PublishAfterClose(t *testing.T) {
	nm := NewNotificationManager()
	notifier := &mockNotifier{id: "test-1"}
	if err := nm.RegisterNotifier(notifier); err != nil {
		t.Fatalf("RegisterNotifier failed: %v", err)
	}
	if err := nm.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// must not panic or deliver
	nm.Publish(testEvent())
	time.Sleep(50 * time.Millisecond)
	if notifier.getNotifyCount() != 0 {
		t.Errorf("expected no deliveries after close, got %d", notifier.getNotifyCount())
	}

	// idempotent
	if err := nm.Close(); err != nil {
		t.Errorf("second Close returned error: %v", err)
	}
}

func TestReactionEventJSON(t *testing.T) {
	event := testEvent()
	data, err := event.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded["rule_id"] != "hcl-naoh-neutralization" {
		t.Errorf("unexpected rule_id: %v", decoded["rule_id"])
	}
	if decoded["timestamp"] == nil {
		t.Error("expected a timestamp")
	}
	result, ok := decoded["result"].(map[string]any)
	if !ok {
		t.Fatal("expected embedded result object")
	}
	if result["reaction_type"] != "neutralization" {
		t.Errorf("unexpected embedded reaction type: %v", result["reaction_type"])
	}
}
