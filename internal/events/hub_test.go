package events

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vyrodovalexey/itemserver/internal/model"
)

func receive(t *testing.T, sub *Subscription) model.ItemEvent {
	t.Helper()

	select {
	case ev, ok := <-sub.C:
		if !ok {
			t.Fatal("subscription channel closed")
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return model.ItemEvent{}
	}
}

// assertClosed fails unless sub's channel is closed and drained.
func assertClosed(t *testing.T, sub *Subscription) {
	t.Helper()

	select {
	case _, ok := <-sub.C:
		if ok {
			t.Error("subscription delivered an event, want closed channel")
		}
	case <-time.After(time.Second):
		t.Error("subscription channel still open")
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub(zap.NewNop(), 0)

	if hub.bufferSize != DefaultBufferSize {
		t.Errorf("bufferSize = %d, want %d", hub.bufferSize, DefaultBufferSize)
	}
	if n := hub.Subscribers(); n != 0 {
		t.Errorf("Subscribers() = %d, want 0", n)
	}
}

func TestHub_PublishFanOut(t *testing.T) {
	// Arrange
	hub := NewHub(zap.NewNop(), 4)
	first := hub.Subscribe()
	second := hub.Subscribe()
	event := model.NewItemEvent(model.EventTypeCreated, model.Item{ID: 3, Name: "Widget", Value: 10})

	// Act
	hub.Publish(event)

	// Assert
	if n := hub.Subscribers(); n != 2 {
		t.Errorf("Subscribers() = %d, want 2", n)
	}
	if got := receive(t, first); got.ItemID != event.ItemID {
		t.Errorf("first ItemID = %d, want %d", got.ItemID, event.ItemID)
	}
	if got := receive(t, second); got.Type != event.Type {
		t.Errorf("second Type = %v, want %v", got.Type, event.Type)
	}
}

func TestHub_PublishPreservesOrder(t *testing.T) {
	// Arrange
	hub := NewHub(zap.NewNop(), 8)
	sub := hub.Subscribe()

	// Act
	for id := int64(1); id <= 5; id++ {
		hub.Publish(model.NewDeletedEvent(id))
	}

	// Assert
	for id := int64(1); id <= 5; id++ {
		if got := receive(t, sub).ItemID; got != id {
			t.Errorf("ItemID = %d, want %d", got, id)
		}
	}
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	// Arrange
	hub := NewHub(zap.NewNop(), 1)
	sub := hub.Subscribe()

	// Act
	done := make(chan struct{})
	go func() {
		for id := int64(1); id <= 10; id++ {
			hub.Publish(model.NewDeletedEvent(id))
		}
		close(done)
	}()

	// Assert
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}
	if got := receive(t, sub).ItemID; got != 1 {
		t.Errorf("ItemID = %d, want 1", got)
	}
}

func TestSubscription_Close(t *testing.T) {
	// Arrange
	hub := NewHub(zap.NewNop(), 1)
	sub := hub.Subscribe()

	// Act
	sub.Close()
	sub.Close()

	// Assert
	assertClosed(t, sub)
	if n := hub.Subscribers(); n != 0 {
		t.Errorf("Subscribers() = %d, want 0", n)
	}
	hub.Publish(model.NewDeletedEvent(1))
}

func TestHub_Close(t *testing.T) {
	// Arrange
	hub := NewHub(zap.NewNop(), 1)
	subs := []*Subscription{hub.Subscribe(), hub.Subscribe()}

	// Act
	hub.Close()
	hub.Close()

	// Assert
	for _, sub := range subs {
		assertClosed(t, sub)
		sub.Close()
	}
	if n := hub.Subscribers(); n != 0 {
		t.Errorf("Subscribers() = %d, want 0", n)
	}

	late := hub.Subscribe()
	assertClosed(t, late)
	hub.Publish(model.NewDeletedEvent(1))
}

func TestHub_ConcurrentSubscribePublish(t *testing.T) {
	hub := NewHub(zap.NewNop(), 4)
	const workers = 20

	var wg sync.WaitGroup
	wg.Add(workers * 2)

	for range workers {
		go func() {
			defer wg.Done()
			sub := hub.Subscribe()
			sub.Close()
		}()
		go func() {
			defer wg.Done()
			hub.Publish(model.NewDeletedEvent(1))
		}()
	}

	wg.Wait()
	if n := hub.Subscribers(); n != 0 {
		t.Errorf("Subscribers() = %d, want 0", n)
	}
}
