package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestNotifierSuccessProducesOneToast(t *testing.T) {
	n := NewNotifier()
	events, cancel := n.Subscribe()
	defer cancel()

	n.Success("Task created successfully")

	ev := recvEvent(t, events)
	assert.Equal(t, EventToast, ev.Type)
	require.NotNil(t, ev.Outcome)
	assert.Equal(t, OutcomeSuccess, ev.Outcome.Level)
	assert.Equal(t, "Task created successfully", ev.Outcome.Message)
	assert.NotEmpty(t, ev.Outcome.ID)
	assert.False(t, ev.Outcome.At.IsZero())

	select {
	case extra := <-events:
		t.Fatalf("one outcome must produce exactly one event, got extra %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifierErrorLevel(t *testing.T) {
	n := NewNotifier()
	events, cancel := n.Subscribe()
	defer cancel()

	n.Error("Failed to create task")

	ev := recvEvent(t, events)
	require.NotNil(t, ev.Outcome)
	assert.Equal(t, OutcomeError, ev.Outcome.Level)
	assert.Equal(t, "Failed to create task", ev.Outcome.Message)
}

func TestNotifierCollectionChanged(t *testing.T) {
	n := NewNotifier()
	events, cancel := n.Subscribe()
	defer cancel()

	n.CollectionChanged("leaderboard")

	ev := recvEvent(t, events)
	assert.Equal(t, EventCollectionChange, ev.Type)
	assert.Equal(t, "leaderboard", ev.Collection)
	assert.Nil(t, ev.Outcome)
}

func TestNotifierFansOutToAllSubscribers(t *testing.T) {
	n := NewNotifier()
	a, cancelA := n.Subscribe()
	defer cancelA()
	b, cancelB := n.Subscribe()
	defer cancelB()

	n.Success("User updated successfully")

	assert.Equal(t, "User updated successfully", recvEvent(t, a).Outcome.Message)
	assert.Equal(t, "User updated successfully", recvEvent(t, b).Outcome.Message)
}

func TestNotifierCancelStopsDelivery(t *testing.T) {
	n := NewNotifier()
	events, cancel := n.Subscribe()
	cancel()

	n.Success("after cancel")

	select {
	case ev := <-events:
		t.Fatalf("cancelled subscriber received %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifierSlowConsumerNeverBlocksMutations(t *testing.T) {
	n := NewNotifier()
	_, cancel := n.Subscribe() // never drained
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			n.Success("burst")
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow consumer")
	}
}
