package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesLocalSubscribers(t *testing.T) {
	bus := NewBus(nil, nil, "", zerolog.Nop())

	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(context.Background(), "assignments")

	select {
	case change := <-ch:
		assert.Equal(t, "assignments", change.Slot)
		assert.NotEmpty(t, change.Source)
	case <-time.After(time.Second):
		t.Fatal("expected a change event")
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	bus := NewBus(nil, nil, "", zerolog.Nop())

	ch, cancel := bus.Subscribe()
	cancel()
	// Cancelling twice must be safe.
	cancel()

	bus.Publish(context.Background(), "attendanceData")

	_, open := <-ch
	assert.False(t, open)
}

func TestRemoteEventsFromOwnNodeAreDropped(t *testing.T) {
	bus := NewBus(nil, nil, "", zerolog.Nop())

	ch, cancel := bus.Subscribe()
	defer cancel()

	payload, err := json.Marshal(Change{Source: bus.nodeID, Slot: "assignments", SentAt: time.Now()})
	require.NoError(t, err)
	bus.handleRemote(payload)

	select {
	case <-ch:
		t.Fatal("own-node event must not be redelivered")
	case <-time.After(50 * time.Millisecond):
	}

	payload, err = json.Marshal(Change{Source: "another-node", Slot: "assignments", SentAt: time.Now()})
	require.NoError(t, err)
	bus.handleRemote(payload)

	select {
	case change := <-ch:
		assert.Equal(t, "another-node", change.Source)
	case <-time.After(time.Second):
		t.Fatal("expected the remote event")
	}
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	bus := NewBus(nil, nil, "", zerolog.Nop())

	_, cancel := bus.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < changeBufferSize*2; i++ {
			bus.Publish(context.Background(), "study_history")
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

func TestInvalidRemotePayloadIgnored(t *testing.T) {
	bus := NewBus(nil, nil, "", zerolog.Nop())

	assert.NotPanics(t, func() {
		bus.handleRemote([]byte("{broken"))
	})
}
