package pubsub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classboard/classboard-api/internal/models"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) record(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func TestRelayBridgesEventsAcrossNodes(t *testing.T) {
	mr := miniredis.RunT(t)
	clientA := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	clientB := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = clientA.Close()
		_ = clientB.Close()
	})

	busA := NewBus(testLogger())
	busB := NewBus(testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	NewRelay(busA, clientA, nil, "classboard", testLogger()).Start(ctx)
	NewRelay(busB, clientB, nil, "classboard", testLogger()).Start(ctx)

	remote := &eventRecorder{}
	busB.Subscribe(TopicAssignmentUpdated, remote.record)

	// Let both relay subscribers attach before publishing.
	time.Sleep(50 * time.Millisecond)

	published := AssignmentEvent{Assignment: models.Assignment{ID: "a-1", TeacherID: "t-1", Title: "Essay"}}
	busA.Publish(TopicAssignmentUpdated, published)

	require.Eventually(t, func() bool {
		return len(remote.snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	received, ok := remote.snapshot()[0].(AssignmentEvent)
	require.True(t, ok)
	assert.Equal(t, "a-1", received.Assignment.ID)
	assert.Equal(t, "Essay", received.Assignment.Title)
}

func TestRelayDoesNotEchoLocalEvents(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	bus := NewBus(testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	NewRelay(bus, client, nil, "classboard", testLogger()).Start(ctx)

	local := &eventRecorder{}
	bus.Subscribe(TopicSubmissionGraded, local.record)

	time.Sleep(50 * time.Millisecond)

	bus.Publish(TopicSubmissionGraded, SubmissionGradedEvent{Submission: models.Submission{ID: "s-1"}})

	// The relay publishes to Redis and receives its own envelope back.
	// Source filtering must keep it from re-injecting the event.
	time.Sleep(200 * time.Millisecond)
	assert.Len(t, local.snapshot(), 1)
}

func TestDecodeEventRejectsUnknownTopic(t *testing.T) {
	_, err := decodeEvent(Topic("BOGUS"), []byte(`{}`))
	assert.Error(t, err)
}

func TestDecodeEventRoundTrip(t *testing.T) {
	event, err := decodeEvent(TopicSubmissionCreated, []byte(`{"submission":{"id":"s-9","assignmentId":"a-2"}}`))
	require.NoError(t, err)

	created, ok := event.(SubmissionCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, "s-9", created.Submission.ID)
	assert.Equal(t, "a-2", created.Submission.AssignmentID)
}
