package pubsub

import (
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classboard/classboard-api/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestPublishDeliversToAllListeners(t *testing.T) {
	bus := NewBus(testLogger())

	var first, second []Event
	bus.Subscribe(TopicAssignmentUpdated, func(event Event) { first = append(first, event) })
	bus.Subscribe(TopicAssignmentUpdated, func(event Event) { second = append(second, event) })

	event := AssignmentEvent{Assignment: models.Assignment{ID: "a-1", TeacherID: "t-1"}}
	bus.Publish(TopicAssignmentUpdated, event)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, event, first[0])
	assert.Equal(t, event, second[0])
}

func TestPublishRespectsTopicBoundaries(t *testing.T) {
	bus := NewBus(testLogger())

	var received []Event
	bus.Subscribe(TopicSubmissionCreated, func(event Event) { received = append(received, event) })

	bus.Publish(TopicAssignmentUpdated, AssignmentEvent{})
	bus.Publish(TopicSubmissionGraded, SubmissionGradedEvent{})

	assert.Empty(t, received)

	bus.Publish(TopicSubmissionCreated, SubmissionCreatedEvent{})
	assert.Len(t, received, 1)
}

func TestListenersInvokedInRegistrationOrder(t *testing.T) {
	bus := NewBus(testLogger())

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		bus.Subscribe(TopicSubmissionGraded, func(Event) { order = append(order, i) })
	}

	bus.Publish(TopicSubmissionGraded, SubmissionGradedEvent{})
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestUnsubscribeRemovesOnlyThatListener(t *testing.T) {
	bus := NewBus(testLogger())

	var kept, removed int
	bus.Subscribe(TopicAssignmentUpdated, func(Event) { kept++ })
	unsubscribe := bus.Subscribe(TopicAssignmentUpdated, func(Event) { removed++ })

	bus.Publish(TopicAssignmentUpdated, AssignmentEvent{})
	unsubscribe()
	bus.Publish(TopicAssignmentUpdated, AssignmentEvent{})

	assert.Equal(t, 2, kept)
	assert.Equal(t, 1, removed)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	bus := NewBus(testLogger())

	unsubscribe := bus.Subscribe(TopicAssignmentUpdated, func(Event) {})
	unsubscribe()

	assert.NotPanics(t, func() {
		unsubscribe()
		unsubscribe()
	})
}

func TestPublishWithoutListenersIsANoOp(t *testing.T) {
	bus := NewBus(testLogger())

	assert.NotPanics(t, func() {
		bus.Publish(TopicSubmissionCreated, SubmissionCreatedEvent{})
	})
}

func TestPublishExceptSkipsExcludedListener(t *testing.T) {
	bus := NewBus(testLogger())

	var normal, excluded int
	bus.subscribe(TopicAssignmentUpdated, func(Event) { normal++ })
	id := bus.subscribe(TopicAssignmentUpdated, func(Event) { excluded++ })

	bus.publishExcept(TopicAssignmentUpdated, AssignmentEvent{}, id)

	assert.Equal(t, 1, normal)
	assert.Equal(t, 0, excluded)
}
