package service

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/classboard/classboard-api/internal/observability"
	"github.com/classboard/classboard-api/internal/pubsub"
)

const defaultSubscriptionBuffer = 16

// SubscriptionService turns bus topics into per-client event streams.
// Each stream is filtered by its correlation key and backed by a
// private buffered channel; the returned cancel function unregisters
// the bus listener and closes the channel, and is safe to call more
// than once. Streams never complete on their own.
type SubscriptionService interface {
	AssignmentUpdated(teacherID string) (<-chan pubsub.AssignmentEvent, func())
	SubmissionCreated(assignmentID string) (<-chan pubsub.SubmissionCreatedEvent, func())
	SubmissionGraded(studentID string) (<-chan pubsub.SubmissionGradedEvent, func())
}

type subscriptionService struct {
	bus    *pubsub.Bus
	buffer int
	logger zerolog.Logger
}

// NewSubscriptionService constructs the subscription service. buffer
// sizes each subscriber's channel; zero selects the default.
func NewSubscriptionService(bus *pubsub.Bus, buffer int, logger zerolog.Logger) SubscriptionService {
	if buffer <= 0 {
		buffer = defaultSubscriptionBuffer
	}
	return &subscriptionService{
		bus:    bus,
		buffer: buffer,
		logger: logger.With().Str("component", "subscription_service").Logger(),
	}
}

// AssignmentUpdated streams assignment events for one teacher.
func (s *subscriptionService) AssignmentUpdated(teacherID string) (<-chan pubsub.AssignmentEvent, func()) {
	stream := newStream[pubsub.AssignmentEvent](s.buffer, s.logger)
	unsubscribe := s.bus.Subscribe(pubsub.TopicAssignmentUpdated, func(event pubsub.Event) {
		if e, ok := event.(pubsub.AssignmentEvent); ok && e.Assignment.TeacherID == teacherID {
			stream.deliver(e)
		}
	})
	return stream.ch, stream.cancelFunc(unsubscribe)
}

// SubmissionCreated streams hand-in events for one assignment.
func (s *subscriptionService) SubmissionCreated(assignmentID string) (<-chan pubsub.SubmissionCreatedEvent, func()) {
	stream := newStream[pubsub.SubmissionCreatedEvent](s.buffer, s.logger)
	unsubscribe := s.bus.Subscribe(pubsub.TopicSubmissionCreated, func(event pubsub.Event) {
		if e, ok := event.(pubsub.SubmissionCreatedEvent); ok && e.Submission.AssignmentID == assignmentID {
			stream.deliver(e)
		}
	})
	return stream.ch, stream.cancelFunc(unsubscribe)
}

// SubmissionGraded streams grading events for one student.
func (s *subscriptionService) SubmissionGraded(studentID string) (<-chan pubsub.SubmissionGradedEvent, func()) {
	stream := newStream[pubsub.SubmissionGradedEvent](s.buffer, s.logger)
	unsubscribe := s.bus.Subscribe(pubsub.TopicSubmissionGraded, func(event pubsub.Event) {
		if e, ok := event.(pubsub.SubmissionGradedEvent); ok && e.Submission.StudentID == studentID {
			stream.deliver(e)
		}
	})
	return stream.ch, stream.cancelFunc(unsubscribe)
}

// stream is one subscriber's buffered FIFO of matching events. The
// mutex and closed flag keep a late bus fan-out from writing into a
// closed channel.
type stream[T any] struct {
	mu     sync.Mutex
	ch     chan T
	closed bool
	once   sync.Once
	logger zerolog.Logger
}

func newStream[T any](buffer int, logger zerolog.Logger) *stream[T] {
	observability.SubscribersActive().Inc()
	return &stream[T]{
		ch:     make(chan T, buffer),
		logger: logger,
	}
}

func (s *stream[T]) deliver(event T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	select {
	case s.ch <- event:
	default:
		// Slow consumer; drop rather than block the publisher.
		s.logger.Warn().Msg("subscription buffer full, event dropped")
	}
}

func (s *stream[T]) cancelFunc(unsubscribe func()) func() {
	return func() {
		s.once.Do(func() {
			unsubscribe()

			s.mu.Lock()
			s.closed = true
			close(s.ch)
			s.mu.Unlock()

			observability.SubscribersActive().Dec()
		})
	}
}
