// Package pubsub implements the in-process event bus that drives live
// subscriptions, plus an optional relay that bridges events across
// nodes over Redis and NATS.
package pubsub

import "github.com/classboard/classboard-api/internal/models"

// Topic names an event stream on the bus.
type Topic string

const (
	TopicAssignmentUpdated Topic = "ASSIGNMENT_UPDATED"
	TopicSubmissionCreated Topic = "SUBMISSION_CREATED"
	TopicSubmissionGraded  Topic = "SUBMISSION_GRADED"
)

// Event is the closed set of payloads carried by the bus.
type Event interface {
	Topic() Topic
}

// AssignmentEvent carries the assignment snapshot after a mutation.
type AssignmentEvent struct {
	Assignment models.Assignment `json:"assignment"`
}

// Topic implements Event.
func (AssignmentEvent) Topic() Topic { return TopicAssignmentUpdated }

// SubmissionCreatedEvent carries a freshly created submission.
type SubmissionCreatedEvent struct {
	Submission models.Submission `json:"submission"`
}

// Topic implements Event.
func (SubmissionCreatedEvent) Topic() Topic { return TopicSubmissionCreated }

// SubmissionGradedEvent carries a submission after grading.
type SubmissionGradedEvent struct {
	Submission models.Submission `json:"submission"`
}

// Topic implements Event.
func (SubmissionGradedEvent) Topic() Topic { return TopicSubmissionGraded }

// Topics lists every topic the bus carries, in a stable order.
func Topics() []Topic {
	return []Topic{TopicAssignmentUpdated, TopicSubmissionCreated, TopicSubmissionGraded}
}
