package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/classboard/classboard-api/internal/pubsub"
	"github.com/classboard/classboard-api/internal/service"
)

// Subscription operation names, mirroring the GraphQL schema fields.
const (
	OpAssignmentUpdated = "assignmentUpdated"
	OpSubmissionCreated = "submissionCreated"
	OpSubmissionGraded  = "submissionGraded"
)

// SubscribeRequest is the first frame a client sends after the
// websocket upgrade, naming the subscription and its correlation key.
type SubscribeRequest struct {
	Operation    string `json:"operation"`
	TeacherID    string `json:"teacherId,omitempty"`
	AssignmentID string `json:"assignmentId,omitempty"`
	StudentID    string `json:"studentId,omitempty"`
}

// EventFrame is one streamed event.
type EventFrame struct {
	Type      string      `json:"type"`
	Operation string      `json:"operation"`
	Payload   interface{} `json:"payload"`
}

// ErrorFrame reports a protocol error before the socket closes.
type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SubscriptionHandler streams subscription events over websocket.
type SubscriptionHandler struct {
	subscriptions service.SubscriptionService
	logger        zerolog.Logger
}

// NewSubscriptionHandler constructs the handler.
func NewSubscriptionHandler(subscriptions service.SubscriptionService, logger zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptions: subscriptions,
		logger:        logger.With().Str("component", "subscription_handler").Logger(),
	}
}

// Register binds the websocket endpoint under the provided router group.
func (h *SubscriptionHandler) Register(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(h.handleConnection))
}

func (h *SubscriptionHandler) handleConnection(conn *websocket.Conn) {
	defer func() { _ = conn.Close() }()

	var request SubscribeRequest
	if err := conn.ReadJSON(&request); err != nil {
		_ = conn.WriteJSON(ErrorFrame{Type: "error", Message: "invalid subscribe frame"})
		return
	}

	switch request.Operation {
	case OpAssignmentUpdated:
		if request.TeacherID == "" {
			_ = conn.WriteJSON(ErrorFrame{Type: "error", Message: "teacherId required"})
			return
		}
		events, cancel := h.subscriptions.AssignmentUpdated(request.TeacherID)
		stream(conn, request.Operation, events, assignmentPayload, cancel, h.logger)
	case OpSubmissionCreated:
		if request.AssignmentID == "" {
			_ = conn.WriteJSON(ErrorFrame{Type: "error", Message: "assignmentId required"})
			return
		}
		events, cancel := h.subscriptions.SubmissionCreated(request.AssignmentID)
		stream(conn, request.Operation, events, submissionCreatedPayload, cancel, h.logger)
	case OpSubmissionGraded:
		if request.StudentID == "" {
			_ = conn.WriteJSON(ErrorFrame{Type: "error", Message: "studentId required"})
			return
		}
		events, cancel := h.subscriptions.SubmissionGraded(request.StudentID)
		stream(conn, request.Operation, events, submissionGradedPayload, cancel, h.logger)
	default:
		_ = conn.WriteJSON(ErrorFrame{Type: "error", Message: "unknown operation"})
	}
}

func assignmentPayload(event pubsub.AssignmentEvent) interface{} { return event.Assignment }

func submissionCreatedPayload(event pubsub.SubmissionCreatedEvent) interface{} {
	return event.Submission
}

func submissionGradedPayload(event pubsub.SubmissionGradedEvent) interface{} {
	return event.Submission
}

// stream forwards events until the client goes away. The cancel runs on
// every exit path so the bus listener never leaks.
func stream[T any](conn *websocket.Conn, operation string, events <-chan T, payload func(T) interface{}, cancel func(), logger zerolog.Logger) {
	defer cancel()

	logger.Info().Str("operation", operation).Msg("subscription opened")

	// Reads only surface disconnects; clients send nothing after the
	// subscribe frame.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(EventFrame{Type: "event", Operation: operation, Payload: payload(event)}); err != nil {
				logger.Debug().Err(err).Str("operation", operation).Msg("subscription write failed")
				return
			}
		case <-done:
			logger.Info().Str("operation", operation).Msg("subscription closed by client")
			return
		}
	}
}
