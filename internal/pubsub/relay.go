package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Relay bridges bus events between nodes through Redis pub/sub and
// NATS. It is optional; a nil Redis client and nil NATS connection
// leave the bus purely in-process.
type Relay struct {
	bus          *Bus
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	logger       zerolog.Logger
	nodeID       string
	bridgeIDs    map[Topic]uint64
}

type relayEnvelope struct {
	Source string          `json:"source"`
	Topic  Topic           `json:"topic"`
	Event  json.RawMessage `json:"event"`
	SentAt time.Time       `json:"sent_at"`
}

// NewRelay constructs a relay for the given bus. channelBase names the
// Redis channel and NATS subject, e.g. "classboard" becomes
// "classboard:events" and "classboard.events".
func NewRelay(bus *Bus, redisClient *redis.Client, natsConn *nats.Conn, channelBase string, logger zerolog.Logger) *Relay {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":events"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".events"
	}

	return &Relay{
		bus:          bus,
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		logger:       logger.With().Str("component", "event_relay").Logger(),
		nodeID:       uuid.NewString(),
		bridgeIDs:    make(map[Topic]uint64),
	}
}

// Start registers the outbound bridge on every topic and begins
// consuming remote events until ctx is cancelled.
func (r *Relay) Start(ctx context.Context) {
	for _, topic := range Topics() {
		topic := topic
		r.bridgeIDs[topic] = r.bus.subscribe(topic, func(event Event) {
			r.forward(ctx, topic, event)
		})
	}

	if r.redis != nil && r.redisChannel != "" {
		go r.consumeRedis(ctx)
	}
	if r.nats != nil && r.natsSubject != "" {
		go r.consumeNATS(ctx)
	}
}

func (r *Relay) forward(ctx context.Context, topic Topic, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Warn().Err(err).Str("topic", string(topic)).Msg("failed to encode event for relay")
		return
	}

	envelope, err := json.Marshal(relayEnvelope{
		Source: r.nodeID,
		Topic:  topic,
		Event:  payload,
		SentAt: time.Now().UTC(),
	})
	if err != nil {
		r.logger.Warn().Err(err).Msg("failed to encode relay envelope")
		return
	}

	if r.redis != nil && r.redisChannel != "" {
		if err := r.redis.Publish(ctx, r.redisChannel, envelope).Err(); err != nil {
			r.logger.Warn().Err(err).Msg("failed to publish event to redis")
		}
	}

	if r.nats != nil && r.natsSubject != "" {
		if err := r.nats.Publish(r.natsSubject, envelope); err != nil {
			r.logger.Warn().Err(err).Msg("failed to publish event to nats")
		}
	}
}

func (r *Relay) consumeRedis(ctx context.Context) {
	subscription := r.redis.Subscribe(ctx, r.redisChannel)
	defer func() { _ = subscription.Close() }()

	for {
		message, err := subscription.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			r.logger.Error().Err(err).Msg("event relay redis subscription closed")
			return
		}
		r.handleRemote([]byte(message.Payload))
	}
}

func (r *Relay) consumeNATS(ctx context.Context) {
	subscription, err := r.nats.QueueSubscribe(r.natsSubject, "classboard-events", func(message *nats.Msg) {
		r.handleRemote(message.Data)
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to subscribe to nats events subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := subscription.Drain(); err != nil {
			r.logger.Warn().Err(err).Msg("failed to drain nats event subscription")
		}
	}()
}

func (r *Relay) handleRemote(payload []byte) {
	var envelope relayEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		r.logger.Warn().Err(err).Msg("invalid relay envelope")
		return
	}

	if envelope.Source == r.nodeID {
		return
	}

	event, err := decodeEvent(envelope.Topic, envelope.Event)
	if err != nil {
		r.logger.Warn().Err(err).Str("topic", string(envelope.Topic)).Msg("invalid relayed event payload")
		return
	}

	// Skip the relay's own bridge listener so remote events are not
	// echoed back out, which would bounce between nodes forever.
	r.bus.publishExcept(envelope.Topic, event, r.bridgeIDs[envelope.Topic])
}

func decodeEvent(topic Topic, payload json.RawMessage) (Event, error) {
	switch topic {
	case TopicAssignmentUpdated:
		var event AssignmentEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, err
		}
		return event, nil
	case TopicSubmissionCreated:
		var event SubmissionCreatedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, err
		}
		return event, nil
	case TopicSubmissionGraded:
		var event SubmissionGradedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, err
		}
		return event, nil
	default:
		return nil, errors.New("unknown event topic")
	}
}
