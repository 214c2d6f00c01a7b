// Package events carries slot-change notifications between open views and
// between nodes, replacing any reliance on ambient storage signals. Delivery
// is best-effort: a writer must re-read its own slots after writing.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const changeBufferSize = 16

// Change announces that a slot was overwritten.
type Change struct {
	Source string    `json:"source"`
	Slot   string    `json:"slot"`
	SentAt time.Time `json:"sent_at"`
}

// Bus fans slot changes out to in-process subscribers and, when configured,
// across nodes over Redis pub/sub and NATS. Remote events originating from
// this node are dropped on receipt.
type Bus struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	logger       zerolog.Logger
	nodeID       string

	mu          sync.RWMutex
	subscribers map[chan Change]struct{}
}

// NewBus constructs a change bus. redisClient and natsConn may each be nil;
// the bus then degrades to in-process delivery only.
func NewBus(redisClient *redis.Client, natsConn *nats.Conn, channelBase string, logger zerolog.Logger) *Bus {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":changes"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".changes"
	}

	return &Bus{
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		logger:       logger.With().Str("component", "change_bus").Logger(),
		nodeID:       uuid.NewString(),
		subscribers:  make(map[chan Change]struct{}),
	}
}

// Start begins consuming cross-node change events until ctx is cancelled.
func (b *Bus) Start(ctx context.Context) {
	if b.redis != nil && b.redisChannel != "" {
		go b.consumeRedis(ctx)
	}
	if b.nats != nil && b.natsSubject != "" {
		go b.consumeNATS(ctx)
	}
}

// Publish dispatches the change to local subscribers and forwards it to the
// configured transports. Transport failures are logged, not returned: a slot
// write must not fail because notification delivery did.
func (b *Bus) Publish(ctx context.Context, slot string) {
	change := Change{Source: b.nodeID, Slot: slot, SentAt: time.Now().UTC()}
	b.dispatch(change)

	if b.redis == nil && b.nats == nil {
		return
	}

	payload, err := json.Marshal(change)
	if err != nil {
		b.logger.Warn().Err(err).Msg("failed to encode change event")
		return
	}

	if b.redis != nil && b.redisChannel != "" {
		if err := b.redis.Publish(ctx, b.redisChannel, payload).Err(); err != nil {
			b.logger.Warn().Err(err).Str("slot", slot).Msg("failed to publish change to redis")
		}
	}

	if b.nats != nil && b.natsSubject != "" {
		if err := b.nats.Publish(b.natsSubject, payload); err != nil {
			b.logger.Warn().Err(err).Str("slot", slot).Msg("failed to publish change to nats")
		}
	}
}

// Subscribe registers a listener. The returned cancel func must be called to
// release the channel. Slow listeners lose events rather than block writers.
func (b *Bus) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, changeBufferSize)

	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
		b.mu.Unlock()
	}

	return ch, cancel
}

func (b *Bus) dispatch(change Change) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- change:
		default:
			b.logger.Debug().Str("slot", change.Slot).Msg("subscriber buffer full, change dropped")
		}
	}
}

func (b *Bus) consumeRedis(ctx context.Context) {
	pubsub := b.redis.Subscribe(ctx, b.redisChannel)
	defer func() { _ = pubsub.Close() }()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			b.logger.Error().Err(err).Msg("change bus redis subscription closed")
			return
		}
		b.handleRemote([]byte(msg.Payload))
	}
}

func (b *Bus) consumeNATS(ctx context.Context) {
	sub, err := b.nats.QueueSubscribe(b.natsSubject, "studypulse-changes", func(msg *nats.Msg) {
		b.handleRemote(msg.Data)
	})
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to subscribe to nats changes subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			b.logger.Warn().Err(err).Msg("failed to drain change bus nats subscription")
		}
	}()
}

func (b *Bus) handleRemote(payload []byte) {
	var change Change
	if err := json.Unmarshal(payload, &change); err != nil {
		b.logger.Warn().Err(err).Msg("invalid change event payload")
		return
	}

	if change.Source == b.nodeID {
		return
	}

	b.dispatch(change)
}
