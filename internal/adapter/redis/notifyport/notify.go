package notifyport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"gitlab.com/examproctor-2025.net/internal/config"
	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/domain"
)

// NewClient builds a client from config and pings it
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Url,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Url, err)
	}
	return client, nil
}

// Publisher is a Notifier that fans events out through a Redis channel so every
// instance delivers them to its own connected clients
type Publisher struct {
	redisClient *redis.Client
	channel     string
	logger      primary.Logger
}

func NewPublisher(redisClient *redis.Client, channel string, logger primary.Logger) *Publisher {
	return &Publisher{
		redisClient: redisClient,
		channel:     channel,
		logger:      logger,
	}
}

func (p *Publisher) NotifySession(ctx context.Context, sessionID string, event string, payload interface{}) error {
	return p.publish(ctx, domain.Event{Room: sessionID, Name: event, Payload: payload})
}

func (p *Publisher) NotifyAudience(ctx context.Context, event string, payload interface{}) error {
	return p.publish(ctx, domain.Event{Room: domain.AudienceRoom, Name: event, Payload: payload})
}

func (p *Publisher) publish(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.Name, err)
	}
	if err := p.redisClient.Publish(ctx, p.channel, data).Err(); err != nil {
		p.logger.Error("Failed to publish event", "event", event.Name, "room", event.Room, "error", err)
		return fmt.Errorf("failed to publish event %s: %w", event.Name, err)
	}
	return nil
}

// Deliverer pushes an event to the clients connected to this instance
type Deliverer interface {
	Deliver(room, event string, payload interface{})
}

// wireEvent keeps the payload undecoded so it is forwarded byte for byte
type wireEvent struct {
	Room    string          `json:"room"`
	Name    string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Subscriber reads the events channel and hands every event to the local hub
type Subscriber struct {
	redisClient *redis.Client
	channel     string
	target      Deliverer
	logger      primary.Logger
}

func NewSubscriber(redisClient *redis.Client, channel string, target Deliverer, logger primary.Logger) *Subscriber {
	return &Subscriber{
		redisClient: redisClient,
		channel:     channel,
		target:      target,
		logger:      logger,
	}
}

// Run blocks until ctx is cancelled
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.redisClient.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to subscribe to %s: %w", s.channel, err)
	}
	s.logger.Info("Subscribed to events channel", "channel", s.channel)

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			s.handle(msg.Payload)
		}
	}
}

func (s *Subscriber) handle(data string) {
	var event wireEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		s.logger.Warn("Dropping malformed event", "error", err)
		return
	}
	if event.Room == "" || event.Name == "" {
		s.logger.Warn("Dropping event without room or name", "room", event.Room, "event", event.Name)
		return
	}
	var payload interface{}
	if len(event.Payload) > 0 {
		payload = event.Payload
	}
	s.target.Deliver(event.Room, event.Name, payload)
}
