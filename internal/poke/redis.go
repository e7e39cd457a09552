package poke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/MKhiriev/go-replisync/internal/config"
	"github.com/MKhiriev/go-replisync/internal/logger"
)

const pingTimeout = 5 * time.Second

// ErrRedisUnavailable is returned by [NewRedisPublisher] when Redis does
// not answer a ping.
var ErrRedisUnavailable = errors.New("redis is unavailable")

// redisClient is the part of *redis.Client used by [RedisPublisher].
type redisClient interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
	Close() error
}

// RedisPublisher publishes pokes on Redis pub/sub channels named
// "<prefix><profileID>".
type RedisPublisher struct {
	client redisClient
	prefix string
	now    func() time.Time
	logger *logger.Logger
}

var (
	_ Publisher  = (*RedisPublisher)(nil)
	_ Subscriber = (*RedisPublisher)(nil)
)

// NewRedisPublisher connects to Redis and checks the connection.
func NewRedisPublisher(ctx context.Context, cfg config.Poke, logger *logger.Logger) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		logger.Err(err).Str("func", "NewRedisPublisher").Str("address", cfg.RedisAddress).Msg("redis ping failed")
		return nil, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}

	logger.Info().Str("address", cfg.RedisAddress).Msg("poke notifications enabled")
	return newRedisPublisher(client, cfg.ChannelPrefix, logger), nil
}

func newRedisPublisher(client redisClient, prefix string, logger *logger.Logger) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		prefix: prefix,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// Channel returns the channel of profileID.
func (p *RedisPublisher) Channel(profileID string) string {
	return p.prefix + profileID
}

func (p *RedisPublisher) Poke(ctx context.Context, profileID, clientGroupID string) error {
	payload, err := json.Marshal(Message{ProfileID: profileID, ClientGroupID: clientGroupID, At: p.now()})
	if err != nil {
		return fmt.Errorf("error encoding poke: %w", err)
	}

	if err = p.client.Publish(ctx, p.Channel(profileID), payload).Err(); err != nil {
		return fmt.Errorf("error publishing poke: %w", err)
	}

	return nil
}

func (p *RedisPublisher) Subscribe(ctx context.Context, profileID string) (<-chan Message, error) {
	sub := p.client.Subscribe(ctx, p.Channel(profileID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("error subscribing to %q: %w", p.Channel(profileID), err)
	}

	out := make(chan Message)
	go func() {
		defer close(out)
		defer sub.Close()

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case raw, ok := <-messages:
				if !ok {
					return
				}
				msg, err := decodeMessage(raw.Payload)
				if err != nil {
					p.logger.Warn().Err(err).Str("channel", raw.Channel).Msg("dropping malformed poke")
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

func decodeMessage(payload string) (Message, error) {
	var msg Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return Message{}, fmt.Errorf("error decoding poke: %w", err)
	}
	return msg, nil
}
