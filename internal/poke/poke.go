// Package poke notifies the clients of a profile that new data may be
// available. Pokes carry no data: a poked client simply pulls.
package poke

import (
	"context"
	"time"

	"github.com/MKhiriev/go-replisync/internal/config"
	"github.com/MKhiriev/go-replisync/internal/logger"
)

// Message is the payload published on a profile channel.
type Message struct {
	ProfileID     string    `json:"profileID"`
	ClientGroupID string    `json:"clientGroupID"`
	At            time.Time `json:"at"`
}

// Publisher sends pokes after successful pushes.
type Publisher interface {
	// Poke announces that clientGroupID pushed changes visible to
	// profileID.
	Poke(ctx context.Context, profileID, clientGroupID string) error
	Close() error
}

// Subscriber receives the pokes of a profile.
type Subscriber interface {
	// Subscribe delivers pokes of profileID until ctx is done. The channel
	// is closed afterwards.
	Subscribe(ctx context.Context, profileID string) (<-chan Message, error)
}

// New returns a Redis publisher when cfg names a Redis address and a Nop
// publisher otherwise.
func New(ctx context.Context, cfg config.Poke, logger *logger.Logger) (Publisher, error) {
	if cfg.RedisAddress == "" {
		logger.Info().Msg("poke notifications disabled")
		return Nop{}, nil
	}

	return NewRedisPublisher(ctx, cfg, logger)
}

// Nop discards pokes.
type Nop struct{}

func (Nop) Poke(context.Context, string, string) error { return nil }

func (Nop) Close() error { return nil }
