package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwebster45206/poke-arena/pkg/state"
)

// Storage persists arena sessions for the lifetime of a user session.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// SaveSession stores s, refreshing its expiry.
	SaveSession(ctx context.Context, s *state.Session) error
	// LoadSession returns nil, nil when the session does not exist or expired.
	LoadSession(ctx context.Context, id uuid.UUID) (*state.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}
