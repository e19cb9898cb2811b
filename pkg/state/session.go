package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/poke-arena/pkg/creature"
)

// Session is the state of one arena user: the last generated collection and
// the last selected match. It lives until reset or until storage expires it.
type Session struct {
	ID         uuid.UUID           `json:"id"`
	Collection creature.Collection `json:"collection"`
	Match      *creature.Creature  `json:"match,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.New(),
		Collection: creature.Collection{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ReplaceCollection swaps in a newly generated collection wholesale.
func (s *Session) ReplaceCollection(c creature.Collection) {
	if c == nil {
		c = creature.Collection{}
	}
	s.Collection = c
}

// SelectMatch overwrites the selected match.
func (s *Session) SelectMatch(c creature.Creature) {
	s.Match = &c
}

// Reset clears the collection and the selected match.
func (s *Session) Reset() {
	s.Collection = creature.Collection{}
	s.Match = nil
}

func (s *Session) HasCollection() bool {
	return len(s.Collection) > 0
}
