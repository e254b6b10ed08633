// Package session holds the anonymous identity attached to every review
// submitted during one run of the widget.
package session

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"
)

// Pseudonym number range: "Anonymous 1" through "Anonymous 1000".
const maxPseudonymNumber = 1000

// Session is the per-run anonymous identity. It is drawn once at startup
// and immutable afterwards, so every review in a run carries the same
// pseudonym.
type Session struct {
	pseudonym string
	startedAt time.Time
}

// Option applies a configuration option to session construction.
type Option func(*settings)

type settings struct {
	rng   *rand.Rand
	clock clockwork.Clock
}

// WithRand sets the random source used to draw the pseudonym number.
// Tests pass a seeded source for deterministic pseudonyms.
func WithRand(rng *rand.Rand) Option {
	return func(s *settings) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithClock sets the clock used for the session start time.
func WithClock(clock clockwork.Clock) Option {
	return func(s *settings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New draws a pseudonym and fixes the session start time.
func New(opts ...Option) Session {
	s := settings{
		clock: clockwork.NewRealClock(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(&s)
	}

	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(s.clock.Now().UnixNano())) //nolint:gosec // pseudonym draw needs no cryptographic strength
	}

	n := s.rng.Intn(maxPseudonymNumber) + 1
	return Session{
		pseudonym: fmt.Sprintf("Anonymous %d", n),
		startedAt: s.clock.Now(),
	}
}

// Pseudonym returns the display identity, e.g. "Anonymous 517".
func (s Session) Pseudonym() string {
	return s.pseudonym
}

// StartedAt returns the session start time.
func (s Session) StartedAt() time.Time {
	return s.startedAt
}
