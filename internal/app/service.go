// Package service provides the core widget state machine that
// implements the dependencies required by the terminal UI.
package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"

	"github.com/cmcleod/classpulse/internal/adapters/repository"
	"github.com/cmcleod/classpulse/internal/domain/rating"
	"github.com/cmcleod/classpulse/internal/domain/roster"
	"github.com/cmcleod/classpulse/internal/domain/session"
	"github.com/cmcleod/classpulse/internal/view"
	"github.com/cmcleod/classpulse/pkg/logger"
	"github.com/cmcleod/classpulse/pkg/metrics"
)

// Service implements the widget behavior for one anonymous session:
// roster browsing, the view router, and feedback submission.
type Service struct {
	mu sync.RWMutex

	// Core components
	log    repository.Log
	roster *roster.Roster
	sess   session.Session

	// Configuration
	clock     clockwork.Clock
	feedLimit int

	// State
	started bool
	current view.View
	browse  Browse
	draft   Draft

	// Rating summaries derived from the log, keyed by teacher id and
	// rebuilt when the log revision moves past sumsRev.
	sumsRev int64
	sums    map[int]rating.Summary

	// Validation
	validate *validator.Validate

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the clock used for submission timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithSession sets a pre-built session instead of drawing a fresh
// pseudonym on Start.
func WithSession(sess session.Session) Option {
	return func(s *Service) {
		s.sess = sess
	}
}

// WithRoster sets the teacher roster to browse.
func WithRoster(r *roster.Roster) Option {
	return func(s *Service) {
		if r != nil {
			s.roster = r
		}
	}
}

// WithLog sets the feedback log implementation.
func WithLog(log repository.Log) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithFeedLimit caps how many entries the recent feedback feed returns.
// Zero means no cap.
func WithFeedLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.feedLimit = limit
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		clock:    clockwork.NewRealClock(),
		current:  view.Home(),
		validate: validator.New(),
		browse: Browse{
			Department: roster.DepartmentAll,
			Sort:       roster.SortByName,
		},
		sumsRev: -1, // Any log revision triggers the first rebuild
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the session and the components not supplied via
// options.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting feedback widget...")

	// Initialize components
	if s.roster == nil {
		s.roster = roster.New(roster.DefaultTeachers())
		s.logger.Info(ctx, "using sample roster")
	}
	if s.log == nil {
		s.log = repository.NewMemLog(
			repository.WithTeacherCapacityHint(s.roster.Len()),
		)
	}
	if s.sess.Pseudonym() == "" {
		s.sess = session.New(session.WithClock(s.clock))
	}

	s.started = true

	metrics.UpdateRosterSize(s.roster.Len())
	metrics.UpdateSessionStart(float64(s.sess.StartedAt().Unix()))

	s.logger.Info(ctx, "feedback widget started",
		logger.String("pseudonym", s.sess.Pseudonym()),
		logger.Int("teachers", s.roster.Len()),
		logger.Int("feedLimit", s.feedLimit),
	)

	return nil
}

// Stop logs the session summary. The in-memory log is discarded with
// the process, so there is nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping feedback widget...")

	total := s.log.TotalCount(ctx)
	s.started = false
	s.logger.Info(ctx, "feedback widget stopped",
		logger.Int("feedbackRecorded", total),
		logger.String("sessionLength", s.clock.Now().Sub(s.sess.StartedAt()).String()),
	)
}

// setView swaps the visible view. Callers hold s.mu.
func (s *Service) setView(ctx context.Context, v view.View) {
	if v == s.current {
		return
	}
	s.current = v
	metrics.RecordViewTransition(v.Kind().String())
	s.logger.Debug(ctx, "view changed", logger.String("view", v.String()))
}

// View returns the currently visible view.
func (s *Service) View() view.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Session returns the anonymous session for this run.
func (s *Service) Session() session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess
}

// Stats summarizes the counters shown on the home view stat cards.
type Stats struct {
	Faculty     int
	Departments int
	Reviews     int
}

// Stats returns the home view counters.
func (s *Service) Stats(ctx context.Context) Stats {
	s.mu.RLock()
	ros := s.roster
	log := s.log
	s.mu.RUnlock()

	return Stats{
		Faculty:     ros.Len(),
		Departments: len(ros.Departments()),
		Reviews:     log.TotalCount(ctx),
	}
}

// summaries returns the per-teacher rating summaries, rebuilding them
// only when the log revision moved since the last build.
func (s *Service) summaries(ctx context.Context) map[int]rating.Summary {
	rev := s.log.Revision(ctx)

	s.mu.RLock()
	if s.sums != nil && rev == s.sumsRev {
		sums := s.sums
		s.mu.RUnlock()
		return sums
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another reader may have rebuilt while we upgraded the lock.
	if s.sums != nil && rev == s.sumsRev {
		return s.sums
	}

	sums := make(map[int]rating.Summary, s.roster.Len())
	for _, t := range s.roster.Teachers() {
		entries := s.log.ListByTeacher(ctx, t.ID)
		if len(entries) == 0 {
			continue
		}
		sums[t.ID] = rating.Summarize(entries)
	}
	s.sumsRev = rev
	s.sums = sums
	metrics.RecordSummaryRebuild()
	return sums
}
