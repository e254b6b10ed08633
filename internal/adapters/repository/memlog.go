package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmcleod/classpulse/internal/domain/model"
	"github.com/cmcleod/classpulse/pkg/metrics"
)

// In-memory Log implementation.
//
// Per-teacher slices keep submission order, so ListByTeacher is already
// chronological. A seen-id set rejects replays of the same feedback id.
// State lives only for the process lifetime; a restart starts empty.

// MemLog implements Log with mutex-guarded maps.
type MemLog struct {
	mu          sync.RWMutex
	byTeacher   map[int][]model.Feedback
	seen        map[uuid.UUID]struct{}
	total       int
	revision    int64
	teacherHint int
}

// NewMemLog constructs an empty in-memory feedback log.
func NewMemLog(opts ...Option) *MemLog {
	l := &MemLog{
		teacherHint: 16, // default roster size hint
	}

	// Apply all options
	for _, opt := range opts {
		opt(l)
	}

	l.byTeacher = make(map[int][]model.Feedback, l.teacherHint)
	l.seen = make(map[uuid.UUID]struct{})

	metrics.UpdateStoredFeedback(0)

	return l
}

// Append implements Log.Append.
func (l *MemLog) Append(ctx context.Context, fb model.Feedback) error {
	start := time.Now()
	defer func() {
		metrics.RecordAppendLatency(float64(time.Since(start).Milliseconds()))
	}()

	if fb.ID == uuid.Nil {
		return ErrMissingID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[fb.ID]; ok {
		return ErrDuplicateID
	}
	l.seen[fb.ID] = struct{}{}
	l.byTeacher[fb.TeacherID] = append(l.byTeacher[fb.TeacherID], fb)
	l.total++
	l.revision++

	metrics.UpdateStoredFeedback(l.total)

	return nil
}

// ListByTeacher implements Log.ListByTeacher.
func (l *MemLog) ListByTeacher(ctx context.Context, teacherID int) []model.Feedback {
	start := time.Now()
	defer func() {
		metrics.RecordQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := l.byTeacher[teacherID]
	out := make([]model.Feedback, len(entries))
	copy(out, entries)
	return out
}

// CountByTeacher implements Log.CountByTeacher.
func (l *MemLog) CountByTeacher(ctx context.Context, teacherID int) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byTeacher[teacherID])
}

// TotalCount implements Log.TotalCount.
func (l *MemLog) TotalCount(ctx context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}

// Revision implements Log.Revision.
func (l *MemLog) Revision(ctx context.Context) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.revision
}
