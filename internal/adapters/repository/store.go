// Package repository defines the feedback log interface and errors.
package repository

import (
	"context"

	"github.com/cmcleod/classpulse/internal/domain/model"
)

// Log provides append-only access to submitted feedback, grouped by
// teacher. Entries are never updated or removed once appended.
type Log interface {
	// Append stores a new feedback entry at the end of its teacher's
	// list. Returns ErrDuplicateID when the entry id was appended
	// before and ErrMissingID when the id is unset.
	Append(ctx context.Context, fb model.Feedback) error

	// ListByTeacher returns the teacher's feedback in submission order.
	// The result is a copy; callers may reorder it freely.
	ListByTeacher(ctx context.Context, teacherID int) []model.Feedback

	// CountByTeacher returns the number of entries for one teacher.
	CountByTeacher(ctx context.Context, teacherID int) int

	// TotalCount returns the number of entries across all teachers.
	TotalCount(ctx context.Context) int

	// Revision increases by one with every successful append. Derived
	// caches key on it to skip recomputation while the log is unchanged.
	Revision(ctx context.Context) int64
}
