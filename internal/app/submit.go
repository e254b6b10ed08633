package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/cmcleod/classpulse/internal/domain/model"
	"github.com/cmcleod/classpulse/internal/domain/rating"
	"github.com/cmcleod/classpulse/internal/view"
	"github.com/cmcleod/classpulse/pkg/logger"
	"github.com/cmcleod/classpulse/pkg/metrics"
)

// Draft is the in-progress feedback form for the selected teacher.
type Draft struct {
	Rating  int
	Comment string
}

// Rejection reasons used as metric labels.
const (
	reasonNoTeacher    = "no_teacher"
	reasonEmptyComment = "empty_comment"
	reasonRating       = "rating_out_of_range"
)

// submission mirrors the draft plus the selected teacher. Field order
// matters: the first failing rule decides the message the user sees.
type submission struct {
	TeacherID int    `validate:"required"`
	Comment   string `validate:"required"`
	Rating    int    `validate:"required,min=1,max=10"`
}

// Draft returns the current draft.
func (s *Service) Draft() Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// UpdateDraftRating sets the draft star rating. Values outside 1..10
// are kept and rejected at submit.
func (s *Service) UpdateDraftRating(ctx context.Context, stars int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.Rating = stars
	s.logger.Debug(ctx, "draft rating updated", logger.Int("stars", stars))
}

// UpdateDraftComment sets the draft comment text.
func (s *Service) UpdateDraftComment(ctx context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.Comment = text
}

// Submit validates the draft against the current view and appends it to
// the feedback log. On success the draft resets and the view routes to
// the success screen.
func (s *Service) Submit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teacher, selected := s.current.Teacher()
	comment := strings.TrimSpace(s.draft.Comment)

	sub := submission{
		Comment: comment,
		Rating:  s.draft.Rating,
	}
	if selected {
		sub.TeacherID = teacher.ID
	}

	if err := s.validate.Struct(sub); err != nil {
		reason, mapped := mapValidation(err)
		metrics.RecordRejection(reason)
		s.logger.Warn(ctx, "feedback rejected", logger.String("reason", reason))
		return mapped
	}

	fb := model.Feedback{
		ID:          uuid.New(),
		TeacherID:   teacher.ID,
		AnonymousID: s.sess.Pseudonym(),
		Rating:      s.draft.Rating,
		Comment:     comment,
		SubmittedAt: s.clock.Now(),
	}

	if err := s.log.Append(ctx, fb); err != nil {
		s.logger.Error(ctx, "failed to record feedback", logger.Error(err))
		return fmt.Errorf("%w: %v", ErrAppendFeedback, err)
	}

	s.draft = Draft{}
	s.setView(ctx, view.SuccessFor(teacher))

	metrics.RecordSubmission()
	s.logger.Info(ctx, "feedback recorded",
		logger.String("id", fb.ID.String()),
		logger.Int("teacher", fb.TeacherID),
		logger.Int("rating", fb.Rating),
		logger.String("by", fb.AnonymousID),
	)
	return nil
}

// mapValidation picks the rejection label and the user-facing sentinel
// for the first rule that failed.
func mapValidation(err error) (string, error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid", err
	}
	switch verrs[0].StructField() {
	case "TeacherID":
		return reasonNoTeacher, ErrNoTeacherSelected
	case "Comment":
		return reasonEmptyComment, ErrEmptyComment
	default:
		return reasonRating, ErrRatingOutOfRange
	}
}

// Feed returns the recorded feedback for the teacher on the current
// view, newest first, capped by the configured feed limit.
func (s *Service) Feed(ctx context.Context) []model.Feedback {
	s.mu.RLock()
	teacher, ok := s.current.Teacher()
	limit := s.feedLimit
	log := s.log
	s.mu.RUnlock()

	if !ok {
		return nil
	}

	entries := log.ListByTeacher(ctx, teacher.ID)
	// Newest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// TeacherSummary returns the derived rating summary for one teacher. A
// teacher with no feedback yields the zero summary.
func (s *Service) TeacherSummary(ctx context.Context, teacherID int) rating.Summary {
	return s.summaries(ctx)[teacherID]
}
