package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmcleod/classpulse/internal/domain/model"
	"github.com/cmcleod/classpulse/internal/domain/rating"
	"github.com/cmcleod/classpulse/internal/domain/roster"
	"github.com/cmcleod/classpulse/internal/view"
	"github.com/cmcleod/classpulse/pkg/logger"
	"github.com/cmcleod/classpulse/pkg/metrics"
)

// Card identifies the stat cards on the home view.
type Card string

// Stat cards, in home view order.
const (
	CardNone        Card = ""
	CardFaculty     Card = "faculty"
	CardDepartments Card = "departments"
	CardReviews     Card = "reviews"
)

// Browse captures the home view browsing state: active filters, sort
// order, search visibility, and the highlighted stat card.
type Browse struct {
	Department string
	Sort       roster.SortKey
	Search     string
	SearchOpen bool
	ActiveCard Card
}

// Browse returns the current browsing state.
func (s *Service) Browse() Browse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.browse
}

// Departments lists the roster departments in first-seen order.
func (s *Service) Departments() []string {
	s.mu.RLock()
	ros := s.roster
	s.mu.RUnlock()
	return ros.Departments()
}

// VisibleRoster returns the teachers matching the current filters, in
// the current sort order.
func (s *Service) VisibleRoster(ctx context.Context) []model.Teacher {
	s.mu.RLock()
	q := roster.Query{
		Department: s.browse.Department,
		Search:     s.browse.Search,
		Sort:       s.browse.Sort,
	}
	ros := s.roster
	s.mu.RUnlock()

	sums := s.summaries(ctx)
	return ros.Apply(q, func(teacherID int) rating.Summary {
		return sums[teacherID]
	})
}

// SelectTeacher routes to the feedback view for the given teacher with
// a fresh draft.
func (s *Service) SelectTeacher(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.roster.ByID(id)
	if !ok {
		return fmt.Errorf("%w: id %d", ErrUnknownTeacher, id)
	}

	s.draft = Draft{}
	s.setView(ctx, view.FeedbackFor(t))
	s.logger.Info(ctx, "teacher selected",
		logger.Int("id", t.ID),
		logger.String("name", t.Name),
	)
	return nil
}

// GoHome routes back to the home view, discarding any draft.
func (s *Service) GoHome(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = Draft{}
	s.setView(ctx, view.Home())
}

// SetDepartment sets the department filter. DepartmentAll or an empty
// string shows every department.
func (s *Service) SetDepartment(ctx context.Context, dept string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.browse.Department = dept
	s.logger.Debug(ctx, "department filter set", logger.String("department", dept))
}

// SetSort sets the roster sort order.
func (s *Service) SetSort(ctx context.Context, key roster.SortKey) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSort, string(key))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.browse.Sort = key
	s.logger.Debug(ctx, "sort order set", logger.String("sort", string(key)))
	return nil
}

// SetSearch sets the search query. Matching treats it case-insensitively
// and a blank query matches everything.
func (s *Service) SetSearch(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.browse.Search = query
	if strings.TrimSpace(query) != "" {
		metrics.RecordSearch()
	}
}

// OpenSearch reveals the search input.
func (s *Service) OpenSearch(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.browse.SearchOpen = true
	s.logger.Debug(ctx, "search opened")
}

// CloseSearch hides the search input and drops the query; reopening
// starts blank. Stat cards that hide the box keep the query instead.
func (s *Service) CloseSearch(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.browse.SearchOpen = false
	s.browse.Search = ""
	s.logger.Debug(ctx, "search closed")
}

// ClearFilters resets every browsing control in one action: search
// text, department filter, sort order, card highlight, and search
// visibility.
func (s *Service) ClearFilters(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.browse = Browse{
		Department: roster.DepartmentAll,
		Sort:       roster.SortByName,
	}
	s.logger.Debug(ctx, "filters cleared")
}

// ActivateCard applies a stat card's side effects and toggles its
// highlight. Tapping the highlighted card again clears the highlight;
// the side effects run either way.
func (s *Service) ActivateCard(ctx context.Context, card Card) error {
	switch card {
	case CardFaculty, CardDepartments, CardReviews:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCard, string(card))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browse.ActiveCard == card {
		s.browse.ActiveCard = CardNone
	} else {
		s.browse.ActiveCard = card
	}

	switch card {
	case CardFaculty:
		s.browse.SearchOpen = true
		s.browse.Department = roster.DepartmentAll
		s.browse.Search = ""
	case CardDepartments:
		s.browse.SearchOpen = false
	case CardReviews:
		s.browse.SearchOpen = false
		s.browse.Sort = roster.SortByFeedbacks
	}

	metrics.RecordCardActivation(string(card))
	s.logger.Debug(ctx, "stat card activated", logger.String("card", string(card)))
	return nil
}
