// Package roster holds the static teacher list and the filter, search,
// and sort pipeline that produces the browse screen's visible subset.
package roster

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cmcleod/classpulse/internal/domain/model"
	"github.com/cmcleod/classpulse/internal/domain/rating"
)

// DepartmentAll matches every department.
const DepartmentAll = "all"

// SortKey selects the roster ordering.
type SortKey string

// Supported sort keys.
const (
	SortByName      SortKey = "name"      // collated name, ascending (default)
	SortByRating    SortKey = "rating"    // rounded average, descending
	SortByFeedbacks SortKey = "feedbacks" // review count, descending
)

// Valid reports whether k names a supported ordering.
func (k SortKey) Valid() bool {
	switch k {
	case SortByName, SortByRating, SortByFeedbacks:
		return true
	default:
		return false
	}
}

// Query is the browse state applied to the roster. The zero value keeps
// every teacher in seeding order under the name sort.
type Query struct {
	Department string  // DepartmentAll or empty passes every department
	Search     string  // case-insensitive substring; blank disables
	Sort       SortKey // empty falls back to SortByName
}

// SummaryFunc supplies the per-teacher aggregate used by the rating and
// feedbacks orderings.
type SummaryFunc func(teacherID int) rating.Summary

// Roster is the immutable teacher list. Seeding order is preserved and
// defines first-seen department order as well as tie order under every
// sort.
type Roster struct {
	teachers []model.Teacher
	byID     map[int]model.Teacher
	collator *collate.Collator
}

// Option applies a configuration option to the Roster.
type Option func(*Roster)

// WithLocale sets the collation language for name ordering.
func WithLocale(tag language.Tag) Option {
	return func(r *Roster) {
		r.collator = collate.New(tag)
	}
}

// New copies the given teacher list into an immutable roster.
func New(teachers []model.Teacher, opts ...Option) *Roster {
	r := &Roster{
		teachers: make([]model.Teacher, len(teachers)),
		byID:     make(map[int]model.Teacher, len(teachers)),
	}
	copy(r.teachers, teachers)
	for _, t := range r.teachers {
		r.byID[t.ID] = t
	}

	// Apply all options
	for _, opt := range opts {
		opt(r)
	}

	if r.collator == nil {
		r.collator = collate.New(language.English)
	}

	return r
}

// Teachers returns a copy of the full list in seeding order.
func (r *Roster) Teachers() []model.Teacher {
	out := make([]model.Teacher, len(r.teachers))
	copy(out, r.teachers)
	return out
}

// Len returns the number of teachers on the roster.
func (r *Roster) Len() int {
	return len(r.teachers)
}

// ByID looks up a teacher by roster id.
func (r *Roster) ByID(id int) (model.Teacher, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// Departments returns the distinct department labels in first-seen
// roster order.
func (r *Roster) Departments() []string {
	seen := make(map[string]struct{}, len(r.teachers))
	out := make([]string, 0, len(r.teachers))
	for _, t := range r.teachers {
		if _, ok := seen[t.Department]; ok {
			continue
		}
		seen[t.Department] = struct{}{}
		out = append(out, t.Department)
	}
	return out
}

// Apply runs the pipeline: department filter first, then search, then
// sort. Ties keep roster order under every key; the stable sort makes
// equal-key results deterministic.
func (r *Roster) Apply(q Query, summaries SummaryFunc) []model.Teacher {
	if summaries == nil {
		summaries = func(int) rating.Summary { return rating.Summary{} }
	}

	out := make([]model.Teacher, 0, len(r.teachers))
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, t := range r.teachers {
		if !departmentMatches(t, q.Department) {
			continue
		}
		if needle != "" && !searchMatches(t, needle) {
			continue
		}
		out = append(out, t)
	}

	switch q.Sort {
	case SortByRating:
		sort.SliceStable(out, func(i, j int) bool {
			return summaries(out[i].ID).Average > summaries(out[j].ID).Average
		})
	case SortByFeedbacks:
		sort.SliceStable(out, func(i, j int) bool {
			return summaries(out[i].ID).Count > summaries(out[j].ID).Count
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return r.collator.CompareString(out[i].Name, out[j].Name) < 0
		})
	}

	return out
}

func departmentMatches(t model.Teacher, department string) bool {
	if department == "" || department == DepartmentAll {
		return true
	}
	return t.Department == department
}

// searchMatches checks name, department, and subject for the lowered
// needle.
func searchMatches(t model.Teacher, needle string) bool {
	return strings.Contains(strings.ToLower(t.Name), needle) ||
		strings.Contains(strings.ToLower(t.Department), needle) ||
		strings.Contains(strings.ToLower(t.Subject), needle)
}
