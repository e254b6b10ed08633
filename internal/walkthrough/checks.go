package walkthrough

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	service "github.com/cmcleod/classpulse/internal/app"
	"github.com/cmcleod/classpulse/internal/domain/roster"
)

// walkBrowse exercises the home view controls and checks the filtered
// roster stays consistent.
func walkBrowse(ctx context.Context, svc *service.Service) error {
	log.Println("🔍 Walking the browse surface...")

	total := svc.Stats(ctx).Faculty
	if total == 0 {
		return fmt.Errorf("empty roster")
	}

	departments := svc.Departments()
	if len(departments) == 0 {
		return fmt.Errorf("empty department list")
	}

	// Department filters must partition the roster.
	seen := 0
	for _, dept := range departments {
		svc.SetDepartment(ctx, dept)
		visible := svc.VisibleRoster(ctx)
		for _, t := range visible {
			if t.Department != dept {
				return fmt.Errorf("teacher %q leaked into department filter %q", t.Name, dept)
			}
		}
		seen += len(visible)
	}
	if seen != total {
		return fmt.Errorf("department filters cover %d teachers, roster has %d", seen, total)
	}
	svc.SetDepartment(ctx, roster.DepartmentAll)
	log.Printf("✅ Department filters partition %d teachers across %d departments", total, len(departments))

	// Search narrows, closing search restores the full roster.
	svc.OpenSearch(ctx)
	svc.SetSearch(ctx, "kumar")
	matched := svc.VisibleRoster(ctx)
	if len(matched) == 0 {
		return fmt.Errorf("search %q matched nothing", "kumar")
	}
	for _, t := range matched {
		haystack := strings.ToLower(t.Name + " " + t.Department + " " + t.Subject)
		if !strings.Contains(haystack, "kumar") {
			return fmt.Errorf("search %q matched unrelated teacher %q", "kumar", t.Name)
		}
	}
	svc.CloseSearch(ctx)
	if got := len(svc.VisibleRoster(ctx)); got != total {
		return fmt.Errorf("closing search left %d of %d teachers visible", got, total)
	}
	log.Println("✅ Search narrows the roster and closing it restores the full list")

	// Sort keys are validated.
	if err := svc.SetSort(ctx, roster.SortByRating); err != nil {
		return fmt.Errorf("valid sort key rejected: %w", err)
	}
	if err := svc.SetSort(ctx, roster.SortKey("bogus")); !errors.Is(err, service.ErrInvalidSort) {
		return fmt.Errorf("bogus sort key accepted: %v", err)
	}

	// The reviews card closes search and switches to feedback order.
	if err := svc.ActivateCard(ctx, service.CardReviews); err != nil {
		return fmt.Errorf("reviews card activation failed: %w", err)
	}
	if b := svc.Browse(); b.Sort != roster.SortByFeedbacks || b.SearchOpen {
		return fmt.Errorf("reviews card left browse state %+v", b)
	}

	// Clear restores every default at once.
	svc.ClearFilters(ctx)
	b := svc.Browse()
	if b.Department != roster.DepartmentAll || b.Sort != roster.SortByName ||
		b.Search != "" || b.SearchOpen || b.ActiveCard != service.CardNone {
		return fmt.Errorf("clear filters left browse state %+v", b)
	}
	log.Println("✅ Sort, stat cards, and clear filters behave")

	return nil
}

// walkValidation probes the submission gate with incomplete forms and
// checks nothing leaks into the log.
func walkValidation(ctx context.Context, svc *service.Service, stats *Stats) error {
	log.Println("🔍 Probing the validation gate...")

	// No teacher selected yet.
	if err := svc.Submit(ctx); !errors.Is(err, service.ErrNoTeacherSelected) {
		return fmt.Errorf("submit without a teacher returned %v", err)
	}
	stats.RejectionsObserved++

	if err := svc.SelectTeacher(ctx, 1); err != nil {
		return fmt.Errorf("failed to open the probe form: %w", err)
	}

	// Empty comment is reported before the missing rating.
	if err := svc.Submit(ctx); !errors.Is(err, service.ErrEmptyComment) {
		return fmt.Errorf("submit with an empty form returned %v", err)
	}
	stats.RejectionsObserved++

	// With a comment in place the rating gate takes over.
	svc.UpdateDraftComment(ctx, "validation probe")
	if err := svc.Submit(ctx); !errors.Is(err, service.ErrRatingOutOfRange) {
		return fmt.Errorf("submit without a rating returned %v", err)
	}
	stats.RejectionsObserved++

	svc.UpdateDraftRating(ctx, 12)
	if err := svc.Submit(ctx); !errors.Is(err, service.ErrRatingOutOfRange) {
		return fmt.Errorf("submit with rating 12 returned %v", err)
	}
	stats.RejectionsObserved++

	svc.GoHome(ctx)

	if got := svc.Stats(ctx).Reviews; got != 0 {
		return fmt.Errorf("rejected probes leaked %d entries into the log", got)
	}

	log.Printf("✅ Validation gate held against %d bad submissions", stats.RejectionsObserved)
	return nil
}
