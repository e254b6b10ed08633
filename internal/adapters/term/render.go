package term

import (
	"fmt"
	"strings"
	"time"

	service "github.com/cmcleod/classpulse/internal/app"
	"github.com/cmcleod/classpulse/internal/domain/model"
	"github.com/cmcleod/classpulse/internal/domain/rating"
	"github.com/cmcleod/classpulse/internal/domain/timefmt"
	"github.com/cmcleod/classpulse/internal/view"
)

// starScale is the number of slots in the star bar.
const starScale = 10

// Star glyphs for filled and empty rating slots.
const (
	starGlyph      = "★"
	emptyStarGlyph = "☆"
)

// renderStars draws a ten slot star bar filled up to n.
func renderStars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > starScale {
		n = starScale
	}
	return strings.Repeat(starGlyph, n) + strings.Repeat(emptyStarGlyph, starScale-n)
}

func reviewsLabel(n int) string {
	switch n {
	case 0:
		return "no reviews yet"
	case 1:
		return "1 review"
	default:
		return fmt.Sprintf("%d reviews", n)
	}
}

func renderCard(label string, value int, active bool) string {
	if active {
		return fmt.Sprintf("[*%s: %d*]", label, value)
	}
	return fmt.Sprintf("[ %s: %d ]", label, value)
}

// renderHome draws the roster screen: stat cards, active filters, and
// the teacher cards in their current order.
func renderHome(stats service.Stats, b service.Browse, teachers []model.Teacher, summary func(int) rating.Summary) string {
	var sb strings.Builder

	sb.WriteString("ClassPulse - Faculty Feedback\n\n")

	sb.WriteString(renderCard("Faculty", stats.Faculty, b.ActiveCard == service.CardFaculty))
	sb.WriteString("  ")
	sb.WriteString(renderCard("Departments", stats.Departments, b.ActiveCard == service.CardDepartments))
	sb.WriteString("  ")
	sb.WriteString(renderCard("Reviews", stats.Reviews, b.ActiveCard == service.CardReviews))
	sb.WriteString("\n\n")

	// A query set by a now-hidden search box still filters the roster,
	// so it stays on the filter line until cleared.
	fmt.Fprintf(&sb, "Department: %s | Sort: %s", b.Department, b.Sort)
	if b.SearchOpen || b.Search != "" {
		fmt.Fprintf(&sb, " | Search: %q", b.Search)
	}
	sb.WriteString("\n\n")

	if len(teachers) == 0 {
		sb.WriteString("No teachers match the current filters.\n")
	}
	for _, t := range teachers {
		sum := summary(t.ID)
		fmt.Fprintf(&sb, "%3d. %s\n", t.ID, t.Name)
		fmt.Fprintf(&sb, "     %s / %s\n", t.Department, t.Subject)
		fmt.Fprintf(&sb, "     %s %s (%s)\n", starGlyph, sum.DisplayAverage(), reviewsLabel(sum.Count))
	}

	sb.WriteString("\nCommands: <id> | search [text] | dept <name|all> | sort <name|rating|feedbacks> | faculty | departments | reviews | clear | help | quit\n")
	return sb.String()
}

// renderFeedback draws the rating form and the teacher's feedback list,
// newest first.
func renderFeedback(teacher model.Teacher, draft service.Draft, feed []model.Feedback, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Feedback for %s\n", teacher.Name)
	fmt.Fprintf(&sb, "%s / %s\n\n", teacher.Department, teacher.Subject)

	fmt.Fprintf(&sb, "Your rating:  %s", renderStars(draft.Rating))
	if draft.Rating > 0 {
		fmt.Fprintf(&sb, "  %d/10", draft.Rating)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Your comment: %s\n\n", draft.Comment)

	sb.WriteString("Recent feedback:\n")
	if len(feed) == 0 {
		sb.WriteString("  Nothing yet. Be the first to leave a note.\n")
	}
	for _, fb := range feed {
		fmt.Fprintf(&sb, "  %s %d/10  %s  %s\n", starGlyph, fb.Rating, fb.AnonymousID, timefmt.Elapsed(now, fb.SubmittedAt))
		fmt.Fprintf(&sb, "    %s\n", fb.Comment)
	}

	sb.WriteString("\nCommands: rate <1-10> | comment <text> | submit | back | help | quit\n")
	return sb.String()
}

// renderSuccess draws the confirmation screen after a submission.
func renderSuccess(teacher model.Teacher, pseudonym string) string {
	var sb strings.Builder

	sb.WriteString("Thank you!\n\n")
	fmt.Fprintf(&sb, "Your feedback for %s was recorded as %s.\n", teacher.Name, pseudonym)
	sb.WriteString("It stays anonymous and lives only for this session.\n")

	sb.WriteString("\nCommands: home | more | quit\n")
	return sb.String()
}

// renderHelp lists the commands for the current view.
func renderHelp(kind view.Kind) string {
	var sb strings.Builder

	sb.WriteString("Commands for this screen:\n")
	switch kind {
	case view.KindFeedback:
		sb.WriteString("  rate <1-10>      pick a star rating\n")
		sb.WriteString("  comment <text>   write the feedback comment\n")
		sb.WriteString("  submit           send the feedback\n")
		sb.WriteString("  back             return to the roster\n")
	case view.KindSuccess:
		sb.WriteString("  home | more      return to the roster\n")
	default:
		sb.WriteString("  <id>                             open a teacher's feedback form\n")
		sb.WriteString("  search [text]                    toggle the search box or set the query\n")
		sb.WriteString("  dept <name|all>                  filter by department\n")
		sb.WriteString("  sort <name|rating|feedbacks>     reorder the roster\n")
		sb.WriteString("  faculty | departments | reviews  tap a stat card\n")
		sb.WriteString("  clear                            reset all filters\n")
	}
	sb.WriteString("  metrics          print widget counters\n")
	sb.WriteString("  help             this text\n")
	sb.WriteString("  quit             leave\n")
	return sb.String()
}
