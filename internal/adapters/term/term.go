// Package term renders the widget views on a terminal and translates
// typed commands into service calls.
package term

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	service "github.com/cmcleod/classpulse/internal/app"
	"github.com/cmcleod/classpulse/internal/domain/model"
	"github.com/cmcleod/classpulse/internal/domain/rating"
	"github.com/cmcleod/classpulse/internal/domain/roster"
	"github.com/cmcleod/classpulse/internal/domain/session"
	"github.com/cmcleod/classpulse/internal/view"
	"github.com/cmcleod/classpulse/pkg/logger"
	"github.com/cmcleod/classpulse/pkg/metrics"
)

// defaultFocusDelay is how long after the search box opens the focus
// nudge prints.
const defaultFocusDelay = 100 * time.Millisecond

// Dependencies required by the terminal UI. Using an interface bundle
// keeps the presentation layer loosely coupled to the service.
type Dependencies interface {
	// View state
	View() view.View
	Session() session.Session

	// Home surface
	Stats(ctx context.Context) service.Stats
	Departments() []string
	VisibleRoster(ctx context.Context) []model.Teacher
	Browse() service.Browse
	TeacherSummary(ctx context.Context, teacherID int) rating.Summary

	// Navigation
	SelectTeacher(ctx context.Context, id int) error
	GoHome(ctx context.Context)

	// Browsing controls
	SetDepartment(ctx context.Context, dept string)
	SetSort(ctx context.Context, key roster.SortKey) error
	SetSearch(ctx context.Context, query string)
	OpenSearch(ctx context.Context)
	CloseSearch(ctx context.Context)
	ClearFilters(ctx context.Context)
	ActivateCard(ctx context.Context, card service.Card) error

	// Feedback form
	Draft() service.Draft
	UpdateDraftRating(ctx context.Context, stars int)
	UpdateDraftComment(ctx context.Context, text string)
	Submit(ctx context.Context) error
	Feed(ctx context.Context) []model.Feedback
}

// UI runs the read-dispatch-render loop over a line-based terminal.
type UI struct {
	deps Dependencies

	in  io.Reader
	out io.Writer

	clock      clockwork.Clock
	focusDelay time.Duration

	logger logger.Logger
}

// Option applies a configuration option to the UI.
type Option func(*UI)

// WithInput sets the reader commands arrive on.
func WithInput(r io.Reader) Option {
	return func(u *UI) {
		if r != nil {
			u.in = r
		}
	}
}

// WithOutput sets the writer screens render to.
func WithOutput(w io.Writer) Option {
	return func(u *UI) {
		if w != nil {
			u.out = w
		}
	}
}

// WithClock sets the clock used for elapsed-time labels and the focus
// timer.
func WithClock(clock clockwork.Clock) Option {
	return func(u *UI) {
		if clock != nil {
			u.clock = clock
		}
	}
}

// WithFocusDelay sets the delay before the search focus nudge.
func WithFocusDelay(d time.Duration) Option {
	return func(u *UI) {
		if d >= 0 {
			u.focusDelay = d
		}
	}
}

// WithLogger sets a custom logger for the UI.
func WithLogger(logger logger.Logger) Option {
	return func(u *UI) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// NewUI creates a terminal UI bound to deps.
func NewUI(deps Dependencies, opts ...Option) *UI {
	u := &UI{
		deps:       deps,
		in:         os.Stdin,
		out:        os.Stdout,
		clock:      clockwork.NewRealClock(),
		focusDelay: defaultFocusDelay,
	}

	// Apply all options
	for _, opt := range opts {
		opt(u)
	}

	return u
}

// Run blocks on the input loop until the user quits, the input closes,
// or ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	if u.logger == nil {
		u.logger = logger.Get()
	}

	lines := newLineQueue(u.in)
	defer func() { _ = lines.Close() }()

	u.logger.Info(ctx, "terminal ui started",
		logger.String("pseudonym", u.deps.Session().Pseudonym()),
	)

	u.render(ctx)

	// focusC is armed for one shot when the search box opens; nil
	// otherwise, which parks its select case.
	var focusC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-focusC:
			focusC = nil
			fmt.Fprintln(u.out, `Search ready: type "search <text>" to filter the roster.`)

		case line, ok := <-lines.C():
			if !ok {
				u.logger.Info(ctx, "input closed, leaving")
				return nil
			}

			searchWasOpen := u.deps.Browse().SearchOpen
			if quit := u.dispatch(ctx, line); quit {
				u.logger.Info(ctx, "user quit")
				return nil
			}
			if !searchWasOpen && u.deps.Browse().SearchOpen {
				focusC = u.clock.After(u.focusDelay)
			}
			u.render(ctx)
		}
	}
}

// render draws the current view followed by a prompt.
func (u *UI) render(ctx context.Context) {
	start := time.Now()
	defer func() {
		latency := time.Since(start).Milliseconds()
		metrics.RecordRenderLatency(float64(latency))
	}()

	v := u.deps.View()

	var screen string
	switch v.Kind() {
	case view.KindFeedback:
		teacher, _ := v.Teacher()
		screen = renderFeedback(teacher, u.deps.Draft(), u.deps.Feed(ctx), u.clock.Now())
	case view.KindSuccess:
		teacher, _ := v.Teacher()
		screen = renderSuccess(teacher, u.deps.Session().Pseudonym())
	default:
		screen = renderHome(u.deps.Stats(ctx), u.deps.Browse(), u.deps.VisibleRoster(ctx), func(teacherID int) rating.Summary {
			return u.deps.TeacherSummary(ctx, teacherID)
		})
	}

	fmt.Fprint(u.out, "\n"+screen)
	fmt.Fprint(u.out, "> ")
}

// dispatch runs one command line. It returns true when the user quits.
func (u *UI) dispatch(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	cmd, rest, _ := strings.Cut(line, " ")
	cmd = strings.ToLower(cmd)
	rest = strings.TrimSpace(rest)

	// Commands available on every view.
	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(u.out, renderHelp(u.deps.View().Kind()))
		return false
	case "metrics":
		text, err := metrics.DumpText()
		if err != nil {
			u.report(err)
			return false
		}
		fmt.Fprintln(u.out, text)
		return false
	case "home":
		u.deps.GoHome(ctx)
		return false
	}

	switch u.deps.View().Kind() {
	case view.KindFeedback:
		u.dispatchFeedback(ctx, cmd, rest)
	case view.KindSuccess:
		u.dispatchSuccess(ctx, cmd)
	default:
		u.dispatchHome(ctx, cmd, rest)
	}
	return false
}

func (u *UI) dispatchHome(ctx context.Context, cmd, rest string) {
	// A bare number opens that teacher's feedback form.
	if id, err := strconv.Atoi(cmd); err == nil {
		if err := u.deps.SelectTeacher(ctx, id); err != nil {
			u.report(err)
		}
		return
	}

	switch cmd {
	case "search":
		if rest == "" {
			if u.deps.Browse().SearchOpen {
				u.deps.CloseSearch(ctx)
			} else {
				u.deps.OpenSearch(ctx)
			}
			return
		}
		if !u.deps.Browse().SearchOpen {
			u.deps.OpenSearch(ctx)
		}
		u.deps.SetSearch(ctx, rest)
	case "dept", "department":
		u.deps.SetDepartment(ctx, rest)
	case "sort":
		if err := u.deps.SetSort(ctx, roster.SortKey(rest)); err != nil {
			u.report(err)
		}
	case "faculty":
		if err := u.deps.ActivateCard(ctx, service.CardFaculty); err != nil {
			u.report(err)
		}
	case "departments":
		if err := u.deps.ActivateCard(ctx, service.CardDepartments); err != nil {
			u.report(err)
		}
	case "reviews":
		if err := u.deps.ActivateCard(ctx, service.CardReviews); err != nil {
			u.report(err)
		}
	case "clear":
		u.deps.ClearFilters(ctx)
	default:
		u.unknown(cmd)
	}
}

func (u *UI) dispatchFeedback(ctx context.Context, cmd, rest string) {
	switch cmd {
	case "rate":
		stars, err := strconv.Atoi(rest)
		if err != nil {
			u.report(service.ErrRatingOutOfRange)
			return
		}
		// Out-of-range values are kept in the draft and rejected at
		// submit, matching the form's validation order.
		u.deps.UpdateDraftRating(ctx, stars)
	case "comment":
		u.deps.UpdateDraftComment(ctx, rest)
	case "submit":
		if err := u.deps.Submit(ctx); err != nil {
			u.report(err)
		}
	case "back":
		u.deps.GoHome(ctx)
	default:
		u.unknown(cmd)
	}
}

func (u *UI) dispatchSuccess(ctx context.Context, cmd string) {
	switch cmd {
	case "more", "again", "back":
		// Every success exit lands on home.
		u.deps.GoHome(ctx)
	default:
		u.unknown(cmd)
	}
}

func (u *UI) report(err error) {
	fmt.Fprintf(u.out, "! %s\n", err)
}

func (u *UI) unknown(cmd string) {
	fmt.Fprintf(u.out, "! unknown command %q; type help\n", cmd)
}
