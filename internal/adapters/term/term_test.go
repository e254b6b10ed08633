package term

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	service "github.com/cmcleod/classpulse/internal/app"
	"github.com/cmcleod/classpulse/internal/view"
	"github.com/cmcleod/classpulse/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// syncBuffer guards concurrent writes from the UI goroutine against
// reads from the test goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// runScript feeds newline-joined commands through a fresh widget and
// returns the rendered output plus the service end state.
func runScript(ctx context.Context, t *testing.T, commands ...string) (string, *service.Service) {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	svc := service.New(service.WithClock(clock))
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start service: %v", err)
	}

	var out bytes.Buffer
	ui := NewUI(svc,
		WithInput(strings.NewReader(strings.Join(commands, "\n")+"\n")),
		WithOutput(&out),
		WithClock(clock),
	)

	if err := ui.Run(ctx); err != nil {
		t.Fatalf("run ui: %v", err)
	}
	return out.String(), svc
}

func TestUI_BrowseAndSubmit(t *testing.T) {
	Convey("Given a scripted browse and submit session", t, func() {
		ctx := context.Background()
		out, svc := runScript(ctx, t,
			"search kumar",
			"1",
			"rate 9",
			"comment Great class",
			"submit",
			"home",
			"quit",
		)
		defer svc.Stop()

		Convey("Then the screens should render along the way", func() {
			So(out, ShouldContainSubstring, "ClassPulse - Faculty Feedback")
			So(out, ShouldContainSubstring, `Search: "kumar"`)
			So(out, ShouldContainSubstring, "Feedback for Dr. Rajesh Kumar")
			So(out, ShouldContainSubstring, "★★★★★★★★★☆  9/10")
			So(out, ShouldContainSubstring, "Thank you!")
		})

		Convey("Then the submission should be recorded", func() {
			So(svc.Stats(ctx).Reviews, ShouldEqual, 1)
			So(svc.TeacherSummary(ctx, 1).DisplayAverage(), ShouldEqual, "9.0")
			So(svc.View().Kind(), ShouldEqual, view.KindHome)
		})
	})
}

func TestUI_ValidationMessages(t *testing.T) {
	Convey("Given a visitor who submits too early", t, func() {
		ctx := context.Background()
		out, svc := runScript(ctx, t,
			"2",
			"submit",
			"comment Dense but rewarding",
			"submit",
			"rate 8",
			"submit",
			"more",
			"quit",
		)
		defer svc.Stop()

		Convey("Then each missing field should be named in order", func() {
			So(out, ShouldContainSubstring, "! please write a comment before submitting")
			So(out, ShouldContainSubstring, "! please pick a rating between 1 and 10")
		})

		Convey("Then the corrected submission should land", func() {
			So(out, ShouldContainSubstring, "Thank you!")
			So(svc.Stats(ctx).Reviews, ShouldEqual, 1)
			So(svc.View().Kind(), ShouldEqual, view.KindHome)
		})
	})
}

func TestUI_HomeControls(t *testing.T) {
	Convey("Given a scripted filter session", t, func() {
		ctx := context.Background()
		out, svc := runScript(ctx, t,
			"dept Computer Science",
			"sort rating",
			"reviews",
			"clear",
			"frobnicate",
			"quit",
		)
		defer svc.Stop()

		Convey("Then the filter line should track each command", func() {
			So(out, ShouldContainSubstring, "Department: Computer Science")
			So(out, ShouldContainSubstring, "Sort: rating")
			So(out, ShouldContainSubstring, "[*Reviews: 0*]")
		})

		Convey("Then unknown commands should be called out", func() {
			So(out, ShouldContainSubstring, `! unknown command "frobnicate"`)
		})

		Convey("Then clear should restore the defaults", func() {
			b := svc.Browse()
			So(b.Department, ShouldEqual, "all")
			So(string(b.Sort), ShouldEqual, "name")
			So(b.ActiveCard, ShouldEqual, service.CardNone)
		})
	})
}

func TestUI_MetricsCommand(t *testing.T) {
	Convey("Given the metrics command", t, func() {
		ctx := context.Background()
		out, svc := runScript(ctx, t, "metrics", "quit")
		defer svc.Stop()

		Convey("Then the exposition text should print", func() {
			So(out, ShouldContainSubstring, "classpulse_widget_feedback_submitted_total")
			So(out, ShouldContainSubstring, "# HELP")
		})
	})
}

func TestUI_EOFEndsRun(t *testing.T) {
	Convey("Given input that simply ends", t, func() {
		ctx := context.Background()
		out, svc := runScript(ctx, t)
		defer svc.Stop()

		Convey("Then the home screen should have rendered once", func() {
			So(out, ShouldContainSubstring, "ClassPulse - Faculty Feedback")
		})
	})
}

func TestUI_ContextCancel(t *testing.T) {
	Convey("Given a UI waiting on input", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		svc := service.New()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		pr, pw := io.Pipe()
		defer func() { _ = pw.Close() }()

		out := &syncBuffer{}
		ui := NewUI(svc, WithInput(pr), WithOutput(out))

		errCh := make(chan error, 1)
		go func() { errCh <- ui.Run(ctx) }()

		Convey("When the context is cancelled", func() {
			cancel()

			var err error
			select {
			case err = <-errCh:
			case <-time.After(2 * time.Second):
				t.Fatal("ui did not stop on cancel")
			}

			Convey("Then run should return the cancellation", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestUI_SearchFocusNudge(t *testing.T) {
	Convey("Given a search toggle behind a fake clock", t, func() {
		ctx := context.Background()
		clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
		svc := service.New(service.WithClock(clock))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		pr, pw := io.Pipe()
		out := &syncBuffer{}
		ui := NewUI(svc,
			WithInput(pr),
			WithOutput(out),
			WithClock(clock),
			WithFocusDelay(50*time.Millisecond),
		)

		errCh := make(chan error, 1)
		go func() { errCh <- ui.Run(ctx) }()

		Convey("When the search box opens and the delay elapses", func() {
			_, err := io.WriteString(pw, "search\n")
			So(err, ShouldBeNil)

			// Wait for the one-shot timer to be armed, then fire it.
			clock.BlockUntil(1)
			clock.Advance(50 * time.Millisecond)

			nudged := waitForOutput(out, "Search ready")
			_, err = io.WriteString(pw, "quit\n")
			So(err, ShouldBeNil)

			select {
			case runErr := <-errCh:
				So(runErr, ShouldBeNil)
			case <-time.After(2 * time.Second):
				t.Fatal("ui did not quit")
			}

			Convey("Then the focus nudge should have printed", func() {
				So(nudged, ShouldBeTrue)
				So(out.String(), ShouldContainSubstring, `type "search <text>"`)
			})
		})
	})
}

// waitForOutput polls the buffer until substr shows up or the deadline
// passes.
func waitForOutput(out *syncBuffer, substr string) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(out.String(), substr) {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}
