package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmcleod/classpulse/internal/adapters/term"
	service "github.com/cmcleod/classpulse/internal/app"
	"github.com/cmcleod/classpulse/internal/config"
	"github.com/cmcleod/classpulse/internal/domain/roster"
	"github.com/cmcleod/classpulse/internal/domain/session"
	"github.com/cmcleod/classpulse/pkg/logger"
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to flush logs: " + err.Error() + "\n")
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Apply configured log format (fallback to text on invalid input)
	if err := logger.SetFormatString(cfg.LogFormat); err != nil {
		loggerInstance.Warn(ctx, "invalid log_format; falling back to text", logger.String("log_format", cfg.LogFormat), logger.Error(err))
		_ = logger.SetFormatString("text")
	}
	// Format switches swap the global handler; re-resolve the instance.
	loggerInstance = logger.Get()

	// Create and start the widget with configuration options
	svc := service.New(buildServiceOptions(ctx, cfg)...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start widget: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// The terminal UI owns the foreground until quit, EOF, or a signal.
	ui := term.NewUI(svc,
		term.WithLogger(loggerInstance),
		term.WithFocusDelay(time.Duration(cfg.SearchFocusDelayMS)*time.Millisecond),
	)

	if err := ui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		loggerInstance.Error(ctx, "terminal ui failed", logger.Error(err))
		return
	}

	loggerInstance.Info(ctx, "widget stopped")
}

// buildServiceOptions turns the loaded configuration into service
// options, including the roster choice. The anonymous session is drawn
// here, once per process, and handed to the service explicitly.
func buildServiceOptions(ctx context.Context, cfg *config.Config) []service.Option {
	opts := []service.Option{
		service.WithLogger(logger.Get()),
		service.WithFeedLimit(cfg.FeedLimit),
		service.WithSession(session.New()),
	}

	opts = append(opts, service.WithRoster(loadRoster(ctx, cfg)))
	return opts
}

// loadRoster builds the roster from the configured file, falling back
// to the built-in faculty list when loading fails.
func loadRoster(ctx context.Context, cfg *config.Config) *roster.Roster {
	locale := roster.WithLocale(cfg.LocaleTag())

	if cfg.RosterPath == "" {
		return roster.New(roster.DefaultTeachers(), locale)
	}

	teachers, err := config.LoadRoster(ctx, cfg.RosterPath)
	if err != nil {
		logger.Get().Warn(ctx, "failed to load roster file; keeping the built-in list",
			logger.String("roster_path", cfg.RosterPath), logger.Error(err))
		return roster.New(roster.DefaultTeachers(), locale)
	}

	logger.Get().Info(ctx, "roster loaded from file",
		logger.String("roster_path", cfg.RosterPath),
		logger.Int("teachers", len(teachers)))
	return roster.New(teachers, locale)
}
