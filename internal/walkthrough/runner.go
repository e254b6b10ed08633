package walkthrough

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	service "github.com/cmcleod/classpulse/internal/app"
	"github.com/cmcleod/classpulse/internal/domain/model"
	"github.com/cmcleod/classpulse/internal/domain/roster"
	"github.com/cmcleod/classpulse/pkg/logger"
	"github.com/cmcleod/classpulse/pkg/metrics"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete scripted walkthrough.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting classpulse walkthrough",
		logger.Int("submissions", config.Submissions),
		logger.Int64("seed", config.Seed),
		logger.String("transcript", config.TranscriptPath),
		logger.Any("verbose", config.Verbose))

	// Step 1: Start the widget on a scripted clock
	clock := clockwork.NewFakeClockAt(scriptEpoch)
	svc := service.New(service.WithClock(clock))
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("widget start failed: %w", err)
	}
	defer svc.Stop()

	rng := rand.New(rand.NewSource(config.Seed)) //nolint:gosec // seeded source keeps the script reproducible

	// Step 2: Exercise the browse surface
	if err := walkBrowse(ctx, svc); err != nil {
		return fmt.Errorf("browse walkthrough failed: %w", err)
	}

	// Step 3: Probe the validation gate
	if err := walkValidation(ctx, svc, stats); err != nil {
		return fmt.Errorf("validation walkthrough failed: %w", err)
	}

	// Step 4: Submit the scripted reviews
	transcript, err := submitReviews(ctx, svc, clock, rng, config, stats)
	if err != nil {
		return fmt.Errorf("scripted submissions failed: %w", err)
	}

	// Step 5: Verify the derived aggregates
	if err := verifyAggregates(ctx, svc, transcript, stats, config.Verbose); err != nil {
		return fmt.Errorf("aggregate verification failed: %w", err)
	}

	// Step 6: Save the transcript to file
	if err := saveTranscript(ctx, config, transcript); err != nil {
		logger.Get().Warn(ctx, "failed to save transcript", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "walkthrough completed successfully")
	return nil
}

// submitReviews drives the scripted reviews through the widget and
// collects a transcript of what the log accepted.
func submitReviews(ctx context.Context, svc *service.Service, clock *clockwork.FakeClock, rng *rand.Rand, config *Config, stats *Stats) ([]Submission, error) {
	stats.SubmissionsPlanned = config.Submissions
	logger.Get().Info(ctx, "submitting scripted reviews", logger.Int("count", config.Submissions))

	// The scripted run always sits on the built-in roster, so teacher
	// ids are contiguous from 1.
	teachers := roster.DefaultTeachers()
	byID := make(map[int]model.Teacher, len(teachers))
	for _, t := range teachers {
		byID[t.ID] = t
	}

	transcript := make([]Submission, 0, config.Submissions)
	for i := 0; i < config.Submissions; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during submission %d: %w", i, ctx.Err())
		default:
		}

		clock.Advance(nextGap(rng))

		teacherID := pickTeacher(rng, len(teachers))
		stars := nextRating(rng)
		comment := nextComment(rng)

		if err := svc.SelectTeacher(ctx, teacherID); err != nil {
			return nil, fmt.Errorf("failed to select teacher %d: %w", teacherID, err)
		}
		svc.UpdateDraftRating(ctx, stars)
		svc.UpdateDraftComment(ctx, comment)
		if err := svc.Submit(ctx); err != nil {
			return nil, fmt.Errorf("scripted submission %d rejected: %w", i, err)
		}

		// The newest feed entry is the review we just submitted.
		feed := svc.Feed(ctx)
		if len(feed) == 0 {
			return nil, fmt.Errorf("submission %d accepted but missing from the feed", i)
		}
		latest := feed[0]

		info := byID[teacherID]
		transcript = append(transcript, Submission{
			ID:          latest.ID.String(),
			TeacherID:   teacherID,
			Teacher:     info.Name,
			Department:  info.Department,
			AnonymousID: latest.AnonymousID,
			Rating:      stars,
			Comment:     comment,
			SubmittedAt: latest.SubmittedAt.UTC().Format(time.RFC3339),
		})

		svc.GoHome(ctx)
	}

	stats.SubmissionsAccepted = len(transcript)
	logger.Get().Info(ctx, "scripted reviews submitted", logger.Int("accepted", len(transcript)))
	return transcript, nil
}

// saveTranscript writes the accepted submissions to a JSON file.
func saveTranscript(ctx context.Context, config *Config, transcript []Submission) error {
	if len(transcript) == 0 {
		return fmt.Errorf("no submissions to save")
	}

	// Determine output filename
	filename := config.TranscriptPath
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "walkthrough_transcript_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write submissions to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, sub := range transcript {
		jsonData, err := json.Marshal(sub)
		if err != nil {
			return fmt.Errorf("failed to marshal submission %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write submission %d: %w", i, err)
		}

		// Add comma except for last submission
		if i < len(transcript)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "transcript saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final walkthrough statistics.
func displayFinalStats(stats *Stats) {
	var submissionsPerSecond float64
	if stats.Duration > 0 {
		submissionsPerSecond = float64(stats.SubmissionsAccepted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("submissionsPlanned", stats.SubmissionsPlanned),
		logger.Int("submissionsAccepted", stats.SubmissionsAccepted),
		logger.Int("rejectionsObserved", stats.RejectionsObserved),
		logger.Int("teachersReviewed", stats.TeachersReviewed),
		logger.Int("summariesVerified", stats.SummariesVerified),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("submissionsPerSecond", submissionsPerSecond))
}

// metricsSnapshot returns the Prometheus exposition text for verbose
// output.
func metricsSnapshot() (string, error) {
	return metrics.DumpText()
}
