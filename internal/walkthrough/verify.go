package walkthrough

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"

	service "github.com/cmcleod/classpulse/internal/app"
)

// teacherTotals accumulates one teacher's transcript ratings.
type teacherTotals struct {
	id    int
	name  string
	sum   int
	count int
}

// verifyAggregates recomputes every teacher's average from the
// transcript and compares it against what the widget reports.
func verifyAggregates(ctx context.Context, svc *service.Service, transcript []Submission, stats *Stats, verbose bool) error {
	log.Println("🔍 Verifying aggregates...")

	if len(transcript) == 0 {
		return fmt.Errorf("no submissions to verify")
	}

	totals := make(map[int]*teacherTotals)
	for _, sub := range transcript {
		t, ok := totals[sub.TeacherID]
		if !ok {
			t = &teacherTotals{id: sub.TeacherID, name: sub.Teacher}
			totals[sub.TeacherID] = t
		}
		t.sum += sub.Rating
		t.count++
	}
	stats.TeachersReviewed = len(totals)

	// The widget's one-decimal averages must match an independent
	// recomputation from the transcript.
	for id, t := range totals {
		summary := svc.TeacherSummary(ctx, id)
		if summary.Count != t.count {
			return fmt.Errorf("teacher %s: widget reports %d reviews, transcript has %d",
				t.name, summary.Count, t.count)
		}

		mean := float64(t.sum) / float64(t.count)
		want := fmt.Sprintf("%.1f", math.Round(mean*10)/10)
		if got := summary.DisplayAverage(); got != want {
			return fmt.Errorf("teacher %s: widget shows average %s, transcript says %s",
				t.name, got, want)
		}
		stats.SummariesVerified++
	}
	log.Printf("✅ %d teacher summaries match the transcript", stats.SummariesVerified)

	// The reviews total must cover exactly the accepted submissions.
	if got := svc.Stats(ctx).Reviews; got != len(transcript) {
		return fmt.Errorf("widget reports %d total reviews, transcript has %d", got, len(transcript))
	}

	if err := verifyFeedOrder(ctx, svc, transcript, totals); err != nil {
		return err
	}

	displayTopTeachers(totals, transcript, verbose)

	log.Println("✅ Aggregate verification completed")
	return nil
}

// verifyFeedOrder checks the busiest teacher's feed runs newest first
// and starts with the last accepted submission.
func verifyFeedOrder(ctx context.Context, svc *service.Service, transcript []Submission, totals map[int]*teacherTotals) error {
	busiest := 0
	for id, t := range totals {
		if busiest == 0 || t.count > totals[busiest].count {
			busiest = id
		}
	}

	if err := svc.SelectTeacher(ctx, busiest); err != nil {
		return fmt.Errorf("failed to open the busiest teacher: %w", err)
	}
	defer svc.GoHome(ctx)

	feed := svc.Feed(ctx)
	// The walkthrough service runs without a feed cap, so the feed
	// covers every accepted entry.
	if len(feed) != totals[busiest].count {
		return fmt.Errorf("feed for %s has %d entries, transcript has %d",
			totals[busiest].name, len(feed), totals[busiest].count)
	}
	for i := 1; i < len(feed); i++ {
		if feed[i].SubmittedAt.After(feed[i-1].SubmittedAt) {
			return fmt.Errorf("feed for %s is not newest first at entry %d", totals[busiest].name, i)
		}
	}

	// The newest entry is the last transcript record for that teacher.
	var lastID string
	for _, sub := range transcript {
		if sub.TeacherID == busiest {
			lastID = sub.ID
		}
	}
	if got := feed[0].ID.String(); got != lastID {
		return fmt.Errorf("feed for %s starts with %s, transcript ends with %s",
			totals[busiest].name, got, lastID)
	}

	log.Printf("✅ Feed for %s runs newest first (%d entries)", totals[busiest].name, len(feed))
	return nil
}

// displayTopTeachers shows the reviewed teachers ordered by average.
func displayTopTeachers(totals map[int]*teacherTotals, transcript []Submission, verbose bool) {
	ranked := make([]*teacherTotals, 0, len(totals))
	for _, t := range totals {
		ranked = append(ranked, t)
	}
	sort.Slice(ranked, func(i, j int) bool {
		ai := float64(ranked[i].sum) / float64(ranked[i].count)
		aj := float64(ranked[j].sum) / float64(ranked[j].count)
		if ai != aj {
			return ai > aj
		}
		return ranked[i].id < ranked[j].id
	})

	log.Printf("🏆 Teachers by average rating:")
	for i, t := range ranked {
		avg := float64(t.sum) / float64(t.count)
		log.Printf("   %d. %s - %.1f (%d reviews)", i+1, t.name, math.Round(avg*10)/10, t.count)
	}

	if verbose {
		sum, maxRating, minRating := 0, 0, 0
		for i, sub := range transcript {
			sum += sub.Rating
			if i == 0 || sub.Rating > maxRating {
				maxRating = sub.Rating
			}
			if i == 0 || sub.Rating < minRating {
				minRating = sub.Rating
			}
		}
		log.Printf(`📊 Rating statistics:
   Average: %.3f
   Maximum: %d
   Minimum: %d
`, float64(sum)/float64(len(transcript)), maxRating, minRating)

		if text, err := metricsSnapshot(); err == nil {
			log.Printf("📈 Metrics snapshot:\n%s", text)
		}
	}
}
