package walkthrough

import "time"

// Config holds configuration for the scripted walkthrough
type Config struct {
	Submissions    int    // Number of scripted reviews to submit
	Seed           int64  // Seed for the scripted random source
	TranscriptPath string // Output file for the submission transcript
	LogFile        string // Log file for walkthrough output
	Verbose        bool   // Enable verbose logging
}

// Submission is one transcript record for an accepted review
type Submission struct {
	ID          string `json:"id"`
	TeacherID   int    `json:"teacher_id"`
	Teacher     string `json:"teacher"`
	Department  string `json:"department"`
	AnonymousID string `json:"anonymous_id"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	SubmittedAt string `json:"submitted_at"`
}

// Stats holds walkthrough statistics
type Stats struct {
	SubmissionsPlanned  int
	SubmissionsAccepted int
	RejectionsObserved  int
	TeachersReviewed    int
	SummariesVerified   int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
