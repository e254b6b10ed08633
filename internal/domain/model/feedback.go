// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds for a single review.
const (
	MinRating = 1
	MaxRating = 10
)

// Teacher represents one roster entry. The roster is seeded once at
// startup and treated as immutable afterwards.
type Teacher struct {
	ID         int    // stable roster identifier
	Name       string // display name, e.g. "Dr. Rajesh Kumar"
	Department string // department label used for filtering
	Subject    string // subject taught, shown on cards
}

// Feedback captures a single submitted review. Entries are immutable
// once appended to the log.
type Feedback struct {
	ID          uuid.UUID // unique id for duplicate detection
	TeacherID   int       // roster id of the reviewed teacher
	AnonymousID string    // session pseudonym, e.g. "Anonymous 517"
	Comment     string    // trimmed review text
	Rating      int       // star rating in [MinRating, MaxRating]
	SubmittedAt time.Time // submission timestamp
}
