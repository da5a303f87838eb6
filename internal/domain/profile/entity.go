package profile

import (
	"time"

	"github.com/google/uuid"
)

// WorkHistoryRecord is one job in a user's canonical work history. A nil
// EndDate means a current position. Records are created when no existing
// record matches an incoming fact and updated in place on a match; the
// reconciler never deletes them.
type WorkHistoryRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Company   string
	JobTitle  string
	StartDate *time.Time
	EndDate   *time.Time
	CreatedAt time.Time
}

// WorkAchievement belongs to exactly one work history record. The full set
// for a record is replaced wholesale on every reconciliation run.
type WorkAchievement struct {
	ID            uuid.UUID
	WorkHistoryID uuid.UUID
	Description   string
	CreatedAt     time.Time
}

// KeyAchievement is a profile-level accomplishment with no work-history
// owner. Same full-replace lifecycle as WorkAchievement.
type KeyAchievement struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Content   string
	CreatedAt time.Time
}
