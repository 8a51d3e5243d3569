package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RunStatusQueued    = "QUEUED"
	RunStatusRunning   = "RUNNING"
	RunStatusCompleted = "COMPLETED"
	RunStatusFailed    = "FAILED"
)

const (
	SourceHelloAsso = "HELLOASSO"
	SourceSheet     = "GSHEET"
)

// SyncRun tracks one reconciliation run from the moment it is queued until
// its rows are exported.
type SyncRun struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	TotalRows int       `json:"total_rows"`
	Matched   int       `json:"matched"`
	Multiple  int       `json:"multiple"`
	Unmatched int       `json:"unmatched"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSyncRun(source string) *SyncRun {
	return &SyncRun{
		ID:        uuid.New().String(),
		Source:    source,
		Status:    RunStatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// CountRow updates the per-status counters from one reconciled row.
func (r *SyncRun) CountRow(row Row) {
	r.TotalRows++
	switch row.ContactID {
	case "":
		r.Unmatched++
	case MultipleSentinel:
		r.Multiple++
	default:
		r.Matched++
	}
}
