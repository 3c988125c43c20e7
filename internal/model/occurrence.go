package model

import (
	"time"

	"github.com/google/uuid"
)

type Occurrence struct {
	ID          string
	FirmID      uuid.UUID
	RuleID      *int64
	EntityID    *int64
	Kind        EntityKind
	Virtual     bool
	Start       time.Time
	Title       string
	Description string
	Priority    Priority
	Color       string
	Status      Status
	AssigneeIDs []int64
	CaseID      *int64
	MatterID    *int64
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusScheduled  Status = "scheduled"
	StatusAdjourned  Status = "adjourned"
)

type OccurrencesFilter struct {
	From       time.Time
	To         time.Time
	Kinds      []EntityKind
	Statuses   []Status
	AssigneeID *int64
}

// RuleIssue is a non-fatal diagnostic produced during consolidation or
// materialization: a malformed rule that was skipped, or a template
// reference to an entity that no longer exists.
type RuleIssue struct {
	RuleID int64
	Reason string
}
