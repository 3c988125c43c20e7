package model

import (
	"time"

	"github.com/google/uuid"
)

type RuleCreate struct {
	FirmID           uuid.UUID
	Kind             EntityKind
	Frequency        Frequency
	Interval         int
	DaysOfWeek       map[time.Weekday]struct{}
	DayOfMonth       int
	Month            time.Month
	TimeOfDay        time.Duration
	BusinessDaysOnly bool
	StartDate        time.Time
	End              EndCondition
	Task             *TaskTemplate
	Event            *EventTemplate
}

type RecurrenceRule struct {
	ID                 int64
	Active             bool
	Exclusions         map[int64]struct{}
	OccurrencesCreated int
	LastExecutedAt     *time.Time
	NextExecutedAt     *time.Time
	RuleCreate
}

// TaskTemplate and EventTemplate carry the fields copied onto every
// occurrence materialized from the rule. Exactly one of them is set,
// matching the rule's Kind.
type TaskTemplate struct {
	Title       string
	Description string
	Priority    Priority
	AssigneeIDs []int64
	CaseID      *int64
	MatterID    *int64
}

type EventTemplate struct {
	Title       string
	Description string
	Color       string
	AssigneeIDs []int64
	CaseID      *int64
	MatterID    *int64
}

type EntityKind int

const (
	KindTask EntityKind = iota
	KindEvent
	KindHearing
)

type Frequency int

const (
	FrequencyDaily Frequency = iota
	FrequencyWeekly
	FrequencyMonthly
	FrequencyYearly
)

type EndConditionType int

const (
	EndNever EndConditionType = iota
	EndByDate
	EndAfterCount
)

type EndCondition struct {
	Type  EndConditionType
	Date  *time.Time
	Count int
}

type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// DateKey collapses a timestamp to its calendar date, keyed as midnight
// UTC unix seconds. Exclusion sets and deduplication compare at this
// granularity.
func DateKey(t time.Time) int64 {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix()
}

// DateOnly truncates a timestamp to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
