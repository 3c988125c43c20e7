package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/avlasov/legal-planner-backend/internal/model"
)

const dateFormat = "2006-01-02"
const timeOfDayFormat = "15:04"

// date is a calendar day in request/response bodies, formatted
// "2006-01-02".
type date time.Time

func (d *date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected format %s", s, dateFormat)
	}
	*d = date(t)
	return nil
}

func (d date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format(dateFormat) + `"`), nil
}

var kindNames = map[model.EntityKind]string{
	model.KindTask:    "task",
	model.KindEvent:   "event",
	model.KindHearing: "hearing",
}

func parseKind(s string) (model.EntityKind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown entity kind %q", s)
}

var frequencyNames = map[model.Frequency]string{
	model.FrequencyDaily:   "daily",
	model.FrequencyWeekly:  "weekly",
	model.FrequencyMonthly: "monthly",
	model.FrequencyYearly:  "yearly",
}

func parseFrequency(s string) (model.Frequency, error) {
	for f, name := range frequencyNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown frequency %q", s)
}

var endTypeNames = map[model.EndConditionType]string{
	model.EndNever:      "never",
	model.EndByDate:     "by_date",
	model.EndAfterCount: "after_count",
}

func parseEndType(s string) (model.EndConditionType, error) {
	for e, name := range endTypeNames {
		if name == s {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown end condition %q", s)
}

type occurrenceResp struct {
	ID          string    `json:"id"`
	RuleID      *int64    `json:"rule_id,omitempty"`
	EntityID    *int64    `json:"entity_id,omitempty"`
	Kind        string    `json:"kind"`
	Virtual     bool      `json:"virtual"`
	Start       time.Time `json:"start"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Priority    int       `json:"priority"`
	Color       string    `json:"color,omitempty"`
	Status      string    `json:"status,omitempty"`
	AssigneeIDs []int64   `json:"assignee_ids,omitempty"`
	CaseID      *int64    `json:"case_id,omitempty"`
	MatterID    *int64    `json:"matter_id,omitempty"`
}

func mapToOccurrenceResp(o *model.Occurrence) (*occurrenceResp, error) {
	return &occurrenceResp{
		ID:          o.ID,
		RuleID:      o.RuleID,
		EntityID:    o.EntityID,
		Kind:        kindNames[o.Kind],
		Virtual:     o.Virtual,
		Start:       o.Start,
		Title:       o.Title,
		Description: o.Description,
		Priority:    int(o.Priority),
		Color:       o.Color,
		Status:      string(o.Status),
		AssigneeIDs: o.AssigneeIDs,
		CaseID:      o.CaseID,
		MatterID:    o.MatterID,
	}, nil
}

type issueResp struct {
	RuleID int64  `json:"rule_id,omitempty"`
	Reason string `json:"reason"`
}

func mapToIssueResp(issue *model.RuleIssue) (*issueResp, error) {
	return &issueResp{
		RuleID: issue.RuleID,
		Reason: issue.Reason,
	}, nil
}

type ruleResp struct {
	ID                 int64      `json:"id"`
	Kind               string     `json:"kind"`
	Frequency          string     `json:"frequency"`
	Interval           int        `json:"interval"`
	DaysOfWeek         []int      `json:"days_of_week,omitempty"`
	DayOfMonth         int        `json:"day_of_month,omitempty"`
	Month              int        `json:"month,omitempty"`
	TimeOfDay          string     `json:"time_of_day"`
	BusinessDaysOnly   bool       `json:"business_days_only"`
	Active             bool       `json:"active"`
	StartDate          date       `json:"start_date"`
	EndType            string     `json:"end_type"`
	EndDate            *date      `json:"end_date,omitempty"`
	EndCount           int        `json:"end_count,omitempty"`
	Exclusions         []date     `json:"exclusions,omitempty"`
	OccurrencesCreated int        `json:"occurrences_created"`
	LastExecutedAt     *time.Time `json:"last_executed_at,omitempty"`
	NextExecutedAt     *time.Time `json:"next_executed_at,omitempty"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Priority           int        `json:"priority"`
	Color              string     `json:"color,omitempty"`
	AssigneeIDs        []int64    `json:"assignee_ids,omitempty"`
	CaseID             *int64     `json:"case_id,omitempty"`
	MatterID           *int64     `json:"matter_id,omitempty"`
}

func mapToRuleResp(rule *model.RecurrenceRule) (*ruleResp, error) {
	resp := &ruleResp{
		ID:                 rule.ID,
		Kind:               kindNames[rule.Kind],
		Frequency:          frequencyNames[rule.Frequency],
		Interval:           rule.Interval,
		DayOfMonth:         rule.DayOfMonth,
		Month:              int(rule.Month),
		TimeOfDay:          time.Unix(0, 0).UTC().Add(rule.TimeOfDay).Format(timeOfDayFormat),
		BusinessDaysOnly:   rule.BusinessDaysOnly,
		Active:             rule.Active,
		StartDate:          date(rule.StartDate),
		EndType:            endTypeNames[rule.End.Type],
		EndCount:           rule.End.Count,
		OccurrencesCreated: rule.OccurrencesCreated,
		LastExecutedAt:     rule.LastExecutedAt,
		NextExecutedAt:     rule.NextExecutedAt,
	}

	for d := time.Sunday; d <= time.Saturday; d++ {
		if _, ok := rule.DaysOfWeek[d]; ok {
			resp.DaysOfWeek = append(resp.DaysOfWeek, int(d))
		}
	}

	if rule.End.Date != nil {
		endDate := date(*rule.End.Date)
		resp.EndDate = &endDate
	}

	for key := range rule.Exclusions {
		resp.Exclusions = append(resp.Exclusions, date(time.Unix(key, 0).UTC()))
	}

	switch rule.Kind {
	case model.KindTask:
		resp.Title = rule.Task.Title
		resp.Description = rule.Task.Description
		resp.Priority = int(rule.Task.Priority)
		resp.AssigneeIDs = rule.Task.AssigneeIDs
		resp.CaseID = rule.Task.CaseID
		resp.MatterID = rule.Task.MatterID
	case model.KindEvent:
		resp.Title = rule.Event.Title
		resp.Description = rule.Event.Description
		resp.Color = rule.Event.Color
		resp.AssigneeIDs = rule.Event.AssigneeIDs
		resp.CaseID = rule.Event.CaseID
		resp.MatterID = rule.Event.MatterID
	}

	return resp, nil
}
