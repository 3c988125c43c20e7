package rules

import (
	"time"

	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/google/uuid"
)

type ruleDTO struct {
	ID                 int64
	FirmID             uuid.UUID
	Kind               int
	Frequency          int
	RepeatInterval     int
	DaysOfWeek         []int64
	DayOfMonth         int
	Month              int
	TimeOfDay          time.Duration
	BusinessDaysOnly   bool
	Active             bool
	StartDate          time.Time
	EndType            int
	EndDate            *time.Time
	EndCount           int
	Exclusions         []time.Time
	OccurrencesCreated int
	LastExecutedAt     *time.Time
	NextExecutedAt     *time.Time
	Title              string
	Description        string
	Priority           int
	Color              string
	AssigneeIDs        []int64
	CaseID             *int64
	MatterID           *int64
}

func mapToRule(dto *ruleDTO) *model.RecurrenceRule {
	daysOfWeek := make(map[time.Weekday]struct{}, len(dto.DaysOfWeek))
	for _, d := range dto.DaysOfWeek {
		daysOfWeek[time.Weekday(d)] = struct{}{}
	}

	exclusions := make(map[int64]struct{}, len(dto.Exclusions))
	for _, e := range dto.Exclusions {
		exclusions[model.DateKey(e)] = struct{}{}
	}

	rule := &model.RecurrenceRule{
		ID:                 dto.ID,
		Active:             dto.Active,
		Exclusions:         exclusions,
		OccurrencesCreated: dto.OccurrencesCreated,
		LastExecutedAt:     dto.LastExecutedAt,
		NextExecutedAt:     dto.NextExecutedAt,
		RuleCreate: model.RuleCreate{
			FirmID:           dto.FirmID,
			Kind:             model.EntityKind(dto.Kind),
			Frequency:        model.Frequency(dto.Frequency),
			Interval:         dto.RepeatInterval,
			DaysOfWeek:       daysOfWeek,
			DayOfMonth:       dto.DayOfMonth,
			Month:            time.Month(dto.Month),
			TimeOfDay:        dto.TimeOfDay,
			BusinessDaysOnly: dto.BusinessDaysOnly,
			StartDate:        dto.StartDate,
			End: model.EndCondition{
				Type:  model.EndConditionType(dto.EndType),
				Date:  dto.EndDate,
				Count: dto.EndCount,
			},
		},
	}

	switch rule.Kind {
	case model.KindTask:
		rule.Task = &model.TaskTemplate{
			Title:       dto.Title,
			Description: dto.Description,
			Priority:    model.Priority(dto.Priority),
			AssigneeIDs: dto.AssigneeIDs,
			CaseID:      dto.CaseID,
			MatterID:    dto.MatterID,
		}
	case model.KindEvent:
		rule.Event = &model.EventTemplate{
			Title:       dto.Title,
			Description: dto.Description,
			Color:       dto.Color,
			AssigneeIDs: dto.AssigneeIDs,
			CaseID:      dto.CaseID,
			MatterID:    dto.MatterID,
		}
	}

	return rule
}

// templateColumns flattens the rule's template variant into the shared
// column set.
func templateColumns(rule *model.RecurrenceRule) (title, description string, priority int, color string, assigneeIDs []int64, caseID, matterID *int64) {
	switch rule.Kind {
	case model.KindTask:
		t := rule.Task
		return t.Title, t.Description, int(t.Priority), "", t.AssigneeIDs, t.CaseID, t.MatterID
	case model.KindEvent:
		e := rule.Event
		return e.Title, e.Description, 0, e.Color, e.AssigneeIDs, e.CaseID, e.MatterID
	}
	return
}

func weekdaySlice(days map[time.Weekday]struct{}) []int64 {
	res := make([]int64, 0, len(days))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if _, ok := days[d]; ok {
			res = append(res, int64(d))
		}
	}
	return res
}

func exclusionSlice(exclusions map[int64]struct{}) []time.Time {
	res := make([]time.Time, 0, len(exclusions))
	for e := range exclusions {
		res = append(res, time.Unix(e, 0).UTC())
	}
	return res
}
