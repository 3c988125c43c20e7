package recurrence

import (
	"fmt"

	"github.com/avlasov/legal-planner-backend/internal/model"
)

// ValidateRule checks that a rule's parameters are internally consistent
// for its frequency. A rule failing validation is skipped during
// consolidation rather than aborting it.
func ValidateRule(r *model.RecurrenceRule) error {
	if r.Interval < 1 {
		return fmt.Errorf("interval must be positive, got %d", r.Interval)
	}

	if r.StartDate.IsZero() {
		return fmt.Errorf("start date must be set")
	}

	switch r.Frequency {
	case model.FrequencyDaily:
	case model.FrequencyWeekly:
		if len(r.DaysOfWeek) == 0 {
			return fmt.Errorf("weekly rule has no days of week")
		}
	case model.FrequencyMonthly:
		if r.DayOfMonth < 1 || r.DayOfMonth > 31 {
			return fmt.Errorf("monthly rule has invalid day of month %d", r.DayOfMonth)
		}
	case model.FrequencyYearly:
		if r.DayOfMonth < 1 || r.DayOfMonth > 31 {
			return fmt.Errorf("yearly rule has invalid day of month %d", r.DayOfMonth)
		}
		if r.Month < 1 || r.Month > 12 {
			return fmt.Errorf("yearly rule has invalid month %d", r.Month)
		}
	default:
		return fmt.Errorf("unknown frequency: %v", r.Frequency)
	}

	switch r.End.Type {
	case model.EndNever:
	case model.EndByDate:
		if r.End.Date == nil {
			return fmt.Errorf("end-by-date rule has no end date")
		}
	case model.EndAfterCount:
		if r.End.Count < 1 {
			return fmt.Errorf("end-after-count rule has invalid count %d", r.End.Count)
		}
	default:
		return fmt.Errorf("unknown end condition: %v", r.End.Type)
	}

	switch r.Kind {
	case model.KindTask:
		if r.Task == nil {
			return fmt.Errorf("task rule has no task template")
		}
	case model.KindEvent:
		if r.Event == nil {
			return fmt.Errorf("event rule has no event template")
		}
	default:
		return fmt.Errorf("rules cannot template entity kind %v", r.Kind)
	}

	return nil
}
