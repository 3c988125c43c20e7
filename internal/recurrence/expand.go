package recurrence

import (
	"fmt"
	"time"

	"github.com/avlasov/legal-planner-backend/internal/model"
)

// Expand computes the virtual occurrences of a rule inside [from, to],
// both bounds inclusive at day granularity.
//
// Candidates are always walked from the rule's start date, never from the
// window start: a count-limited rule keeps a stable ordinal across
// separate windowed calls, and a rule edit simply redefines the series.
func Expand(rule *model.RecurrenceRule, from, to time.Time) ([]*model.Occurrence, error) {
	if err := ValidateRule(rule); err != nil {
		return nil, err
	}
	if !rule.Active {
		return nil, nil
	}

	windowFrom := model.DateOnly(from)
	windowTo := model.DateOnly(to)
	if windowTo.Before(windowFrom) {
		return nil, fmt.Errorf("window end %v precedes window start %v", to, from)
	}

	start := model.DateOnly(rule.StartDate)
	if start.After(windowTo) {
		return nil, nil
	}

	w := &walker{
		rule:       rule,
		windowFrom: windowFrom,
		windowTo:   windowTo,
	}

	switch rule.Frequency {
	case model.FrequencyDaily:
		w.daily(start)
	case model.FrequencyWeekly:
		w.weekly(start)
	case model.FrequencyMonthly:
		w.monthly(start)
	case model.FrequencyYearly:
		w.yearly(start)
	}

	return w.out, nil
}

type walker struct {
	rule       *model.RecurrenceRule
	windowFrom time.Time
	windowTo   time.Time
	ordinal    int
	out        []*model.Occurrence
}

// take consumes one candidate date. Candidates arrive in ascending order;
// take reports false once this and every later candidate is forbidden by
// the window bound or the rule's end condition.
func (w *walker) take(date time.Time) bool {
	r := w.rule

	if date.After(w.windowTo) {
		return false
	}
	if r.End.Type == model.EndByDate && date.After(model.DateOnly(*r.End.Date)) {
		return false
	}

	w.ordinal++
	if r.End.Type == model.EndAfterCount && w.ordinal > r.End.Count {
		return false
	}

	// An excluded date consumed its ordinal but emits nothing.
	if _, ok := r.Exclusions[model.DateKey(date)]; ok {
		return true
	}

	if date.Before(w.windowFrom) {
		return true
	}

	w.out = append(w.out, Instantiate(r, date))
	return true
}

func (w *walker) daily(start time.Time) {
	for d := start; !d.After(w.windowTo); d = d.AddDate(0, 0, w.rule.Interval) {
		if w.rule.BusinessDaysOnly && !IsBusinessDay(d) {
			// Weekend candidates are dropped entirely, not shifted, and
			// do not consume an ordinal.
			continue
		}
		if !w.take(d) {
			return
		}
	}
}

func (w *walker) weekly(start time.Time) {
	for week := weekStart(start); !week.After(w.windowTo); week = week.AddDate(0, 0, 7*w.rule.Interval) {
		for i := 0; i < 7; i++ {
			d := week.AddDate(0, 0, i)
			if d.Before(start) {
				continue
			}
			if !MatchesWeekday(d, w.rule.DaysOfWeek) {
				continue
			}
			if !w.take(d) {
				return
			}
		}
	}
}

func (w *walker) monthly(start time.Time) {
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for m := first; !m.After(w.windowTo); m = m.AddDate(0, w.rule.Interval, 0) {
		d := ClampDayOfMonth(m.Year(), m.Month(), w.rule.DayOfMonth)
		if d.Before(start) {
			continue
		}
		if !w.take(d) {
			return
		}
	}
}

func (w *walker) yearly(start time.Time) {
	for y := start.Year(); ; y += w.rule.Interval {
		d := ClampDayOfMonth(y, w.rule.Month, w.rule.DayOfMonth)
		if d.After(w.windowTo) {
			return
		}
		if d.Before(start) {
			continue
		}
		if !w.take(d) {
			return
		}
	}
}

// Instantiate builds the virtual occurrence of a rule on a given date:
// the template fields combined with the rule's time of day. The
// materializer uses the same shape as its insert payload.
func Instantiate(r *model.RecurrenceRule, date time.Time) *model.Occurrence {
	start := date.Add(r.TimeOfDay)
	ruleID := r.ID

	occ := &model.Occurrence{
		ID:      fmt.Sprintf("r%v_%v", r.ID, start.Unix()),
		FirmID:  r.FirmID,
		RuleID:  &ruleID,
		Kind:    r.Kind,
		Virtual: true,
		Start:   start,
	}

	switch r.Kind {
	case model.KindTask:
		occ.Title = r.Task.Title
		occ.Description = r.Task.Description
		occ.Priority = r.Task.Priority
		occ.Status = model.StatusPending
		occ.AssigneeIDs = r.Task.AssigneeIDs
		occ.CaseID = r.Task.CaseID
		occ.MatterID = r.Task.MatterID
	case model.KindEvent:
		occ.Title = r.Event.Title
		occ.Description = r.Event.Description
		occ.Color = r.Event.Color
		occ.AssigneeIDs = r.Event.AssigneeIDs
		occ.CaseID = r.Event.CaseID
		occ.MatterID = r.Event.MatterID
	}

	return occ
}
