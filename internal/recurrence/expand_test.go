package recurrence

import (
	"testing"
	"time"

	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRule(mods ...func(*model.RecurrenceRule)) *model.RecurrenceRule {
	r := &model.RecurrenceRule{
		ID:         1,
		Active:     true,
		Exclusions: map[int64]struct{}{},
		RuleCreate: model.RuleCreate{
			Kind:      model.KindTask,
			Frequency: model.FrequencyDaily,
			Interval:  1,
			TimeOfDay: 9 * time.Hour,
			StartDate: day(2025, time.January, 1),
			End:       model.EndCondition{Type: model.EndNever},
			Task:      &model.TaskTemplate{Title: "file court deadline review"},
		},
	}
	for _, mod := range mods {
		mod(r)
	}
	return r
}

func dates(occs []*model.Occurrence) []time.Time {
	res := make([]time.Time, len(occs))
	for i, o := range occs {
		res[i] = model.DateOnly(o.Start)
	}
	return res
}

func TestExpand_WeeklyMondayWednesday(t *testing.T) {
	rule := testRule(func(r *model.RecurrenceRule) {
		r.Frequency = model.FrequencyWeekly
		r.DaysOfWeek = map[time.Weekday]struct{}{time.Monday: {}, time.Wednesday: {}}
		r.StartDate = day(2025, time.January, 6) // a Monday
	})

	occs, err := Expand(rule, day(2025, time.January, 1), day(2025, time.January, 31))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(2025, time.January, 6),
		day(2025, time.January, 8),
		day(2025, time.January, 13),
		day(2025, time.January, 15),
		day(2025, time.January, 20),
		day(2025, time.January, 22),
		day(2025, time.January, 27),
		day(2025, time.January, 29),
	}, dates(occs))
}

func TestExpand_MonthlyClampsFebruary(t *testing.T) {
	rule := testRule(func(r *model.RecurrenceRule) {
		r.Frequency = model.FrequencyMonthly
		r.DayOfMonth = 31
		r.StartDate = day(2025, time.January, 31)
	})

	occs, err := Expand(rule, day(2025, time.February, 1), day(2025, time.February, 28))
	require.NoError(t, err)

	require.Len(t, occs, 1)
	assert.Equal(t, day(2025, time.February, 28), model.DateOnly(occs[0].Start))
}

func TestExpand_DailyBusinessDaysSkippedNotShifted(t *testing.T) {
	rule := testRule(func(r *model.RecurrenceRule) {
		r.BusinessDaysOnly = true
		r.StartDate = day(2025, time.January, 3) // a Friday
	})

	occs, err := Expand(rule, day(2025, time.January, 3), day(2025, time.January, 7))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(2025, time.January, 3),
		day(2025, time.January, 6),
		day(2025, time.January, 7),
	}, dates(occs))
}

func TestExpand_ExclusionSuppressesSingleDate(t *testing.T) {
	rule := testRule(func(r *model.RecurrenceRule) {
		r.Frequency = model.FrequencyWeekly
		r.DaysOfWeek = map[time.Weekday]struct{}{time.Monday: {}}
		r.StartDate = day(2025, time.March, 3)
		r.Exclusions = map[int64]struct{}{model.DateKey(day(2025, time.March, 10)): {}}
	})

	occs, err := Expand(rule, day(2025, time.March, 1), day(2025, time.March, 31))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(2025, time.March, 3),
		day(2025, time.March, 17),
		day(2025, time.March, 24),
		day(2025, time.March, 31),
	}, dates(occs))
}

func TestExpand_EndByDate(t *testing.T) {
	endDate := day(2025, time.January, 4)
	rule := testRule(func(r *model.RecurrenceRule) {
		r.End = model.EndCondition{Type: model.EndByDate, Date: &endDate}
	})

	occs, err := Expand(rule, day(2025, time.January, 1), day(2025, time.January, 31))
	require.NoError(t, err)

	require.Len(t, occs, 4)
	assert.Equal(t, day(2025, time.January, 4), model.DateOnly(occs[3].Start))
}

func TestExpand_EndAfterCountHoldsAcrossWindows(t *testing.T) {
	rule := testRule(func(r *model.RecurrenceRule) {
		r.End = model.EndCondition{Type: model.EndAfterCount, Count: 5}
	})

	// First window sees the first three ordinals.
	occs, err := Expand(rule, day(2025, time.January, 1), day(2025, time.January, 3))
	require.NoError(t, err)
	assert.Len(t, occs, 3)

	// A later window only gets the remaining two, never more than five
	// in total across calls.
	occs, err = Expand(rule, day(2025, time.January, 4), day(2025, time.January, 31))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		day(2025, time.January, 4),
		day(2025, time.January, 5),
	}, dates(occs))
}

func TestExpand_ExcludedDateConsumesOrdinal(t *testing.T) {
	rule := testRule(func(r *model.RecurrenceRule) {
		r.End = model.EndCondition{Type: model.EndAfterCount, Count: 3}
		r.Exclusions = map[int64]struct{}{model.DateKey(day(2025, time.January, 2)): {}}
	})

	occs, err := Expand(rule, day(2025, time.January, 1), day(2025, time.January, 31))
	require.NoError(t, err)

	// Jan 2 stays part of the series for counting purposes even though
	// it is never emitted.
	assert.Equal(t, []time.Time{
		day(2025, time.January, 1),
		day(2025, time.January, 3),
	}, dates(occs))
}

func TestExpand_BusinessDaySkipDoesNotConsumeOrdinal(t *testing.T) {
	rule := testRule(func(r *model.RecurrenceRule) {
		r.BusinessDaysOnly = true
		r.StartDate = day(2025, time.January, 3) // Friday
		r.End = model.EndCondition{Type: model.EndAfterCount, Count: 3}
	})

	occs, err := Expand(rule, day(2025, time.January, 1), day(2025, time.January, 31))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(2025, time.January, 3),
		day(2025, time.January, 6),
		day(2025, time.January, 7),
	}, dates(occs))
}

func TestExpand_MonthlyFirstCandidateBeforeStartSkipped(t *testing.T) {
	rule := testRule(func(r *model.RecurrenceRule) {
		r.Frequency = model.FrequencyMonthly
		r.DayOfMonth = 10
		r.StartDate = day(2025, time.January, 15)
	})

	occs, err := Expand(rule, day(2025, time.January, 1), day(2025, time.March, 31))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(2025, time.February, 10),
		day(2025, time.March, 10),
	}, dates(occs))
}

func TestExpand_YearlyLeapDay(t *testing.T) {
	rule := testRule(func(r *model.RecurrenceRule) {
		r.Frequency = model.FrequencyYearly
		r.DayOfMonth = 29
		r.Month = time.February
		r.StartDate = day(2023, time.January, 1)
	})

	occs, err := Expand(rule, day(2023, time.January, 1), day(2025, time.December, 31))
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		day(2023, time.February, 28),
		day(2024, time.February, 29),
		day(2025, time.February, 28),
	}, dates(occs))
}

func TestExpand_Deterministic(t *testing.T) {
	rule := testRule(func(r *model.RecurrenceRule) {
		r.Frequency = model.FrequencyWeekly
		r.DaysOfWeek = map[time.Weekday]struct{}{time.Tuesday: {}, time.Thursday: {}}
		r.StartDate = day(2025, time.January, 7)
	})

	first, err := Expand(rule, day(2025, time.January, 1), day(2025, time.March, 31))
	require.NoError(t, err)
	second, err := Expand(rule, day(2025, time.January, 1), day(2025, time.March, 31))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExpand_StartAfterWindow(t *testing.T) {
	rule := testRule(func(r *model.RecurrenceRule) {
		r.StartDate = day(2025, time.June, 1)
	})

	occs, err := Expand(rule, day(2025, time.January, 1), day(2025, time.January, 31))
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestExpand_InactiveRule(t *testing.T) {
	rule := testRule(func(r *model.RecurrenceRule) {
		r.Active = false
	})

	occs, err := Expand(rule, day(2025, time.January, 1), day(2025, time.January, 31))
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestExpand_AppliesTimeOfDayAndTemplate(t *testing.T) {
	rule := testRule(func(r *model.RecurrenceRule) {
		r.TimeOfDay = 14*time.Hour + 30*time.Minute
	})

	occs, err := Expand(rule, day(2025, time.January, 1), day(2025, time.January, 1))
	require.NoError(t, err)

	require.Len(t, occs, 1)
	assert.Equal(t, time.Date(2025, time.January, 1, 14, 30, 0, 0, time.UTC), occs[0].Start)
	assert.Equal(t, "file court deadline review", occs[0].Title)
	assert.True(t, occs[0].Virtual)
	require.NotNil(t, occs[0].RuleID)
	assert.Equal(t, rule.ID, *occs[0].RuleID)
}

func TestExpand_MalformedRules(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*model.RecurrenceRule)
	}{
		{"weekly without days", func(r *model.RecurrenceRule) {
			r.Frequency = model.FrequencyWeekly
		}},
		{"monthly without day of month", func(r *model.RecurrenceRule) {
			r.Frequency = model.FrequencyMonthly
		}},
		{"yearly without month", func(r *model.RecurrenceRule) {
			r.Frequency = model.FrequencyYearly
			r.DayOfMonth = 15
		}},
		{"zero interval", func(r *model.RecurrenceRule) {
			r.Interval = 0
		}},
		{"task rule without template", func(r *model.RecurrenceRule) {
			r.Task = nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := testRule(tt.mod)
			_, err := Expand(rule, day(2025, time.January, 1), day(2025, time.January, 31))
			assert.Error(t, err)
		})
	}
}
