package recurrence

import (
	"testing"
	"time"

	"github.com/avlasov/legal-planner-backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestClampDayOfMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		day   int
		want  time.Time
	}{
		{
			name: "day fits",
			year: 2025, month: time.January, day: 31,
			want: time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "february non-leap clamps to 28",
			year: 2025, month: time.February, day: 31,
			want: time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "february leap clamps to 29",
			year: 2024, month: time.February, day: 31,
			want: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "30-day month clamps 31",
			year: 2025, month: time.April, day: 31,
			want: time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampDayOfMonth(tt.year, tt.month, tt.day))
		})
	}
}

func TestAddUnits(t *testing.T) {
	base := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, time.January, 18, 0, 0, 0, 0, time.UTC), AddUnits(base, model.FrequencyDaily, 3))
	assert.Equal(t, time.Date(2025, time.January, 29, 0, 0, 0, 0, time.UTC), AddUnits(base, model.FrequencyWeekly, 2))
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), AddUnits(base, model.FrequencyMonthly, 2))
	assert.Equal(t, time.Date(2027, time.January, 15, 0, 0, 0, 0, time.UTC), AddUnits(base, model.FrequencyYearly, 2))
}

func TestIsBusinessDay(t *testing.T) {
	assert.True(t, IsBusinessDay(time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC)))  // Friday
	assert.False(t, IsBusinessDay(time.Date(2025, time.January, 4, 0, 0, 0, 0, time.UTC))) // Saturday
	assert.False(t, IsBusinessDay(time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC))) // Sunday
	assert.True(t, IsBusinessDay(time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)))  // Monday
}

func TestMatchesWeekday(t *testing.T) {
	days := map[time.Weekday]struct{}{time.Monday: {}, time.Wednesday: {}}

	assert.True(t, MatchesWeekday(time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC), days))
	assert.False(t, MatchesWeekday(time.Date(2025, time.January, 7, 0, 0, 0, 0, time.UTC), days))
}

func TestWeekStart(t *testing.T) {
	// Weeks anchor on Sunday.
	assert.Equal(t,
		time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
		weekStart(time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t,
		time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
		weekStart(time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)))
}
