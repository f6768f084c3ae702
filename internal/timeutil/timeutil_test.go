package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, Manila)
}

func TestAddMonthsKeepingDay(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		day    int
		want   time.Time
	}{
		{"plain advance", date(2024, time.March, 15), 1, 15, date(2024, time.April, 15)},
		{"re-pin to recurring day", date(2024, time.March, 14), 1, 15, date(2024, time.April, 15)},
		{"clamp to short month", date(2024, time.January, 31), 1, 31, date(2024, time.February, 29)},
		{"clamp non-leap", date(2023, time.January, 31), 1, 31, date(2023, time.February, 28)},
		{"recover after clamp", date(2024, time.February, 29), 1, 31, date(2024, time.March, 31)},
		{"multiple months", date(2024, time.January, 10), 12, 10, date(2025, time.January, 10)},
		{"year rollover", date(2024, time.November, 30), 3, 30, date(2025, time.February, 28)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AddMonthsKeepingDay(tc.start, tc.months, tc.day)
			assert.Equal(t, FormatDate(tc.want), FormatDate(got))
		})
	}
}

func TestDiffInWeeksTruncates(t *testing.T) {
	due := date(2024, time.January, 15)
	assert.Equal(t, 0, DiffInWeeks(due, date(2024, time.January, 21)))
	assert.Equal(t, 1, DiffInWeeks(due, date(2024, time.January, 22)))
	assert.Equal(t, 2, DiffInWeeks(due, date(2024, time.February, 1)))
}

func TestSameCalendarDayIgnoresClock(t *testing.T) {
	a := time.Date(2024, time.May, 1, 23, 59, 0, 0, Manila)
	b := time.Date(2024, time.May, 1, 0, 1, 0, 0, Manila)
	assert.True(t, SameCalendarDay(a, b))

	// An instant that is May 1 in UTC but already May 2 in Manila must not
	// match a Manila May 1 date.
	utc := time.Date(2024, time.May, 1, 20, 0, 0, 0, time.UTC)
	assert.False(t, SameCalendarDay(a, utc))
}

func TestAfterCalendarDay(t *testing.T) {
	assert.False(t, AfterCalendarDay(date(2024, time.June, 1), date(2024, time.June, 1)))
	assert.True(t, AfterCalendarDay(date(2024, time.June, 2), date(2024, time.June, 1)))
}
