package timeutil

import "time"

// Manila is the timezone every schedule computation is anchored to. Due-date
// matching is by formatted calendar date, so a float across timezones would
// shift rows by a day depending on the server's locale.
var Manila *time.Location

func init() {
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		// Manila has no DST; a fixed offset is equivalent.
		loc = time.FixedZone("PHT", 8*60*60)
	}
	Manila = loc
}

const DateLayout = "2006-01-02"

// Now returns the current instant in the Manila timezone.
func Now() time.Time {
	return time.Now().In(Manila)
}

// StartOfDay truncates t to midnight Manila time.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(Manila).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, Manila)
}

// FormatDate renders t as a Manila calendar date (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.In(Manila).Format(DateLayout)
}

// SameCalendarDay reports whether a and b fall on the same Manila calendar day.
func SameCalendarDay(a, b time.Time) bool {
	return FormatDate(a) == FormatDate(b)
}

// AddMonthsKeepingDay advances t by whole months and then pins the result to
// dayOfMonth. When the target month is shorter than dayOfMonth the result
// clamps to the month's last day (Jan 31 + 1 month, day 31 → Feb 28/29),
// instead of Go's AddDate normalization which would spill into March.
func AddMonthsKeepingDay(t time.Time, months int, dayOfMonth int) time.Time {
	t = t.In(Manila)
	y, m, _ := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, Manila)
	day := dayOfMonth
	if last := daysIn(firstOfTarget); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), Manila)
}

// daysIn returns the number of days in t's month.
func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, Manila).Day()
}

// DiffInDays returns whole calendar days from a to b (positive when b is
// after a), comparing at day granularity.
func DiffInDays(a, b time.Time) int {
	da := StartOfDay(a)
	db := StartOfDay(b)
	return int(db.Sub(da).Hours() / 24)
}

// DiffInWeeks returns whole weeks from a to b, truncating.
func DiffInWeeks(a, b time.Time) int {
	return DiffInDays(a, b) / 7
}

// AfterCalendarDay reports whether a's calendar date is strictly after b's.
func AfterCalendarDay(a, b time.Time) bool {
	return StartOfDay(a).After(StartOfDay(b))
}
