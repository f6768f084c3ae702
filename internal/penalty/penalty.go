package penalty

import (
	"time"

	"github.com/primelots/api-realty/internal/timeutil"
	"github.com/shopspring/decimal"
)

// WeeklyRate is the fraction of the installment amount charged per whole week
// late. The charge is linear in weeks, never compounded on a new base.
var WeeklyRate = decimal.NewFromFloat(0.5)

// Result is a computed late charge for one schedule slot.
type Result struct {
	Count  int     // whole weeks late
	Amount float64 // installment * WeeklyRate * Count, 2-dp
}

// WeeksLate returns the number of whole weeks today is past due. Zero when
// due is today, in the future, or less than one full week ago.
func WeeksLate(due, today time.Time) int {
	if !timeutil.AfterCalendarDay(today, due) {
		return 0
	}
	return timeutil.DiffInWeeks(due, today)
}

// Compute derives the penalty owed on an installment due on the given date.
func Compute(installmentAmount float64, due, today time.Time) Result {
	weeks := WeeksLate(due, today)
	if weeks == 0 {
		return Result{}
	}
	amount := decimal.NewFromFloat(installmentAmount).
		Mul(WeeklyRate).
		Mul(decimal.NewFromInt(int64(weeks))).
		Round(2)
	f, _ := amount.Float64()
	return Result{Count: weeks, Amount: f}
}
