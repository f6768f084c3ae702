package schedule

import (
	"time"

	"github.com/primelots/api-realty/internal/payment"
	"github.com/primelots/api-realty/internal/penalty"
	"github.com/primelots/api-realty/internal/timeutil"
)

// Projection is a freshly computed penalty on the first unpaid, overdue row.
// It is not yet persisted on any payment; the caller writes it back onto the
// contract so the next incoming payment knows what penalty to demand.
type Projection struct {
	DueDate       time.Time
	PenaltyAmount float64
	PenaltyCount  int
}

// Reconcile matches schedule rows against recorded payments by calendar-date
// equality of the payment's target due date. Matching is exact: a payment
// aimed at a different calendar date never satisfies a row. Unpaid rows at
// least one whole week past due get a projected penalty computed against
// today. Returns the annotated rows and the first unpaid penalized row, if
// any.
func Reconcile(rows []Row, history []payment.Payment, today time.Time) ([]Row, *Projection) {
	byDate := make(map[string]*payment.Payment, len(history))
	for i := range history {
		p := &history[i]
		key := timeutil.FormatDate(p.TargetDueDate)
		if _, taken := byDate[key]; !taken {
			byDate[key] = p
		}
	}

	var first *Projection
	out := make([]Row, len(rows))
	for i, row := range rows {
		if row.Paid {
			// Reservation rows come out of Build already settled.
			out[i] = row
			continue
		}
		if p, ok := byDate[timeutil.FormatDate(row.DueDate)]; ok {
			row.Paid = true
			row.PaidAmount = p.Amount
			row.PenaltyAmount = p.PenaltyAmount
			row.PenaltyCount = p.PenaltyCount
			row.WaivedPenalty = p.WaivedPenalty
			row.WaivedReason = p.WaivedReason
			out[i] = row
			continue
		}
		if res := penalty.Compute(row.Amount, row.DueDate, today); res.Count > 0 {
			row.PenaltyAmount = res.Amount
			row.PenaltyCount = res.Count
			row.ProjectedPenalty = true
			if first == nil {
				first = &Projection{
					DueDate:       row.DueDate,
					PenaltyAmount: res.Amount,
					PenaltyCount:  res.Count,
				}
			}
		}
		out[i] = row
	}
	return out, first
}
