package schedule

import (
	"time"

	"github.com/primelots/api-realty/internal/payment"
	"github.com/primelots/api-realty/internal/timeutil"
	"github.com/shopspring/decimal"
)

// Payment type of a contract.
const (
	PaymentTypeCash        = "CASH"
	PaymentTypeInstallment = "INSTALLMENT"
)

// Down payment structure of an installment contract.
const (
	DownPaymentFull    = "FULL_DOWN_PAYMENT"
	DownPaymentPartial = "PARTIAL_DOWN_PAYMENT"
)

// Snapshot carries the contract fields the schedule is a pure function of.
// The schedule is never persisted: it is reconstructed from these anchors
// plus payment history, because row amounts shift with excess carry-forward
// and penalty waivers that are only known at read time.
type Snapshot struct {
	PaymentType     string
	DownPaymentType string // empty when no down payment

	// TotalPrice is the full amount the schedule amortizes: TCP, plus
	// interest when the contract carries any.
	TotalPrice float64

	DownPaymentTerms int
	TotalMonthlyDown float64

	Terms        int
	TotalMonthly float64

	TotalCashPayment float64

	ExcessPayment float64

	PaymentStartedDate  time.Time
	RecurringPaymentDay int
}

// ReservationFee is the reservation's recorded payment, when one exists.
type ReservationFee struct {
	Amount          float64
	TransactionType string
	Validity        time.Time
}

// Row is one due installment in the reconstructed schedule.
type Row struct {
	DueDate          time.Time `json:"dueDate"`
	TransactionType  string    `json:"transactionType"`
	Amount           float64   `json:"amount"`
	RemainingBalance float64   `json:"remainingBalance"`

	// Reconciliation annotations (§ reconcile.go).
	Paid             bool    `json:"paid"`
	PaidAmount       float64 `json:"paidAmount,omitempty"`
	PenaltyAmount    float64 `json:"penaltyAmount,omitempty"`
	PenaltyCount     int     `json:"penaltyCount,omitempty"`
	WaivedPenalty    bool    `json:"waivedPenalty,omitempty"`
	WaivedReason     string  `json:"waivedReason,omitempty"`
	ProjectedPenalty bool    `json:"projectedPenalty,omitempty"`
}

// cursor is the fold accumulator: each emitted row depends only on it, never
// on index lookups into previously emitted rows.
type cursor struct {
	due       time.Time
	remaining decimal.Decimal
	prevType  string
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// Build reconstructs the ordered due-installment list for a contract.
func Build(s Snapshot, fee *ReservationFee) []Row {
	rows := make([]Row, 0, 1+s.DownPaymentTerms+s.Terms)
	c := cursor{remaining: decimal.NewFromFloat(s.TotalPrice)}

	if fee != nil {
		txType := fee.TransactionType
		if txType == "" {
			txType = payment.TypeReservationFee
		}
		c.remaining = c.remaining.Sub(decimal.NewFromFloat(fee.Amount))
		c.due = fee.Validity
		c.prevType = payment.TypeReservationFee
		rows = append(rows, Row{
			DueDate:          fee.Validity,
			TransactionType:  txType,
			Amount:           fee.Amount,
			RemainingBalance: round2(c.remaining),
			Paid:             true,
			PaidAmount:       fee.Amount,
		})
	}

	if s.PaymentType == PaymentTypeCash {
		amount := decimal.NewFromFloat(s.TotalCashPayment)
		c.remaining = c.remaining.Sub(amount).Abs()
		rows = append(rows, Row{
			DueDate:          s.PaymentStartedDate,
			TransactionType:  payment.TypeTCPFullPayment,
			Amount:           s.TotalCashPayment,
			RemainingBalance: round2(c.remaining),
		})
		return rows
	}

	rows, c = appendDownPaymentRows(rows, c, s)
	rows, _ = appendMonthlyRows(rows, c, s)
	return rows
}

// appendDownPaymentRows emits the down-payment phase. Partial rows advance by
// one month inheriting the previous row's day-of-month: they deliberately do
// NOT re-pin to the recurring payment day, matching observed billing
// behavior. See DESIGN.md for the open product question on day drift.
func appendDownPaymentRows(rows []Row, c cursor, s Snapshot) ([]Row, cursor) {
	switch s.DownPaymentType {
	case DownPaymentFull:
		amount := decimal.NewFromFloat(s.TotalMonthlyDown)
		c.remaining = c.remaining.Sub(amount)
		c.due = s.PaymentStartedDate
		c.prevType = payment.TypeFullDownPayment
		rows = append(rows, Row{
			DueDate:          s.PaymentStartedDate,
			TransactionType:  payment.TypeFullDownPayment,
			Amount:           s.TotalMonthlyDown,
			RemainingBalance: round2(c.remaining),
		})
	case DownPaymentPartial:
		amount := decimal.NewFromFloat(s.TotalMonthlyDown)
		for i := 0; i < s.DownPaymentTerms; i++ {
			if i == 0 {
				c.due = s.PaymentStartedDate
			} else {
				c.due = timeutil.AddMonthsKeepingDay(c.due, 1, c.due.Day())
			}
			c.remaining = c.remaining.Sub(amount)
			c.prevType = payment.TypePartialDownPayment
			rows = append(rows, Row{
				DueDate:          c.due,
				TransactionType:  payment.TypePartialDownPayment,
				Amount:           s.TotalMonthlyDown,
				RemainingBalance: round2(c.remaining),
			})
		}
	}
	return rows, c
}

// appendMonthlyRows emits the monthly installment phase. The final row is
// reduced by the carried excess payment.
func appendMonthlyRows(rows []Row, c cursor, s Snapshot) ([]Row, cursor) {
	monthly := decimal.NewFromFloat(s.TotalMonthly)
	excess := decimal.NewFromFloat(s.ExcessPayment)

	for i := 0; i < s.Terms; i++ {
		amount := monthly
		if i == s.Terms-1 {
			amount = monthly.Sub(excess)
		}

		switch {
		case c.prevType == "" || c.prevType == payment.TypeReservationFee:
			// First amortized row: due on the contract's start date.
			c.due = s.PaymentStartedDate
		default:
			c.due = timeutil.AddMonthsKeepingDay(c.due, 1, s.RecurringPaymentDay)
		}

		c.remaining = c.remaining.Sub(amount).Abs().Round(2)
		c.prevType = payment.TypeMonthlyPayment
		rows = append(rows, Row{
			DueDate:          c.due,
			TransactionType:  payment.TypeMonthlyPayment,
			Amount:           round2(amount),
			RemainingBalance: round2(c.remaining),
		})
	}
	return rows, c
}
