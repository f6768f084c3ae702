package contract

import (
	"time"

	"github.com/primelots/api-realty/internal/apperror"
	"github.com/primelots/api-realty/internal/timeutil"
	"github.com/shopspring/decimal"
)

// PricingInput is everything the pricing state machine needs at contract
// creation time.
type PricingInput struct {
	SqmPrice           float64
	TotalLotPrice      float64
	MiscellaneousTotal float64

	PaymentType     string
	InstallmentType string
	Interest        float64
	Terms           int

	DownPaymentType    string
	DownPaymentPercent float64
	DownPaymentTerms   int

	ReservationFee float64

	BaseDate     time.Time
	RecurringDay int
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// Price runs the pricing state machine over paymentType × downPaymentType ×
// installmentType and fills the contract's pricing and schedule anchor
// fields. Each case is spelled out, no fallthrough between them.
func Price(c *Contract, in PricingInput) error {
	base := timeutil.StartOfDay(in.BaseDate)
	day := in.RecurringDay
	if day == 0 {
		day = base.Day()
	}

	tcp := decimal.NewFromFloat(in.TotalLotPrice).
		Add(decimal.NewFromFloat(in.MiscellaneousTotal))
	fee := decimal.NewFromFloat(in.ReservationFee)

	c.SqmPrice = in.SqmPrice
	c.TotalLotPrice = in.TotalLotPrice
	c.MiscellaneousTotal = in.MiscellaneousTotal
	c.TCP = round2(tcp)
	c.PaymentType = in.PaymentType
	c.PaymentStartedDate = base
	c.NextPaymentDate = base
	c.RecurringPaymentDay = day
	c.Status = StatusOnGoing

	switch {
	case in.PaymentType == PaymentTypeCash:
		// Single settlement, no recurrence.
		c.Balance = round2(tcp.Sub(fee))
		c.PaymentLastDate = base
		return nil

	case in.PaymentType == PaymentTypeInstallment && in.DownPaymentType != "":
		if in.Terms <= 0 {
			return apperror.Validation("terms must be positive for installment contracts")
		}
		if in.DownPaymentType == DownPaymentPartial && in.DownPaymentTerms <= 0 {
			return apperror.Validation("downPaymentTerms must be positive for a partial down payment")
		}

		c.DownPaymentType = in.DownPaymentType
		c.DownPayment = in.DownPaymentPercent
		c.Terms = in.Terms

		totalDown := tcp.Mul(decimal.NewFromFloat(in.DownPaymentPercent)).
			Div(decimal.NewFromInt(100))
		downBalance := totalDown.Sub(fee)
		balance := tcp.Sub(totalDown)

		c.TotalDownPayment = round2(totalDown)
		c.TotalDownPaymentBalance = round2(downBalance)
		c.Balance = round2(balance)
		c.TotalMonthly = round2(balance.Div(decimal.NewFromInt(int64(in.Terms))))
		c.DownPaymentStatus = DownPaymentOnGoing

		effectiveTerms := in.Terms
		if in.DownPaymentType == DownPaymentFull {
			c.TotalMonthlyDown = round2(downBalance)
			effectiveTerms++
		} else {
			c.DownPaymentTerms = in.DownPaymentTerms
			c.TotalMonthlyDown = round2(downBalance.Div(decimal.NewFromInt(int64(in.DownPaymentTerms))))
			effectiveTerms += in.DownPaymentTerms
		}
		c.PaymentLastDate = timeutil.AddMonthsKeepingDay(base, effectiveTerms, day)
		return nil

	case in.PaymentType == PaymentTypeInstallment:
		if in.Terms <= 0 {
			return apperror.Validation("terms must be positive for installment contracts")
		}

		c.Terms = in.Terms
		balance := tcp.Sub(fee)
		if in.Interest > 0 && in.InstallmentType == InstallmentStraightMonthly {
			c.InstallmentType = in.InstallmentType
			c.Interest = in.Interest
			withInterest := tcp.Mul(decimal.NewFromFloat(1).
				Add(decimal.NewFromFloat(in.Interest).Div(decimal.NewFromInt(100))))
			c.InterestTotal = round2(withInterest.Sub(tcp))
			balance = withInterest.Sub(fee)
		}
		c.Balance = round2(balance)
		c.TotalMonthly = round2(balance.Div(decimal.NewFromInt(int64(in.Terms))))
		c.PaymentLastDate = timeutil.AddMonthsKeepingDay(base, in.Terms, day)
		return nil

	default:
		return apperror.Validation("paymentType must be CASH or INSTALLMENT")
	}
}
