package contract

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/primelots/api-realty/internal/apperror"
	"github.com/primelots/api-realty/internal/currency"
	"github.com/primelots/api-realty/internal/lot"
	"github.com/primelots/api-realty/internal/notification"
	"github.com/primelots/api-realty/internal/payment"
	"github.com/primelots/api-realty/internal/timeutil"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Phase is the contract's position in the payment lifecycle. It is derived
// from persisted fields, never stored, so it can't drift from the data.
type Phase string

const (
	PhaseCashPending Phase = "CASH_PENDING"
	PhaseDownPartial Phase = "DOWN_PAYMENT_PARTIAL_ONGOING"
	PhaseDownFull    Phase = "DOWN_PAYMENT_FULL_ONGOING"
	PhaseMonthly     Phase = "MONTHLY_ONGOING"
	PhaseDone        Phase = "DONE"
)

// PhaseOf derives the current phase from the contract's persisted state.
func PhaseOf(c *Contract) Phase {
	switch {
	case c.Status == StatusDone:
		return PhaseDone
	case c.PaymentType == PaymentTypeCash:
		return PhaseCashPending
	case c.DownPaymentStatus == DownPaymentOnGoing && c.DownPaymentType == DownPaymentPartial:
		return PhaseDownPartial
	case c.DownPaymentStatus == DownPaymentOnGoing && c.DownPaymentType == DownPaymentFull:
		return PhaseDownFull
	default:
		return PhaseMonthly
	}
}

// transition is one row of the state machine table: the single transaction
// type the phase accepts, the amount that slot charges, and the mutation an
// accepted payment applies.
type transition struct {
	expectedType string
	phaseAmount  func(c *Contract) decimal.Decimal
	finalRow     func(c *Contract) bool
	apply        func(tx *gorm.DB, s *Service, c *Contract) error
}

var transitions = map[Phase]transition{
	PhaseCashPending: {
		expectedType: payment.TypeTCPFullPayment,
		phaseAmount:  func(c *Contract) decimal.Decimal { return decimal.NewFromFloat(c.Balance) },
		finalRow:     func(c *Contract) bool { return true },
		apply: func(tx *gorm.DB, s *Service, c *Contract) error {
			c.Balance = 0
			c.Status = StatusDone
			return s.Lots.UpdateStatus(tx, c.LotID, lot.StatusSold)
		},
	},
	PhaseDownPartial: {
		expectedType: payment.TypePartialDownPayment,
		phaseAmount:  func(c *Contract) decimal.Decimal { return decimal.NewFromFloat(c.TotalMonthlyDown) },
		finalRow:     func(c *Contract) bool { return false },
		apply: func(tx *gorm.DB, s *Service, c *Contract) error {
			remaining := decimal.NewFromFloat(c.TotalDownPaymentBalance).
				Sub(decimal.NewFromFloat(c.TotalMonthlyDown))
			if remaining.Truncate(0).LessThanOrEqual(decimal.Zero) {
				c.TotalDownPaymentBalance = 0
				c.DownPaymentStatus = DownPaymentDone
			} else {
				c.TotalDownPaymentBalance, _ = remaining.Round(2).Float64()
			}
			return nil
		},
	},
	PhaseDownFull: {
		expectedType: payment.TypeFullDownPayment,
		phaseAmount:  func(c *Contract) decimal.Decimal { return decimal.NewFromFloat(c.TotalMonthlyDown) },
		finalRow:     func(c *Contract) bool { return false },
		apply: func(tx *gorm.DB, s *Service, c *Contract) error {
			// A full down payment settles in one slot.
			c.TotalDownPaymentBalance = 0
			c.DownPaymentStatus = DownPaymentDone
			return nil
		},
	},
	PhaseMonthly: {
		expectedType: payment.TypeMonthlyPayment,
		phaseAmount:  func(c *Contract) decimal.Decimal { return decimal.NewFromFloat(c.TotalMonthly) },
		finalRow: func(c *Contract) bool {
			return decimal.NewFromFloat(c.Balance).
				Sub(decimal.NewFromFloat(c.TotalMonthly)).
				Truncate(0).LessThanOrEqual(decimal.Zero)
		},
		apply: func(tx *gorm.DB, s *Service, c *Contract) error {
			remaining := decimal.NewFromFloat(c.Balance).
				Sub(decimal.NewFromFloat(c.TotalMonthly))
			if remaining.Truncate(0).LessThanOrEqual(decimal.Zero) {
				c.Balance = 0
				c.Status = StatusDone
				return s.Lots.UpdateStatus(tx, c.LotID, lot.StatusSold)
			}
			c.Balance, _ = remaining.Round(2).Float64()
			return nil
		},
	},
}

// AcceptInput is an incoming payment against a contract.
type AcceptInput struct {
	TransactionType string  `json:"transactionType"`
	Amount          float64 `json:"amount"`
	Mode            string  `json:"mode"`
	WaivePenalty    bool    `json:"waivePenalty"`
	WaivedReason    string  `json:"waivedReason"`
	AttachmentPath  string  `json:"-"`
	ReceivedByID    uint    `json:"-"`
}

// AcceptPayment validates the incoming payment against the contract's
// current phase and applies it: one transaction covers the payment row and
// every contract mutation. The caller compensates any uploaded attachment
// when an error comes back.
func (s *Service) AcceptPayment(contractID uint, in AcceptInput) (*payment.Payment, *Contract, error) {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}
	defer tx.Rollback()

	c, err := s.Repo.FindByID(tx, contractID)
	if err != nil {
		return nil, nil, apperror.NotFound("contract not found")
	}
	if c.Status != StatusOnGoing {
		return nil, nil, apperror.InvalidState(fmt.Sprintf("contract is %s, payments require ON_GOING", c.Status))
	}

	phase := PhaseOf(c)
	t, ok := transitions[phase]
	if !ok {
		return nil, nil, apperror.InvalidState("contract is fully paid")
	}
	if in.TransactionType != t.expectedType {
		return nil, nil, apperror.InvalidState(fmt.Sprintf(
			"transaction type %s is not valid for the current phase; expected %s",
			in.TransactionType, t.expectedType))
	}

	expected := t.phaseAmount(c)
	if t.finalRow(c) {
		// Carried excess is consumed by the contract's last slot.
		expected = expected.Sub(decimal.NewFromFloat(c.ExcessPayment))
	}
	if !in.WaivePenalty {
		expected = expected.Add(decimal.NewFromFloat(c.PenaltyAmount))
	}
	expected = expected.Round(2)

	amount := decimal.NewFromFloat(in.Amount)
	if amount.LessThan(expected) {
		ef, _ := expected.Float64()
		return nil, nil, apperror.InsufficientAmount(fmt.Sprintf(
			"amount is below the minimum due of %s", currency.Format(ef)))
	}

	p := &payment.Payment{
		ContractID:      &c.ID,
		Amount:          in.Amount,
		Mode:            in.Mode,
		Reference:       uuid.NewString(),
		TransactionType: in.TransactionType,
		TargetDueDate:   c.NextPaymentDate,
		PaymentDate:     s.Now(),
		PenaltyAmount:   c.PenaltyAmount,
		PenaltyCount:    c.PenaltyCount,
		WaivedPenalty:   in.WaivePenalty,
		WaivedReason:    in.WaivedReason,
		AttachmentPath:  in.AttachmentPath,
		ReceivedByID:    in.ReceivedByID,
	}
	if err := s.Payments.Create(tx, p); err != nil {
		return nil, nil, err
	}

	if excess := amount.Sub(expected); excess.GreaterThan(decimal.Zero) {
		c.ExcessPayment, _ = decimal.NewFromFloat(c.ExcessPayment).Add(excess).Round(2).Float64()
	}
	if err := t.apply(tx, s, c); err != nil {
		return nil, nil, err
	}
	// Partial down-payment slots advance by the previous slot's own day, not
	// the recurring day, mirroring how their due dates are generated. Every
	// other slot re-pins to the recurring payment day.
	if phase == PhaseDownPartial && c.DownPaymentStatus == DownPaymentOnGoing {
		c.NextPaymentDate = timeutil.AddMonthsKeepingDay(c.NextPaymentDate, 1, c.NextPaymentDate.Day())
	} else {
		c.NextPaymentDate = timeutil.AddMonthsKeepingDay(c.NextPaymentDate, 1, c.RecurringPaymentDay)
	}
	// An accepted payment consumes the outstanding penalty.
	c.PenaltyAmount = 0
	c.PenaltyCount = 0

	if err := s.Repo.Update(tx, c); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}

	s.sendReceipt(c, p)
	return p, c, nil
}

// sendReceipt fires the receipt notice after commit. A delivery failure is
// logged only: the accepted payment stands.
func (s *Service) sendReceipt(c *Contract, p *payment.Payment) {
	cl, err := s.Clients.FindByID(s.DB, c.ClientID)
	if err != nil || cl.Email == "" {
		return
	}
	receipt := notification.Receipt{
		Email:           cl.Email,
		ClientName:      cl.FullName(),
		Reference:       p.Reference,
		TransactionType: p.TransactionType,
		Amount:          p.Amount,
		PaymentDate:     timeutil.FormatDate(p.PaymentDate),
	}
	if err := s.Notifier.SendReceipt(receipt); err != nil {
		log.Printf("contract: receipt for payment %s failed: %v", p.Reference, err)
	}
}
