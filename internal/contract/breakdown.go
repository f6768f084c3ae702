package contract

import (
	"github.com/primelots/api-realty/internal/apperror"
	"github.com/primelots/api-realty/internal/schedule"
)

// Snapshot converts the contract's anchor fields into the schedule builder's
// input. feeAmount is the reservation fee already collected, zero when the
// contract has none: the cash settlement slot is the price net of it.
func Snapshot(c *Contract, feeAmount float64) schedule.Snapshot {
	var cash float64
	if c.PaymentType == PaymentTypeCash {
		cash = c.TCP - feeAmount
	}
	return schedule.Snapshot{
		PaymentType:         c.PaymentType,
		DownPaymentType:     c.DownPaymentType,
		TotalPrice:          c.TotalPrice(),
		DownPaymentTerms:    c.DownPaymentTerms,
		TotalMonthlyDown:    c.TotalMonthlyDown,
		Terms:               c.Terms,
		TotalMonthly:        c.TotalMonthly,
		TotalCashPayment:    cash,
		ExcessPayment:       c.ExcessPayment,
		PaymentStartedDate:  c.PaymentStartedDate,
		RecurringPaymentDay: c.RecurringPaymentDay,
	}
}

// Breakdown reconstructs the schedule, reconciles it against the payment
// history and writes a newly observed penalty back onto the contract so the
// next payment demands it. The write is skipped when nothing changed.
func (s *Service) Breakdown(id uint) ([]schedule.Row, error) {
	c, err := s.Repo.FindByID(s.DB, id)
	if err != nil {
		return nil, apperror.NotFound("contract not found")
	}

	var fee *schedule.ReservationFee
	var feeAmount float64
	resPayments, err := s.Payments.ListByReservation(s.DB, c.ReservationID)
	if err != nil {
		return nil, err
	}
	if len(resPayments) > 0 {
		res, err := s.Reservations.FindByID(s.DB, c.ReservationID)
		if err != nil {
			return nil, err
		}
		feeAmount = resPayments[0].Amount
		fee = &schedule.ReservationFee{
			Amount:          resPayments[0].Amount,
			TransactionType: resPayments[0].TransactionType,
			Validity:        res.Validity,
		}
	}

	history, err := s.Payments.ListByContract(s.DB, c.ID)
	if err != nil {
		return nil, err
	}

	rows := schedule.Build(Snapshot(c, feeAmount), fee)
	rows, proj := schedule.Reconcile(rows, history, s.Now())

	if proj != nil && c.Status == StatusOnGoing &&
		(c.PenaltyAmount != proj.PenaltyAmount || c.PenaltyCount != proj.PenaltyCount) {
		if err := s.Repo.UpdatePenalty(s.DB, c.ID, proj.PenaltyAmount, proj.PenaltyCount); err != nil {
			return nil, err
		}
	}
	return rows, nil
}
