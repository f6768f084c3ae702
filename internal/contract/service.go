package contract

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/primelots/api-realty/internal/apperror"
	"github.com/primelots/api-realty/internal/client"
	"github.com/primelots/api-realty/internal/commission"
	"github.com/primelots/api-realty/internal/lot"
	"github.com/primelots/api-realty/internal/notification"
	"github.com/primelots/api-realty/internal/payment"
	"github.com/primelots/api-realty/internal/reservation"
	"github.com/primelots/api-realty/internal/timeutil"
	"gorm.io/gorm"
)

// Service orchestrates contract creation, payment acceptance, breakdown
// reconstruction and forfeiture. Every mutating operation runs inside one
// database transaction.
type Service struct {
	DB           *gorm.DB
	Repo         Repository
	Reservations reservation.Repository
	Lots         lot.Repository
	Payments     payment.Repository
	Commissions  commission.Repository
	Clients      client.Repository
	Notifier     notification.Sender
	Now          func() time.Time
}

func NewService(db *gorm.DB, notifier notification.Sender) *Service {
	if notifier == nil {
		notifier = notification.NopSender{}
	}
	return &Service{
		DB:           db,
		Repo:         NewRepository(),
		Reservations: reservation.NewRepository(),
		Lots:         lot.NewRepository(),
		Payments:     payment.NewRepository(),
		Commissions:  commission.NewRepository(),
		Clients:      client.NewRepository(),
		Notifier:     notifier,
		Now:          timeutil.Now,
	}
}

// CreateInput is the contract signing request.
type CreateInput struct {
	ClientID uint `json:"clientId"`
	LotID    uint `json:"lotId"`

	MiscellaneousTotal float64 `json:"miscellaneousTotal"`

	PaymentType     string  `json:"paymentType"`
	InstallmentType string  `json:"installmentType"`
	Interest        float64 `json:"interest"`
	Terms           int     `json:"terms"`

	DownPaymentType    string  `json:"downPaymentType"`
	DownPaymentPercent float64 `json:"downPaymentPercent"`
	DownPaymentTerms   int     `json:"downPaymentTerms"`

	AgentCommissionTotal float64 `json:"agentCommissionTotal"`

	// Optional explicit first due date; defaults to the reservation's
	// validity plus one week.
	PaymentStartDate *time.Time `json:"paymentStartDate"`
	RecurringDay     int        `json:"recurringDay"`
}

// Create signs a contract against the client's active reservation of the
// lot. One transaction covers the contract row, the reservation transition to
// DONE, the lot transition to ON_GOING and the pending agent commission.
func (s *Service) Create(in CreateInput) (*Contract, error) {
	if in.ClientID == 0 || in.LotID == 0 {
		return nil, apperror.Validation("clientId and lotId are required")
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	res, err := s.Reservations.FindActiveByClientAndLot(tx, in.ClientID, in.LotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("no active reservation for this client and lot")
		}
		return nil, err
	}
	if timeutil.AfterCalendarDay(s.Now(), res.Validity) {
		return nil, apperror.InvalidState("reservation validity has expired; the lot must be reserved again")
	}

	l, err := s.Lots.FindByID(tx, in.LotID)
	if err != nil {
		return nil, apperror.NotFound("lot not found")
	}

	var feeAmount float64
	fees, err := s.Payments.ListByReservation(tx, res.ID)
	if err != nil {
		return nil, err
	}
	if len(fees) > 0 {
		feeAmount = fees[0].Amount
	}

	base := res.Validity.Add(reservation.ValidityWindow)
	if in.PaymentStartDate != nil {
		base = *in.PaymentStartDate
	}

	c := &Contract{
		ClientID:             in.ClientID,
		AgentID:              res.AgentID,
		LotID:                in.LotID,
		ReservationID:        res.ID,
		AgentCommissionTotal: in.AgentCommissionTotal,
	}
	err = Price(c, PricingInput{
		SqmPrice:           l.SqmPrice,
		TotalLotPrice:      l.BasePrice(),
		MiscellaneousTotal: in.MiscellaneousTotal,
		PaymentType:        in.PaymentType,
		InstallmentType:    in.InstallmentType,
		Interest:           in.Interest,
		Terms:              in.Terms,
		DownPaymentType:    in.DownPaymentType,
		DownPaymentPercent: in.DownPaymentPercent,
		DownPaymentTerms:   in.DownPaymentTerms,
		ReservationFee:     feeAmount,
		BaseDate:           base,
		RecurringDay:       in.RecurringDay,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Create(tx, c); err != nil {
		return nil, err
	}
	if err := s.Reservations.UpdateStatus(tx, res.ID, reservation.StatusDone); err != nil {
		return nil, err
	}
	if err := s.Lots.UpdateStatus(tx, in.LotID, lot.StatusOnGoing); err != nil {
		return nil, err
	}
	com := &commission.AgentCommission{
		ContractID: c.ID,
		AgentID:    res.AgentID,
		Total:      in.AgentCommissionTotal,
		Balance:    in.AgentCommissionTotal,
		Status:     commission.StatusPending,
	}
	if err := s.Commissions.Create(tx, com); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return c, nil
}

// Forfeit cancels a contract: the lot returns to inventory, the reservation
// and agent commission follow the contract's fate.
func (s *Service) Forfeit(id uint) (*Contract, error) {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	c, err := s.Repo.FindByID(tx, id)
	if err != nil {
		return nil, apperror.NotFound("contract not found")
	}
	if c.Status != StatusOnGoing {
		return nil, apperror.InvalidState(fmt.Sprintf("contract is %s, only ON_GOING contracts can be forfeited", c.Status))
	}

	c.Status = StatusForfeited
	if c.DownPaymentStatus == DownPaymentOnGoing {
		c.DownPaymentStatus = DownPaymentForfeited
	}
	if err := s.Repo.Update(tx, c); err != nil {
		return nil, err
	}
	if err := s.Reservations.UpdateStatus(tx, c.ReservationID, reservation.StatusContractForfeited); err != nil {
		return nil, err
	}
	if com, err := s.Commissions.FindByContract(tx, c.ID); err == nil {
		if err := s.Commissions.UpdateStatus(tx, com.ID, commission.StatusContractForfeited); err != nil {
			return nil, err
		}
	}
	if err := s.Lots.UpdateStatus(tx, c.LotID, lot.StatusOpen); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return c, nil
}

// RemindDue sends a payment reminder for every ongoing contract whose next
// payment date is today or already past. Delivery failures are logged, never
// fatal: the sweep continues.
func (s *Service) RemindDue() (int, error) {
	list, err := s.Repo.ListOngoing(s.DB)
	if err != nil {
		return 0, err
	}

	today := s.Now()
	count := 0
	for i := range list {
		c := &list[i]
		if timeutil.AfterCalendarDay(c.NextPaymentDate, today) {
			continue
		}
		cl, err := s.Clients.FindByID(s.DB, c.ClientID)
		if err != nil || cl.Email == "" {
			continue
		}
		amount := c.TotalMonthly + c.PenaltyAmount
		if c.DownPaymentStatus == DownPaymentOnGoing {
			amount = c.TotalMonthlyDown + c.PenaltyAmount
		}
		if err := s.Notifier.SendPaymentReminder(cl.Email, cl.FullName(), c.NextPaymentDate, amount); err != nil {
			log.Printf("contract: reminder for contract %d failed: %v", c.ID, err)
			continue
		}
		count++
	}
	return count, nil
}
