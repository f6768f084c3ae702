package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/primelots/api-realty/internal/apperror"
	"github.com/primelots/api-realty/internal/lot"
	"github.com/primelots/api-realty/internal/payment"
	"github.com/primelots/api-realty/internal/timeutil"
	"gorm.io/gorm"
)

// Service owns the reservation lifecycle: creation with the one-hold-per-lot
// rule, lazy expiry on read, and the daily sweep.
type Service struct {
	DB       *gorm.DB
	Repo     Repository
	Lots     lot.Repository
	Payments payment.Repository
	Now      func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:       db,
		Repo:     NewRepository(),
		Lots:     lot.NewRepository(),
		Payments: payment.NewRepository(),
		Now:      timeutil.Now,
	}
}

// CreateInput is a reservation request plus its reservation-fee payment.
type CreateInput struct {
	ClientID     uint    `json:"clientId"`
	AgentID      uint    `json:"agentId"`
	LotID        uint    `json:"lotId"`
	Amount       float64 `json:"amount"`
	Mode         string  `json:"mode"`
	ReceivedByID uint    `json:"-"`
}

// Create reserves a lot for one validity window and records the reservation
// fee. The lot must be OPEN and must not already be held.
func (s *Service) Create(in CreateInput) (*Reservation, error) {
	if in.ClientID == 0 || in.AgentID == 0 || in.LotID == 0 {
		return nil, apperror.Validation("clientId, agentId and lotId are required")
	}
	if in.Amount <= 0 {
		return nil, apperror.Validation("reservation fee must be positive")
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	l, err := s.Lots.FindByID(tx, in.LotID)
	if err != nil {
		return nil, apperror.NotFound("lot not found")
	}
	if held, err := s.Repo.FindHeldByLot(tx, in.LotID); err == nil {
		// An ACTIVE hold that already lapsed is forfeited on the spot
		// instead of blocking the new reservation. The hold is resolved
		// before the lot status check: a lapsed hold leaves the lot
		// PENDING until someone looks at it.
		if held.Status == StatusActive && s.lapsed(held) {
			if err := s.forfeit(tx, held); err != nil {
				return nil, err
			}
			l.Status = lot.StatusOpen
		} else {
			return nil, apperror.Conflict(fmt.Sprintf("lot %s is already reserved", l.Number))
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if l.Status != lot.StatusOpen {
		return nil, apperror.InvalidState(fmt.Sprintf("lot %s is %s, not OPEN", l.Number, l.Status))
	}

	now := s.Now()
	res := &Reservation{
		ClientID: in.ClientID,
		AgentID:  in.AgentID,
		LotID:    in.LotID,
		Validity: now.Add(ValidityWindow),
		Status:   StatusActive,
	}
	if err := s.Repo.Create(tx, res); err != nil {
		return nil, err
	}

	fee := &payment.Payment{
		ReservationID:   &res.ID,
		Amount:          in.Amount,
		Mode:            in.Mode,
		Reference:       uuid.NewString(),
		TransactionType: payment.TypeReservationFee,
		TargetDueDate:   res.Validity,
		PaymentDate:     now,
		ReceivedByID:    in.ReceivedByID,
	}
	if err := s.Payments.Create(tx, fee); err != nil {
		return nil, err
	}

	if err := s.Lots.UpdateStatus(tx, in.LotID, lot.StatusPending); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return res, nil
}

// Get returns the reservation, forfeiting it first if its validity lapsed
// while still ACTIVE.
func (s *Service) Get(id uint) (*Reservation, error) {
	res, err := s.Repo.FindByID(s.DB, id)
	if err != nil {
		return nil, apperror.NotFound("reservation not found")
	}
	if res.Status == StatusActive && s.lapsed(res) {
		tx := s.DB.Begin()
		if tx.Error != nil {
			return nil, tx.Error
		}
		defer tx.Rollback()
		if err := s.forfeit(tx, res); err != nil {
			return nil, err
		}
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Fee returns the reservation's recorded payment, if one exists.
func (s *Service) Fee(db *gorm.DB, reservationID uint) (*payment.Payment, error) {
	list, err := s.Payments.ListByReservation(db, reservationID)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return &list[0], nil
}

// Sweep forfeits every lapsed ACTIVE reservation and reopens its lot.
// Idempotent: forfeited reservations are no longer ACTIVE and are skipped on
// the next run.
func (s *Service) Sweep() (int, error) {
	list, err := s.Repo.ListActive(s.DB)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range list {
		res := &list[i]
		if !s.lapsed(res) {
			continue
		}
		tx := s.DB.Begin()
		if tx.Error != nil {
			return count, tx.Error
		}
		if err := s.forfeit(tx, res); err != nil {
			tx.Rollback()
			return count, err
		}
		if err := tx.Commit().Error; err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// lapsed reports whether validity has passed, comparing calendar dates.
func (s *Service) lapsed(res *Reservation) bool {
	return timeutil.AfterCalendarDay(s.Now(), res.Validity)
}

func (s *Service) forfeit(tx *gorm.DB, res *Reservation) error {
	if err := s.Repo.UpdateStatus(tx, res.ID, StatusForfeited); err != nil {
		return err
	}
	if err := s.Lots.UpdateStatus(tx, res.LotID, lot.StatusOpen); err != nil {
		return err
	}
	res.Status = StatusForfeited
	return nil
}
