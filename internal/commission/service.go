package commission

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/primelots/api-realty/internal/apperror"
	"github.com/primelots/api-realty/internal/payment"
	"github.com/primelots/api-realty/internal/schedule"
	"github.com/primelots/api-realty/internal/timeutil"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service runs the commission release schedule: a reduced mirror of the
// contract amortization engine with a single row type.
type Service struct {
	DB       *gorm.DB
	Repo     Repository
	Payments payment.Repository
	Now      func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:       db,
		Repo:     NewRepository(),
		Payments: payment.NewRepository(),
		Now:      timeutil.Now,
	}
}

// StartInput configures the release schedule of a PENDING commission.
type StartInput struct {
	Terms               int       `json:"terms"`
	ReleaseStartDate    time.Time `json:"releaseStartDate"`
	RecurringReleaseDay int       `json:"recurringReleaseDay"`
}

// Start derives the monthly release amount and the next/end release dates,
// moving the commission from PENDING to ON_GOING.
func (s *Service) Start(id uint, in StartInput) (*AgentCommission, error) {
	if in.Terms <= 0 {
		return nil, apperror.Validation("terms must be positive")
	}
	if in.ReleaseStartDate.IsZero() {
		return nil, apperror.Validation("releaseStartDate is required")
	}
	day := in.RecurringReleaseDay
	if day == 0 {
		day = in.ReleaseStartDate.In(timeutil.Manila).Day()
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	c, err := s.Repo.FindByID(tx, id)
	if err != nil {
		return nil, apperror.NotFound("commission not found")
	}
	if c.Status != StatusPending {
		return nil, apperror.InvalidState(fmt.Sprintf("commission is %s, only PENDING commissions can be started", c.Status))
	}

	monthly := decimal.NewFromFloat(c.Total).
		Div(decimal.NewFromInt(int64(in.Terms))).
		Round(2)
	start := timeutil.StartOfDay(in.ReleaseStartDate)
	next := timeutil.AddMonthsKeepingDay(start, 1, day)
	end := start
	for i := 0; i < in.Terms; i++ {
		end = timeutil.AddMonthsKeepingDay(end, 1, day)
	}

	c.Terms = in.Terms
	c.ReleaseStartDate = &start
	c.RecurringReleaseDay = day
	c.NextReleaseDate = &next
	c.ReleaseEndDate = &end
	c.MonthlyReleaseAmount, _ = monthly.Float64()
	c.Status = StatusOnGoing

	if err := s.Repo.Update(tx, c); err != nil {
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ReleaseInput records one commission payout.
type ReleaseInput struct {
	Mode         string `json:"mode"`
	ReceivedByID uint   `json:"-"`
}

// Release pays out one monthly release, reduces the balance and advances the
// next release date. The commission completes when the balance truncates to
// zero or below.
func (s *Service) Release(id uint, in ReleaseInput) (*AgentCommission, *payment.Payment, error) {
	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, nil, tx.Error
	}
	defer tx.Rollback()

	c, err := s.Repo.FindByID(tx, id)
	if err != nil {
		return nil, nil, apperror.NotFound("commission not found")
	}
	if c.Status != StatusOnGoing {
		return nil, nil, apperror.InvalidState(fmt.Sprintf("commission is %s, releases require ON_GOING", c.Status))
	}

	targetDue := *c.NextReleaseDate
	p := &payment.Payment{
		AgentCommissionID: &c.ID,
		Amount:            c.MonthlyReleaseAmount,
		Mode:              in.Mode,
		Reference:         uuid.NewString(),
		TransactionType:   payment.TypeAgentCommissionRelease,
		TargetDueDate:     targetDue,
		PaymentDate:       s.Now(),
		ReceivedByID:      in.ReceivedByID,
	}
	if err := s.Payments.Create(tx, p); err != nil {
		return nil, nil, err
	}

	remaining := decimal.NewFromFloat(c.Balance).
		Sub(decimal.NewFromFloat(c.MonthlyReleaseAmount))
	if remaining.Truncate(0).LessThanOrEqual(decimal.Zero) {
		c.Balance = 0
		c.Status = StatusDone
	} else {
		c.Balance, _ = remaining.Round(2).Float64()
		next := timeutil.AddMonthsKeepingDay(targetDue, 1, c.RecurringReleaseDay)
		c.NextReleaseDate = &next
	}

	if err := s.Repo.Update(tx, c); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}
	return c, p, nil
}

// Breakdown reconstructs the release schedule and reconciles it against the
// recorded payouts, the same way the contract breakdown works.
func (s *Service) Breakdown(id uint) ([]schedule.Row, error) {
	c, err := s.Repo.FindByID(s.DB, id)
	if err != nil {
		return nil, apperror.NotFound("commission not found")
	}
	if c.ReleaseStartDate == nil {
		return nil, apperror.InvalidState("commission schedule has not been started")
	}

	history, err := s.Payments.ListByCommission(s.DB, c.ID)
	if err != nil {
		return nil, err
	}

	rows := buildReleaseRows(c)
	rows, _ = schedule.Reconcile(rows, history, s.Now())
	return rows, nil
}

// buildReleaseRows folds the commission anchors into due release rows.
func buildReleaseRows(c *AgentCommission) []schedule.Row {
	rows := make([]schedule.Row, 0, c.Terms)
	remaining := decimal.NewFromFloat(c.Total)
	monthly := decimal.NewFromFloat(c.MonthlyReleaseAmount)
	due := timeutil.AddMonthsKeepingDay(*c.ReleaseStartDate, 1, c.RecurringReleaseDay)

	for i := 0; i < c.Terms; i++ {
		remaining = remaining.Sub(monthly).Abs().Round(2)
		rf, _ := remaining.Float64()
		mf, _ := monthly.Float64()
		rows = append(rows, schedule.Row{
			DueDate:          due,
			TransactionType:  payment.TypeAgentCommissionRelease,
			Amount:           mf,
			RemainingBalance: rf,
		})
		due = timeutil.AddMonthsKeepingDay(due, 1, c.RecurringReleaseDay)
	}
	return rows
}
