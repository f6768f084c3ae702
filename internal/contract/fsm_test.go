package contract

import (
	"testing"
	"time"

	"github.com/primelots/api-realty/internal/apperror"
	"github.com/primelots/api-realty/internal/lot"
	"github.com/primelots/api-realty/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monthlyContract is an installment contract already past its down payment
// phase: 12 monthly installments of 40,000 against a 480,000 balance.
func monthlyContract() Contract {
	return Contract{
		ClientID:            1,
		AgentID:             1,
		LotID:               1,
		ReservationID:       1,
		PaymentType:         PaymentTypeInstallment,
		TCP:                 500000,
		Terms:               12,
		TotalMonthly:        40000,
		Balance:             480000,
		Status:              StatusOnGoing,
		PaymentStartedDate:  date(2024, time.January, 15),
		NextPaymentDate:     date(2024, time.January, 15),
		PaymentLastDate:     date(2025, time.January, 15),
		RecurringPaymentDay: 15,
	}
}

func TestAcceptPaymentMonthly(t *testing.T) {
	env := newTestEnv(date(2024, time.January, 15))
	id := env.contracts.add(monthlyContract())
	env.lots.Create(nil, &lot.Lot{ID: 1, Status: lot.StatusOnGoing})

	p, c, err := env.svc.AcceptPayment(id, AcceptInput{
		TransactionType: payment.TypeMonthlyPayment,
		Amount:          40000,
		Mode:            payment.ModeCash,
	})
	require.NoError(t, err)

	assert.Equal(t, 440000.0, c.Balance)
	assert.True(t, c.NextPaymentDate.Equal(date(2024, time.February, 15)))
	assert.Equal(t, StatusOnGoing, c.Status)

	assert.Equal(t, payment.TypeMonthlyPayment, p.TransactionType)
	assert.True(t, p.TargetDueDate.Equal(date(2024, time.January, 15)))
	assert.NotEmpty(t, p.Reference)

	saved, err := env.payments.ListByContract(nil, id)
	require.NoError(t, err)
	require.Len(t, saved, 1)
}

func TestAcceptPaymentWrongTypeRejected(t *testing.T) {
	env := newTestEnv(date(2024, time.January, 15))
	id := env.contracts.add(monthlyContract())

	_, _, err := env.svc.AcceptPayment(id, AcceptInput{
		TransactionType: payment.TypePartialDownPayment,
		Amount:          40000,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidState))

	// Nothing was recorded and the contract did not move.
	saved, _ := env.payments.ListByContract(nil, id)
	assert.Empty(t, saved)
	c, _ := env.contracts.FindByID(nil, id)
	assert.Equal(t, 480000.0, c.Balance)
}

func TestAcceptPaymentBelowMinimum(t *testing.T) {
	env := newTestEnv(date(2024, time.January, 15))
	id := env.contracts.add(monthlyContract())

	_, _, err := env.svc.AcceptPayment(id, AcceptInput{
		TransactionType: payment.TypeMonthlyPayment,
		Amount:          39999.99,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientAmount))
	assert.Contains(t, err.Error(), "40,000.00")
}

func TestAcceptPaymentDemandsOutstandingPenalty(t *testing.T) {
	env := newTestEnv(date(2024, time.February, 1))
	c := monthlyContract()
	c.PenaltyAmount = 40000 // two weeks late on a 40,000 installment
	c.PenaltyCount = 2
	id := env.contracts.add(c)

	_, _, err := env.svc.AcceptPayment(id, AcceptInput{
		TransactionType: payment.TypeMonthlyPayment,
		Amount:          40000,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientAmount))
	assert.Contains(t, err.Error(), "80,000.00")

	p, after, err := env.svc.AcceptPayment(id, AcceptInput{
		TransactionType: payment.TypeMonthlyPayment,
		Amount:          80000,
	})
	require.NoError(t, err)

	// The penalty is frozen on the payment row and cleared on the contract.
	assert.Equal(t, 40000.0, p.PenaltyAmount)
	assert.Equal(t, 2, p.PenaltyCount)
	assert.Equal(t, 0.0, after.PenaltyAmount)
	assert.Equal(t, 0, after.PenaltyCount)
	assert.Equal(t, 440000.0, after.Balance)
}

func TestAcceptPaymentWaivedPenalty(t *testing.T) {
	env := newTestEnv(date(2024, time.February, 1))
	c := monthlyContract()
	c.PenaltyAmount = 40000
	c.PenaltyCount = 2
	id := env.contracts.add(c)

	p, after, err := env.svc.AcceptPayment(id, AcceptInput{
		TransactionType: payment.TypeMonthlyPayment,
		Amount:          40000,
		WaivePenalty:    true,
		WaivedReason:    "typhoon closure",
	})
	require.NoError(t, err)

	assert.True(t, p.WaivedPenalty)
	assert.Equal(t, "typhoon closure", p.WaivedReason)
	assert.Equal(t, 440000.0, after.Balance)
	assert.Equal(t, 0.0, after.ExcessPayment)
}

func TestAcceptPaymentExcessCarriesForward(t *testing.T) {
	env := newTestEnv(date(2024, time.January, 15))
	id := env.contracts.add(monthlyContract())

	_, c, err := env.svc.AcceptPayment(id, AcceptInput{
		TransactionType: payment.TypeMonthlyPayment,
		Amount:          45000,
	})
	require.NoError(t, err)

	// The overpayment does not shrink the balance early: it waits for the
	// final installment.
	assert.Equal(t, 5000.0, c.ExcessPayment)
	assert.Equal(t, 440000.0, c.Balance)
}

func TestAcceptPaymentFinalRowConsumesExcess(t *testing.T) {
	env := newTestEnv(date(2024, time.December, 15))
	c := monthlyContract()
	c.Balance = 40000
	c.ExcessPayment = 5000
	c.NextPaymentDate = date(2024, time.December, 15)
	id := env.contracts.add(c)
	env.lots.Create(nil, &lot.Lot{ID: 1, Status: lot.StatusOnGoing})

	_, _, err := env.svc.AcceptPayment(id, AcceptInput{
		TransactionType: payment.TypeMonthlyPayment,
		Amount:          34999,
	})
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientAmount))

	_, after, err := env.svc.AcceptPayment(id, AcceptInput{
		TransactionType: payment.TypeMonthlyPayment,
		Amount:          35000,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, after.Balance)
	assert.Equal(t, StatusDone, after.Status)
	l, _ := env.lots.FindByID(nil, 1)
	assert.Equal(t, lot.StatusSold, l.Status)
}

func TestAcceptPaymentBalanceMonotonicUntilDone(t *testing.T) {
	env := newTestEnv(date(2024, time.January, 15))
	id := env.contracts.add(monthlyContract())
	env.lots.Create(nil, &lot.Lot{ID: 1, Status: lot.StatusOnGoing})

	prev := 480000.0
	for i := 0; i < 12; i++ {
		_, c, err := env.svc.AcceptPayment(id, AcceptInput{
			TransactionType: payment.TypeMonthlyPayment,
			Amount:          40000,
		})
		require.NoError(t, err, "installment %d", i+1)
		assert.Less(t, c.Balance, prev, "installment %d", i+1)
		prev = c.Balance
	}

	c, _ := env.contracts.FindByID(nil, id)
	assert.Equal(t, 0.0, c.Balance)
	assert.Equal(t, StatusDone, c.Status)

	_, _, err := env.svc.AcceptPayment(id, AcceptInput{
		TransactionType: payment.TypeMonthlyPayment,
		Amount:          40000,
	})
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidState))
}

func TestAcceptPaymentCashSettlesInOneSlot(t *testing.T) {
	env := newTestEnv(date(2024, time.January, 15))
	c := monthlyContract()
	c.PaymentType = PaymentTypeCash
	c.Terms = 0
	c.TotalMonthly = 0
	id := env.contracts.add(c)
	env.lots.Create(nil, &lot.Lot{ID: 1, Status: lot.StatusOnGoing})

	_, after, err := env.svc.AcceptPayment(id, AcceptInput{
		TransactionType: payment.TypeTCPFullPayment,
		Amount:          480000,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, after.Balance)
	assert.Equal(t, StatusDone, after.Status)
	l, _ := env.lots.FindByID(nil, 1)
	assert.Equal(t, lot.StatusSold, l.Status)
}

// Partial down-payment slots inherit the day of the previous slot, so a
// March 31 anchor drifts to the 30th over clamped months; the monthly phase
// then re-pins to the recurring day.
func TestAcceptPaymentPartialDownDayDrift(t *testing.T) {
	env := newTestEnv(date(2024, time.March, 31))
	c := monthlyContract()
	c.DownPaymentType = DownPaymentPartial
	c.DownPaymentStatus = DownPaymentOnGoing
	c.DownPaymentTerms = 4
	c.TotalDownPayment = 100000
	c.TotalDownPaymentBalance = 80000
	c.TotalMonthlyDown = 20000
	c.Balance = 400000
	c.TotalMonthly = 40000
	c.Terms = 10
	c.PaymentStartedDate = date(2024, time.March, 31)
	c.NextPaymentDate = date(2024, time.March, 31)
	c.RecurringPaymentDay = 31
	id := env.contracts.add(c)

	wantDue := []time.Time{
		date(2024, time.April, 30),
		date(2024, time.May, 30),
		date(2024, time.June, 30),
		date(2024, time.July, 31), // first monthly slot re-pins
	}
	for i, want := range wantDue {
		_, after, err := env.svc.AcceptPayment(id, AcceptInput{
			TransactionType: payment.TypePartialDownPayment,
			Amount:          20000,
		})
		require.NoError(t, err, "down payment %d", i+1)
		assert.True(t, after.NextPaymentDate.Equal(want),
			"down payment %d: next due %s, want %s", i+1, after.NextPaymentDate, want)
	}

	c2, _ := env.contracts.FindByID(nil, id)
	assert.Equal(t, DownPaymentDone, c2.DownPaymentStatus)
	assert.Equal(t, 0.0, c2.TotalDownPaymentBalance)

	// The contract now only takes monthly installments.
	_, _, err := env.svc.AcceptPayment(id, AcceptInput{
		TransactionType: payment.TypePartialDownPayment,
		Amount:          20000,
	})
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidState))

	_, after, err := env.svc.AcceptPayment(id, AcceptInput{
		TransactionType: payment.TypeMonthlyPayment,
		Amount:          40000,
	})
	require.NoError(t, err)
	assert.Equal(t, 360000.0, after.Balance)
	assert.True(t, after.NextPaymentDate.Equal(date(2024, time.August, 31)))
}

func TestAcceptPaymentRejectsNonOngoingContract(t *testing.T) {
	env := newTestEnv(date(2024, time.January, 15))
	c := monthlyContract()
	c.Status = StatusForfeited
	id := env.contracts.add(c)

	_, _, err := env.svc.AcceptPayment(id, AcceptInput{
		TransactionType: payment.TypeMonthlyPayment,
		Amount:          40000,
	})
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidState))

	_, _, err = env.svc.AcceptPayment(99, AcceptInput{
		TransactionType: payment.TypeMonthlyPayment,
		Amount:          40000,
	})
	assert.True(t, apperror.IsCode(err, apperror.CodeNotFound))
}

func TestAcceptPaymentSendsReceipt(t *testing.T) {
	env := newTestEnv(date(2024, time.January, 15))
	id := env.contracts.add(monthlyContract())
	env.clients.rows[1] = clientFixture()

	_, _, err := env.svc.AcceptPayment(id, AcceptInput{
		TransactionType: payment.TypeMonthlyPayment,
		Amount:          40000,
	})
	require.NoError(t, err)

	require.Len(t, env.notifier.receipts, 1)
	assert.Equal(t, "juan@example.com", env.notifier.receipts[0].Email)
	assert.Equal(t, "Juan Dela Cruz", env.notifier.receipts[0].ClientName)
}
