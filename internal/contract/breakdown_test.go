package contract

import (
	"errors"
	"testing"
	"time"

	"github.com/primelots/api-realty/internal/payment"
	"github.com/primelots/api-realty/internal/reservation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBreakdownContract(env *testEnv) uint {
	id := env.contracts.add(monthlyContract())
	env.reservations.rows[1] = reservation.Reservation{
		ID: 1, ClientID: 1, LotID: 1,
		Validity: date(2024, time.January, 8),
		Status:   reservation.StatusDone,
	}
	resID := uint(1)
	env.payments.rows = append(env.payments.rows, payment.Payment{
		ID: 1, ReservationID: &resID, Amount: 20000,
		TransactionType: payment.TypeReservationFee,
		TargetDueDate:   date(2024, time.January, 8),
	})
	env.payments.nextID = 2
	return id
}

func TestBreakdownMarksPaidRows(t *testing.T) {
	env := newTestEnv(date(2024, time.February, 20))
	id := seedBreakdownContract(env)
	env.payments.rows = append(env.payments.rows, payment.Payment{
		ID: 2, ContractID: &id, Amount: 40000,
		TransactionType: payment.TypeMonthlyPayment,
		TargetDueDate:   date(2024, time.January, 15),
	})

	rows, err := env.svc.Breakdown(id)
	require.NoError(t, err)
	require.Len(t, rows, 13) // fee plus 12 monthly installments

	assert.Equal(t, payment.TypeReservationFee, rows[0].TransactionType)
	assert.True(t, rows[0].Paid)
	assert.Equal(t, 480000.0, rows[0].RemainingBalance)

	assert.True(t, rows[1].Paid)
	assert.Equal(t, 40000.0, rows[1].PaidAmount)
	assert.False(t, rows[2].Paid)
	assert.Equal(t, 0.0, rows[12].RemainingBalance)
}

func TestBreakdownWritesProjectedPenaltyBack(t *testing.T) {
	// Two weeks past the February installment.
	env := newTestEnv(date(2024, time.February, 29))
	id := seedBreakdownContract(env)
	env.payments.rows = append(env.payments.rows, payment.Payment{
		ID: 2, ContractID: &id, Amount: 40000,
		TransactionType: payment.TypeMonthlyPayment,
		TargetDueDate:   date(2024, time.January, 15),
	})

	rows, err := env.svc.Breakdown(id)
	require.NoError(t, err)

	// rows[2] is the February 15 installment: 40,000 × 0.5/week × 2 weeks.
	assert.True(t, rows[2].ProjectedPenalty)
	assert.Equal(t, 40000.0, rows[2].PenaltyAmount)
	assert.Equal(t, 2, rows[2].PenaltyCount)

	c, _ := env.contracts.FindByID(nil, id)
	assert.Equal(t, 40000.0, c.PenaltyAmount)
	assert.Equal(t, 2, c.PenaltyCount)
	assert.Equal(t, 1, env.contracts.penaltyWrites)

	// A second read observes the same projection and does not rewrite it.
	_, err = env.svc.Breakdown(id)
	require.NoError(t, err)
	assert.Equal(t, 1, env.contracts.penaltyWrites)
}

func TestBreakdownFrozenPenaltyOnPaidRow(t *testing.T) {
	env := newTestEnv(date(2024, time.June, 1))
	id := seedBreakdownContract(env)
	env.payments.rows = append(env.payments.rows, payment.Payment{
		ID: 2, ContractID: &id, Amount: 40000,
		TransactionType: payment.TypeMonthlyPayment,
		TargetDueDate:   date(2024, time.January, 15),
		PenaltyAmount:   20000,
		PenaltyCount:    1,
		WaivedPenalty:   true,
		WaivedReason:    "first offense",
	})

	rows, err := env.svc.Breakdown(id)
	require.NoError(t, err)

	// The paid row carries the penalty exactly as recorded at payment time,
	// not a recomputation against today.
	assert.True(t, rows[1].Paid)
	assert.Equal(t, 20000.0, rows[1].PenaltyAmount)
	assert.Equal(t, 1, rows[1].PenaltyCount)
	assert.True(t, rows[1].WaivedPenalty)
	assert.False(t, rows[1].ProjectedPenalty)
}

func TestBreakdownFailsWhenHistoryUnavailable(t *testing.T) {
	env := newTestEnv(date(2024, time.February, 1))
	id := seedBreakdownContract(env)
	env.payments.listErr = errors.New("connection reset")

	rows, err := env.svc.Breakdown(id)
	require.Error(t, err)
	assert.Nil(t, rows)
}
