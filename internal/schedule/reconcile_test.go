package schedule

import (
	"testing"
	"time"

	"github.com/primelots/api-realty/internal/payment"
	"github.com/primelots/api-realty/internal/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthlySnapshot() Snapshot {
	return Snapshot{
		PaymentType:         PaymentTypeInstallment,
		TotalPrice:          120000,
		Terms:               3,
		TotalMonthly:        40000,
		PaymentStartedDate:  day(2024, time.January, 15),
		RecurringPaymentDay: 15,
	}
}

func TestReconcileMarksPaidRows(t *testing.T) {
	rows := Build(monthlySnapshot(), nil)
	history := []payment.Payment{
		{Amount: 40000, TargetDueDate: day(2024, time.January, 15), TransactionType: payment.TypeMonthlyPayment},
	}

	got, proj := Reconcile(rows, history, day(2024, time.January, 20))
	require.Len(t, got, 3)
	assert.True(t, got[0].Paid)
	assert.Equal(t, 40000.0, got[0].PaidAmount)
	assert.False(t, got[1].Paid)
	assert.Nil(t, proj)
}

// A payment targeting a different calendar date must not satisfy the row.
func TestReconcileDateMatchingIsExact(t *testing.T) {
	rows := Build(monthlySnapshot(), nil)
	history := []payment.Payment{
		{Amount: 40000, TargetDueDate: day(2024, time.January, 16)},
	}

	got, _ := Reconcile(rows, history, day(2024, time.January, 16))
	assert.False(t, got[0].Paid)
}

func TestReconcileProjectsPenaltyOnOverdueRow(t *testing.T) {
	rows := Build(monthlySnapshot(), nil)

	// Jan 15 due, Feb 1 today: two whole weeks late.
	got, proj := Reconcile(rows, nil, day(2024, time.February, 1))
	assert.Equal(t, 2, got[0].PenaltyCount)
	assert.Equal(t, 40000*0.5*2, got[0].PenaltyAmount)
	assert.True(t, got[0].ProjectedPenalty)

	require.NotNil(t, proj)
	assert.Equal(t, 2, proj.PenaltyCount)
	assert.Equal(t, 40000.0, proj.PenaltyAmount)
	assert.Equal(t, "2024-01-15", timeutil.FormatDate(proj.DueDate))
}

// The projection reports the first unpaid penalized row only.
func TestReconcileProjectionIsFirstUnpaid(t *testing.T) {
	rows := Build(monthlySnapshot(), nil)
	history := []payment.Payment{
		{Amount: 40000, TargetDueDate: day(2024, time.January, 15)},
	}

	_, proj := Reconcile(rows, history, day(2024, time.March, 10))
	require.NotNil(t, proj)
	assert.Equal(t, "2024-02-15", timeutil.FormatDate(proj.DueDate))
}

// Historical penalty fields on a paid row come from the payment record, not
// from a fresh computation.
func TestReconcileFreezesHistoricalPenalty(t *testing.T) {
	rows := Build(monthlySnapshot(), nil)
	history := []payment.Payment{
		{
			Amount:        60000,
			TargetDueDate: day(2024, time.January, 15),
			PenaltyAmount: 20000,
			PenaltyCount:  1,
			WaivedPenalty: true,
			WaivedReason:  "typhoon closure",
		},
	}

	got, _ := Reconcile(rows, history, day(2024, time.June, 1))
	assert.True(t, got[0].Paid)
	assert.Equal(t, 20000.0, got[0].PenaltyAmount)
	assert.Equal(t, 1, got[0].PenaltyCount)
	assert.True(t, got[0].WaivedPenalty)
	assert.Equal(t, "typhoon closure", got[0].WaivedReason)
	assert.False(t, got[0].ProjectedPenalty)
}

func TestReconcileOverdueUnderOneWeekHasNoPenalty(t *testing.T) {
	rows := Build(monthlySnapshot(), nil)

	got, proj := Reconcile(rows, nil, day(2024, time.January, 20))
	assert.False(t, got[0].Paid)
	assert.Zero(t, got[0].PenaltyCount)
	assert.Nil(t, proj)
}
