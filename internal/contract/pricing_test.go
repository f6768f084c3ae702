package contract

import (
	"testing"
	"time"

	"github.com/primelots/api-realty/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceCash(t *testing.T) {
	c := &Contract{}
	err := Price(c, PricingInput{
		SqmPrice:           5000,
		TotalLotPrice:      450000,
		MiscellaneousTotal: 50000,
		PaymentType:        PaymentTypeCash,
		ReservationFee:     20000,
		BaseDate:           date(2024, time.January, 15),
	})
	require.NoError(t, err)

	assert.Equal(t, 500000.0, c.TCP)
	assert.Equal(t, 480000.0, c.Balance)
	assert.Equal(t, StatusOnGoing, c.Status)
	assert.True(t, c.PaymentLastDate.Equal(date(2024, time.January, 15)))
	assert.Equal(t, 15, c.RecurringPaymentDay)
}

func TestPriceInstallmentNoDown(t *testing.T) {
	c := &Contract{}
	err := Price(c, PricingInput{
		TotalLotPrice: 500000,
		PaymentType:   PaymentTypeInstallment,
		Terms:         12,
		ReservationFee: 20000,
		BaseDate:       date(2024, time.January, 15),
	})
	require.NoError(t, err)

	assert.Equal(t, 480000.0, c.Balance)
	assert.Equal(t, 40000.0, c.TotalMonthly)
	assert.Equal(t, 12, c.Terms)
	assert.True(t, c.NextPaymentDate.Equal(date(2024, time.January, 15)))
	assert.True(t, c.PaymentLastDate.Equal(date(2025, time.January, 15)))
}

func TestPriceInstallmentStraightInterest(t *testing.T) {
	c := &Contract{}
	err := Price(c, PricingInput{
		TotalLotPrice:   500000,
		PaymentType:     PaymentTypeInstallment,
		InstallmentType: InstallmentStraightMonthly,
		Interest:        5,
		Terms:           10,
		ReservationFee:  20000,
		BaseDate:        date(2024, time.January, 15),
	})
	require.NoError(t, err)

	assert.Equal(t, 25000.0, c.InterestTotal)
	assert.Equal(t, 505000.0, c.Balance)
	assert.Equal(t, 50500.0, c.TotalMonthly)
	assert.Equal(t, 525000.0, c.TotalPrice())
}

func TestPricePartialDownPayment(t *testing.T) {
	c := &Contract{}
	err := Price(c, PricingInput{
		TotalLotPrice:      500000,
		PaymentType:        PaymentTypeInstallment,
		Terms:              10,
		DownPaymentType:    DownPaymentPartial,
		DownPaymentPercent: 20,
		DownPaymentTerms:   4,
		ReservationFee:     20000,
		BaseDate:           date(2024, time.March, 31),
	})
	require.NoError(t, err)

	assert.Equal(t, 100000.0, c.TotalDownPayment)
	assert.Equal(t, 80000.0, c.TotalDownPaymentBalance)
	assert.Equal(t, 20000.0, c.TotalMonthlyDown)
	assert.Equal(t, 400000.0, c.Balance)
	assert.Equal(t, 40000.0, c.TotalMonthly)
	assert.Equal(t, DownPaymentOnGoing, c.DownPaymentStatus)
	assert.Equal(t, 31, c.RecurringPaymentDay)
	// 4 down slots plus 10 monthly slots from the March 31 anchor.
	assert.True(t, c.PaymentLastDate.Equal(date(2025, time.May, 31)))
}

func TestPriceFullDownPayment(t *testing.T) {
	c := &Contract{}
	err := Price(c, PricingInput{
		TotalLotPrice:      500000,
		PaymentType:        PaymentTypeInstallment,
		Terms:              10,
		DownPaymentType:    DownPaymentFull,
		DownPaymentPercent: 20,
		ReservationFee:     20000,
		BaseDate:           date(2024, time.January, 15),
	})
	require.NoError(t, err)

	assert.Equal(t, 80000.0, c.TotalMonthlyDown)
	assert.Equal(t, 400000.0, c.Balance)
	assert.True(t, c.PaymentLastDate.Equal(date(2024, time.December, 15)))
}

func TestPriceRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		in   PricingInput
	}{
		{"unknown payment type", PricingInput{PaymentType: "LAYAWAY", BaseDate: date(2024, time.January, 1)}},
		{"zero terms", PricingInput{PaymentType: PaymentTypeInstallment, BaseDate: date(2024, time.January, 1)}},
		{"partial down without terms", PricingInput{
			PaymentType:     PaymentTypeInstallment,
			Terms:           10,
			DownPaymentType: DownPaymentPartial,
			BaseDate:        date(2024, time.January, 1),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Price(&Contract{}, tc.in)
			require.Error(t, err)
			assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
		})
	}
}
