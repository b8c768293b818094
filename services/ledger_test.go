package services

import (
	"testing"

	"gestion-salon-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_Overpayment(t *testing.T) {
	// due 10000, cash 6000 + orange-money 5000: settled with 1000 change.
	rec, err := Reconcile(10000, []PaymentEntry{
		{Instrument: models.InstrumentCash, Amount: 6000},
		{Instrument: models.InstrumentOrangeMoney, Amount: 5000, Reference: "OM-123"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11000), rec.TotalPaid)
	assert.Equal(t, int64(0), rec.BalanceDue)
	assert.Equal(t, int64(1000), rec.ChangeDue)
	assert.True(t, rec.IsSettled)
	assert.Empty(t, rec.Warnings)
}

func TestReconcile_Underpayment(t *testing.T) {
	rec, err := Reconcile(8000, []PaymentEntry{
		{Instrument: models.InstrumentCash, Amount: 6000},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6000), rec.TotalPaid)
	assert.Equal(t, int64(2000), rec.BalanceDue)
	assert.Equal(t, int64(0), rec.ChangeDue)
	assert.False(t, rec.IsSettled)
}

func TestReconcile_ExactPayment(t *testing.T) {
	// Both balance and change are zero only on exact payment.
	rec, err := Reconcile(5000, []PaymentEntry{
		{Instrument: models.InstrumentCard, Amount: 5000},
	})
	require.NoError(t, err)
	assert.True(t, rec.IsSettled)
	assert.Equal(t, int64(0), rec.BalanceDue)
	assert.Equal(t, int64(0), rec.ChangeDue)
}

func TestReconcile_ZeroAmountEntriesIgnored(t *testing.T) {
	rec, err := Reconcile(5000, []PaymentEntry{
		{Instrument: models.InstrumentCash, Amount: 5000},
		{Instrument: models.InstrumentCard, Amount: 0}, // instrument left unused
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), rec.TotalPaid)
	assert.True(t, rec.IsSettled)
}

func TestReconcile_NegativeAmountRejected(t *testing.T) {
	_, err := Reconcile(5000, []PaymentEntry{
		{Instrument: models.InstrumentCash, Amount: -100},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReconcile_UnknownInstrumentRejected(t *testing.T) {
	_, err := Reconcile(5000, []PaymentEntry{
		{Instrument: "cheque", Amount: 5000},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReconcile_MissingMobileMoneyReferenceWarns(t *testing.T) {
	rec, err := Reconcile(5000, []PaymentEntry{
		{Instrument: models.InstrumentMoovMoney, Amount: 5000},
	})
	require.NoError(t, err)
	assert.True(t, rec.IsSettled)
	assert.Len(t, rec.Warnings, 1)
}

func TestReconcile_BalanceInvariant(t *testing.T) {
	// balanceDue + totalPaid >= due for a spread of payment lists.
	dues := []int64{0, 1, 4999, 5000, 5001, 100000}
	lists := [][]PaymentEntry{
		nil,
		{{Instrument: models.InstrumentCash, Amount: 5000}},
		{{Instrument: models.InstrumentCash, Amount: 2500}, {Instrument: models.InstrumentCard, Amount: 2500}},
		{{Instrument: models.InstrumentOrangeMoney, Amount: 12000, Reference: "OM-1"}},
	}
	for _, due := range dues {
		for _, entries := range lists {
			rec, err := Reconcile(due, entries)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, rec.BalanceDue+rec.TotalPaid, due)
			assert.Equal(t, rec.TotalPaid >= due, rec.IsSettled)
		}
	}
}

func TestSubmittableEntries(t *testing.T) {
	entries := []PaymentEntry{
		{Instrument: models.InstrumentCash, Amount: 0},
		{Instrument: models.InstrumentCard, Amount: 3000},
		{Instrument: models.InstrumentMoovMoney, Amount: 2000, Reference: "MM-1"},
	}
	out := SubmittableEntries(entries)
	require.Len(t, out, 2)
	assert.Equal(t, models.InstrumentCard, out[0].Instrument)
	assert.Equal(t, models.InstrumentMoovMoney, out[1].Instrument)
}
