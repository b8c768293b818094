package services

import (
	"testing"

	"gestion-salon-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finalizableAppointment() *models.Appointment {
	return &models.Appointment{
		ID:     uuid.New(),
		Status: models.StatusInProgress,
		Services: []models.AppointmentService{
			{ServiceID: uuid.New(), ServiceName: "Tissage", Price: 20000, Duration: 90},
			{ServiceID: uuid.New(), ServiceName: "Coupe", Price: 5000, Duration: 30},
		},
	}
}

func TestBuildFinalization_ServicesOnly(t *testing.T) {
	appt := finalizableAppointment()
	res, err := BuildFinalization(appt, nil, nil, []PaymentEntry{
		{Instrument: models.InstrumentCash, Amount: 25000},
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(25000), res.TotalHT)
	assert.Equal(t, int64(25000), res.TotalTTC)
	assert.Equal(t, int64(25000), res.Due)
	assert.Len(t, res.Items, 2)
	assert.True(t, res.Reconciliation.IsSettled)
}

func TestBuildFinalization_DepositCreditedOnlyWhenPaid(t *testing.T) {
	appt := finalizableAppointment()
	appt.DepositAmount = 5000

	// Deposit recorded but not paid: no credit.
	res, err := BuildFinalization(appt, nil, nil, []PaymentEntry{
		{Instrument: models.InstrumentCash, Amount: 25000},
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.DepositCredit)
	assert.Equal(t, int64(25000), res.Due)

	// Paid deposit reduces the due amount.
	appt.DepositPaid = true
	res, err = BuildFinalization(appt, nil, nil, []PaymentEntry{
		{Instrument: models.InstrumentCash, Amount: 20000},
	}, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), res.DepositCredit)
	assert.Equal(t, int64(20000), res.Due)
}

func TestBuildFinalization_DepositLargerThanTotal(t *testing.T) {
	appt := finalizableAppointment()
	appt.DepositAmount = 30000
	appt.DepositPaid = true

	// Due floors at zero; an empty payment list settles it.
	res, err := BuildFinalization(appt, nil, nil, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Due)
	assert.True(t, res.Reconciliation.IsSettled)
}

func TestBuildFinalization_ExtraServicesAndProducts(t *testing.T) {
	appt := finalizableAppointment()
	otherStylist := uuid.New()
	res, err := BuildFinalization(appt,
		[]ExtraServiceLine{
			{Service: models.Service{ID: uuid.New(), Name: "Manucure", Price: 3000}, StylistID: &otherStylist},
		},
		[]ProductLine{
			{Product: models.Product{ID: uuid.New(), Name: "Shampoing", UnitPrice: 2500, StockForSale: 10}, Quantity: 2, StockSource: models.StockSourceForSale},
		},
		[]PaymentEntry{{Instrument: models.InstrumentCash, Amount: 33000}}, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(33000), res.TotalHT) // 25000 + 3000 + 2*2500
	require.Len(t, res.Items, 4)
	assert.Equal(t, models.SaleItemProduct, res.Items[3].Kind)
	assert.Equal(t, models.StockSourceForSale, res.Items[3].StockSource)
	assert.Equal(t, &otherStylist, res.Items[2].StylistID)
}

func TestBuildFinalization_RejectsUnsettled(t *testing.T) {
	// due 8000, payments 6000: no sale record produced.
	appt := finalizableAppointment()
	appt.Services = []models.AppointmentService{
		{ServiceID: uuid.New(), ServiceName: "Tresses", Price: 8000},
	}
	res, err := BuildFinalization(appt, nil, nil, []PaymentEntry{
		{Instrument: models.InstrumentCash, Amount: 6000},
	}, 0)
	assert.ErrorIs(t, err, ErrUnsettledBalance)
	assert.Nil(t, res)
	assert.Equal(t, models.StatusInProgress, appt.Status)
}

func TestBuildFinalization_RejectsStockShortageEvenWhenSettled(t *testing.T) {
	appt := finalizableAppointment()
	res, err := BuildFinalization(appt, nil,
		[]ProductLine{
			{Product: models.Product{ID: uuid.New(), Name: "Gel", UnitPrice: 1000, StockForSale: 1}, Quantity: 3, StockSource: models.StockSourceForSale},
		},
		[]PaymentEntry{{Instrument: models.InstrumentCash, Amount: 100000}}, 0)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Nil(t, res)

	var se *StockError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Gel", se.ProductName)
	assert.Equal(t, 3, se.Requested)
	assert.Equal(t, 1, se.Available)
}

func TestBuildFinalization_ChecksRequestedPool(t *testing.T) {
	// Plenty for sale but none for salon use: drawing from salon-use fails.
	prod := models.Product{ID: uuid.New(), Name: "Huile", UnitPrice: 1500, StockForSale: 10, StockSalonUse: 0}
	appt := finalizableAppointment()

	_, err := BuildFinalization(appt, nil,
		[]ProductLine{{Product: prod, Quantity: 1, StockSource: models.StockSourceSalonUse}},
		[]PaymentEntry{{Instrument: models.InstrumentCash, Amount: 100000}}, 0)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = BuildFinalization(appt, nil,
		[]ProductLine{{Product: prod, Quantity: 1, StockSource: models.StockSourceForSale}},
		[]PaymentEntry{{Instrument: models.InstrumentCash, Amount: 100000}}, 0)
	assert.NoError(t, err)
}

func TestBuildFinalization_RejectsBadProductLines(t *testing.T) {
	appt := finalizableAppointment()
	pay := []PaymentEntry{{Instrument: models.InstrumentCash, Amount: 100000}}

	_, err := BuildFinalization(appt, nil,
		[]ProductLine{{Product: models.Product{Name: "Gel", StockForSale: 5}, Quantity: 0, StockSource: models.StockSourceForSale}},
		pay, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = BuildFinalization(appt, nil,
		[]ProductLine{{Product: models.Product{Name: "Gel", StockForSale: 5}, Quantity: 1, StockSource: "warehouse"}},
		pay, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBuildFinalization_RejectsEmptyAppointment(t *testing.T) {
	appt := &models.Appointment{Status: models.StatusInProgress}
	_, err := BuildFinalization(appt, nil, nil, nil, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBuildFinalization_TaxApplied(t *testing.T) {
	appt := finalizableAppointment()
	res, err := BuildFinalization(appt, nil, nil, []PaymentEntry{
		{Instrument: models.InstrumentCard, Amount: 25000},
	}, 18)
	require.NoError(t, err)
	assert.Equal(t, int64(4500), res.Tax) // 18% of 25000
	assert.Equal(t, int64(29500), res.TotalTTC)
}

func TestBuildFinalization_DropsUnusedPaymentRows(t *testing.T) {
	appt := finalizableAppointment()
	res, err := BuildFinalization(appt, nil, nil, []PaymentEntry{
		{Instrument: models.InstrumentCash, Amount: 25000},
		{Instrument: models.InstrumentCard, Amount: 0},
	}, 0)
	require.NoError(t, err)
	require.Len(t, res.Payments, 1)
	assert.Equal(t, models.InstrumentCash, res.Payments[0].Instrument)
}
