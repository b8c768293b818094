package services

import (
	"testing"
	"time"

	"gestion-salon-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptToken_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	apptID := uuid.New().String()
	token, err := GenerateReceiptToken(apptID, ReceiptDeposit)
	require.NoError(t, err)

	assert.NoError(t, VerifyReceiptToken(token, apptID, ReceiptDeposit))
	assert.Error(t, VerifyReceiptToken(token, apptID, ReceiptFinal), "token is bound to the receipt kind")
	assert.Error(t, VerifyReceiptToken(token, uuid.New().String(), ReceiptDeposit), "token is bound to the appointment")
	assert.Error(t, VerifyReceiptToken("not-a-token", apptID, ReceiptDeposit))
}

func TestReceiptToken_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := GenerateReceiptToken(uuid.New().String(), ReceiptDeposit)
	assert.Error(t, err)
}

func TestBuildDepositReceipt(t *testing.T) {
	salon := &models.Salon{Name: "Salon Élégance", CurrencyCode: "XOF"}
	appt := &models.Appointment{
		ID:     uuid.New(),
		Client: models.Client{Name: "Awa"},
		Services: []models.AppointmentService{
			{ServiceName: "Tissage", Price: 20000},
		},
		Payments: []models.Payment{
			{Kind: models.PaymentKindDeposit, Instrument: models.InstrumentOrangeMoney, Amount: 5000, ExternalReference: "OM-42", PaidAt: time.Now()},
			{Kind: models.PaymentKindBalance, Instrument: models.InstrumentCash, Amount: 15000, PaidAt: time.Now()},
		},
	}

	r := BuildDepositReceipt(salon, appt)
	assert.Equal(t, ReceiptDeposit, r.Kind)
	assert.Equal(t, "Awa", r.ClientName)
	assert.Equal(t, int64(20000), r.TotalHT)
	// Only deposit-kind payments appear on the deposit receipt.
	require.Len(t, r.Payments, 1)
	assert.Equal(t, int64(5000), r.Payments[0].Amount)
}

func TestBuildFinalReceipt(t *testing.T) {
	salon := &models.Salon{Name: "Salon Élégance", CurrencyCode: "XOF"}
	appt := &models.Appointment{
		ID:     uuid.New(),
		Client: models.Client{Name: "Awa"},
		Payments: []models.Payment{
			{Kind: models.PaymentKindDeposit, Instrument: models.InstrumentCash, Amount: 5000, PaidAt: time.Now()},
			{Kind: models.PaymentKindBalance, Instrument: models.InstrumentCard, Amount: 20000, PaidAt: time.Now()},
		},
	}
	sale := &models.Sale{
		SaleNumber:    "VTE-20260831-ABC123",
		TotalHT:       25000,
		TotalTTC:      25000,
		DepositCredit: 5000,
		Items: []models.SaleItem{
			{Kind: models.SaleItemService, Label: "Tissage", Quantity: 1, UnitPrice: 20000, TotalPrice: 20000},
			{Kind: models.SaleItemProduct, Label: "Shampoing", Quantity: 2, UnitPrice: 2500, TotalPrice: 5000},
		},
	}

	r := BuildFinalReceipt(salon, appt, sale)
	assert.Equal(t, ReceiptFinal, r.Kind)
	assert.Equal(t, sale.SaleNumber, r.Number)
	assert.Len(t, r.Lines, 2)
	// The final receipt carries the full payment history, deposit included.
	assert.Len(t, r.Payments, 2)
	assert.Equal(t, int64(5000), r.DepositCredit)
}
