// services/receipt.go
package services

import (
	"errors"
	"os"
	"time"

	"gestion-salon-backend/models"

	"github.com/golang-jwt/jwt/v5"
)

// Receipt kinds, also used as the token audience.
const (
	ReceiptDeposit = "recu-acompte"
	ReceiptFinal   = "recu-final"
)

// ReceiptLine is one printed line of a receipt.
type ReceiptLine struct {
	Label     string `json:"label"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Total     int64  `json:"total"`
}

// Receipt is the document payload returned by the receipt endpoints.
// Rendering (print, PDF) is the console's job.
type Receipt struct {
	Kind          string           `json:"kind"`
	Number        string           `json:"number"`
	SalonName     string           `json:"salonName"`
	ClientName    string           `json:"clientName"`
	Currency      string           `json:"currency"`
	IssuedAt      time.Time        `json:"issuedAt"`
	Lines         []ReceiptLine    `json:"lines"`
	Payments      []ReceiptPayment `json:"payments"`
	TotalHT       int64            `json:"totalHT"`
	Tax           int64            `json:"tax"`
	TotalTTC      int64            `json:"totalTTC"`
	DepositCredit int64            `json:"depositCredit"`
}

type ReceiptPayment struct {
	Kind       string    `json:"kind"`
	Instrument string    `json:"instrument"`
	Amount     int64     `json:"amount"`
	Reference  string    `json:"reference,omitempty"`
	PaidAt     time.Time `json:"paidAt"`
}

// GenerateReceiptToken signs a short-lived token so receipt links can
// be opened without an authenticated session.
func GenerateReceiptToken(appointmentID, kind string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": appointmentID,
		"aud": kind,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})
	return token.SignedString([]byte(secret))
}

// VerifyReceiptToken checks a receipt token against the appointment and
// receipt kind it was issued for.
func VerifyReceiptToken(tokenString, appointmentID, kind string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid receipt token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid receipt token claims")
	}
	if sub, _ := claims["sub"].(string); sub != appointmentID {
		return errors.New("receipt token does not match appointment")
	}
	aud, _ := claims["aud"].(string)
	if aud != kind {
		return errors.New("receipt token does not match receipt kind")
	}
	return nil
}

// BuildDepositReceipt documents the deposit payments recorded so far.
func BuildDepositReceipt(salon *models.Salon, appt *models.Appointment) Receipt {
	r := Receipt{
		Kind:       ReceiptDeposit,
		Number:     "AC-" + appt.ID.String()[:8],
		SalonName:  salon.Name,
		ClientName: appt.Client.Name,
		Currency:   salon.CurrencyCode,
		IssuedAt:   time.Now(),
	}
	for _, line := range appt.Services {
		r.Lines = append(r.Lines, ReceiptLine{
			Label:     line.ServiceName,
			Quantity:  1,
			UnitPrice: line.Price,
			Total:     line.Price,
		})
		r.TotalHT += line.Price
	}
	r.TotalTTC = r.TotalHT
	for _, p := range appt.Payments {
		if p.Kind != models.PaymentKindDeposit {
			continue
		}
		r.Payments = append(r.Payments, ReceiptPayment{
			Kind:       p.Kind,
			Instrument: p.Instrument,
			Amount:     p.Amount,
			Reference:  p.ExternalReference,
			PaidAt:     p.PaidAt,
		})
	}
	return r
}

// BuildFinalReceipt documents the completed sale with its full payment
// history, deposit included.
func BuildFinalReceipt(salon *models.Salon, appt *models.Appointment, sale *models.Sale) Receipt {
	r := Receipt{
		Kind:          ReceiptFinal,
		Number:        sale.SaleNumber,
		SalonName:     salon.Name,
		ClientName:    appt.Client.Name,
		Currency:      salon.CurrencyCode,
		IssuedAt:      time.Now(),
		TotalHT:       sale.TotalHT,
		Tax:           sale.Tax,
		TotalTTC:      sale.TotalTTC,
		DepositCredit: sale.DepositCredit,
	}
	for _, item := range sale.Items {
		r.Lines = append(r.Lines, ReceiptLine{
			Label:     item.Label,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.TotalPrice,
		})
	}
	for _, p := range appt.Payments {
		r.Payments = append(r.Payments, ReceiptPayment{
			Kind:       p.Kind,
			Instrument: p.Instrument,
			Amount:     p.Amount,
			Reference:  p.ExternalReference,
			PaidAt:     p.PaidAt,
		})
	}
	return r
}
