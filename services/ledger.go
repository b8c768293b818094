// services/ledger.go
package services

import (
	"fmt"

	"gestion-salon-backend/models"
)

// PaymentEntry is one payment row being reconciled against an amount
// due. Reference is the mobile-money transaction reference; expected
// for orange-money and moov-money but never enforced.
type PaymentEntry struct {
	Instrument string `json:"instrument"`
	Amount     int64  `json:"amount"`
	Reference  string `json:"reference,omitempty"`
}

// Reconciliation is the derived view of a payment list against a due
// amount. It is recomputed from scratch every time the list changes;
// nothing here is stored.
type Reconciliation struct {
	Due        int64    `json:"due"`
	TotalPaid  int64    `json:"totalPaid"`
	BalanceDue int64    `json:"balanceDue"`
	ChangeDue  int64    `json:"changeDue"`
	IsSettled  bool     `json:"isSettled"`
	Warnings   []string `json:"warnings,omitempty"`
}

var validInstruments = map[string]bool{
	models.InstrumentCash:        true,
	models.InstrumentOrangeMoney: true,
	models.InstrumentMoovMoney:   true,
	models.InstrumentCard:        true,
}

// Reconcile computes total paid, balance due and change due for a due
// amount and an ordered list of payment entries. Zero-amount entries
// are tolerated (an instrument left unused) but do not count as rows to
// submit; negative amounts are rejected.
func Reconcile(due int64, entries []PaymentEntry) (Reconciliation, error) {
	rec := Reconciliation{Due: due}

	if due < 0 {
		return rec, fmt.Errorf("%w: due amount cannot be negative", ErrValidation)
	}

	for i, e := range entries {
		if e.Amount < 0 {
			return rec, fmt.Errorf("%w: payment %d has a negative amount", ErrValidation, i+1)
		}
		if !validInstruments[e.Instrument] {
			return rec, fmt.Errorf("%w: unknown payment instrument %q", ErrValidation, e.Instrument)
		}
		if e.Amount == 0 {
			continue
		}
		rec.TotalPaid += e.Amount

		// Missing operator reference is a soft warning, not an error.
		if (e.Instrument == models.InstrumentOrangeMoney || e.Instrument == models.InstrumentMoovMoney) &&
			e.Reference == "" {
			rec.Warnings = append(rec.Warnings,
				fmt.Sprintf("payment %d (%s) has no transaction reference", i+1, e.Instrument))
		}
	}

	if rec.TotalPaid >= due {
		rec.ChangeDue = rec.TotalPaid - due
		rec.IsSettled = true
	} else {
		rec.BalanceDue = due - rec.TotalPaid
	}

	return rec, nil
}

// SubmittableEntries strips zero-amount rows, keeping order. Only these
// rows are persisted as payments.
func SubmittableEntries(entries []PaymentEntry) []PaymentEntry {
	out := make([]PaymentEntry, 0, len(entries))
	for _, e := range entries {
		if e.Amount > 0 {
			out = append(out, e)
		}
	}
	return out
}
