// services/finalize.go
package services

import (
	"fmt"

	"gestion-salon-backend/models"

	"github.com/google/uuid"
)

// ExtraServiceLine is a service added at settlement time, optionally
// performed by a different stylist than the appointment's primary one.
type ExtraServiceLine struct {
	Service   models.Service
	StylistID *uuid.UUID
}

// ProductLine is a retail product sold at settlement time, drawn from
// one of the two stock pools. Available mirrors the pool's quantity at
// submission time; the database remains authoritative.
type ProductLine struct {
	Product     models.Product
	Quantity    int
	StockSource string
}

// FinalizeResult is everything the controller needs to persist a
// settlement in one transaction: the composed sale, its line items, the
// reconciliation of the new payments, and the payment rows to append.
type FinalizeResult struct {
	TotalHT        int64
	Tax            int64
	TotalTTC       int64
	DepositCredit  int64
	Due            int64
	Items          []models.SaleItem
	Payments       []PaymentEntry
	Reconciliation Reconciliation
}

// BuildFinalization composes an appointment's settlement: the original
// services carried over unconditionally, plus extra services and
// products, credited with the paid deposit and reconciled against the
// new payments. It performs no I/O; stock decrement and persistence are
// the caller's transaction. No sale is produced when the balance is not
// settled or a product overdraws its pool.
func BuildFinalization(appt *models.Appointment, extras []ExtraServiceLine,
	products []ProductLine, payments []PaymentEntry, taxPercent int) (*FinalizeResult, error) {

	if len(appt.Services) == 0 {
		return nil, fmt.Errorf("%w: appointment has no services", ErrValidation)
	}

	res := &FinalizeResult{}

	// Original services are always part of the sale.
	for _, line := range appt.Services {
		stylist := line.StylistID
		if stylist == nil {
			stylist = appt.StylistID
		}
		svcID := line.ServiceID
		res.Items = append(res.Items, models.SaleItem{
			Kind:       models.SaleItemService,
			ServiceID:  &svcID,
			StylistID:  stylist,
			Label:      line.ServiceName,
			Quantity:   1,
			UnitPrice:  line.Price,
			TotalPrice: line.Price,
		})
		res.TotalHT += line.Price
	}

	for _, ex := range extras {
		stylist := ex.StylistID
		if stylist == nil {
			stylist = appt.StylistID
		}
		svcID := ex.Service.ID
		res.Items = append(res.Items, models.SaleItem{
			Kind:       models.SaleItemService,
			ServiceID:  &svcID,
			StylistID:  stylist,
			Label:      ex.Service.Name,
			Quantity:   1,
			UnitPrice:  ex.Service.Price,
			TotalPrice: ex.Service.Price,
		})
		res.TotalHT += ex.Service.Price
	}

	for _, pl := range products {
		if pl.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %s has a non-positive quantity", ErrValidation, pl.Product.Name)
		}
		if pl.StockSource != models.StockSourceForSale && pl.StockSource != models.StockSourceSalonUse {
			return nil, fmt.Errorf("%w: unknown stock source %q", ErrValidation, pl.StockSource)
		}
		if available := pl.Product.StockFor(pl.StockSource); pl.Quantity > available {
			return nil, &StockError{
				ProductName: pl.Product.Name,
				Source:      pl.StockSource,
				Requested:   pl.Quantity,
				Available:   available,
			}
		}
		prodID := pl.Product.ID
		lineTotal := pl.Product.UnitPrice * int64(pl.Quantity)
		res.Items = append(res.Items, models.SaleItem{
			Kind:        models.SaleItemProduct,
			ProductID:   &prodID,
			Label:       pl.Product.Name,
			Quantity:    pl.Quantity,
			UnitPrice:   pl.Product.UnitPrice,
			TotalPrice:  lineTotal,
			StockSource: pl.StockSource,
		})
		res.TotalHT += lineTotal
	}

	// Deposit counts only once actually paid.
	if appt.DepositPaid {
		res.DepositCredit = appt.DepositAmount
	}

	res.Due = res.TotalHT - res.DepositCredit
	if res.Due < 0 {
		res.Due = 0
	}

	rec, err := Reconcile(res.Due, payments)
	if err != nil {
		return nil, err
	}
	if !rec.IsSettled {
		return nil, fmt.Errorf("%w: %d remaining against %d due", ErrUnsettledBalance, rec.BalanceDue, res.Due)
	}
	res.Reconciliation = rec
	res.Payments = SubmittableEntries(payments)

	res.Tax = roundHalfAwayFromZero(res.TotalHT*int64(taxPercent), 100)
	res.TotalTTC = res.TotalHT + res.Tax

	return res, nil
}
