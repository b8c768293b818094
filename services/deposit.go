// services/deposit.go
package services

import (
	"gestion-salon-backend/models"
)

// ComputeRequiredDeposit returns the deposit to request for a set of
// selected services. Per service requiring a deposit, a fixed amount
// takes precedence over a percentage of the base price; with neither
// configured the service contributes nothing.
//
// Contributions are summed without clamping to the total price, so a
// required deposit can exceed the estimated price. That mirrors how the
// salon has always quoted deposits (they may cover supplies bought up
// front) and is kept as is pending product clarification.
func ComputeRequiredDeposit(services []models.Service) int64 {
	var total int64
	for _, s := range services {
		if !s.RequiresDeposit {
			continue
		}
		switch {
		case s.DepositFixed != nil:
			total += *s.DepositFixed
		case s.DepositPercent != nil:
			total += roundHalfAwayFromZero(s.Price*int64(*s.DepositPercent), 100)
		}
	}
	return total
}

// DepositRequested reports whether any selected service requires a
// deposit.
func DepositRequested(services []models.Service) bool {
	for _, s := range services {
		if s.RequiresDeposit {
			return true
		}
	}
	return false
}

// roundHalfAwayFromZero divides num by den rounding halves away from
// zero, matching how amounts are displayed in whole currency units.
func roundHalfAwayFromZero(num, den int64) int64 {
	if den == 0 {
		return 0
	}
	if num < 0 {
		return -roundHalfAwayFromZero(-num, den)
	}
	return (num + den/2) / den
}
