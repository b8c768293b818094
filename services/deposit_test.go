package services

import (
	"testing"

	"gestion-salon-backend/models"

	"github.com/stretchr/testify/assert"
)

func fixed(v int64) *int64 { return &v }
func pct(v int) *int       { return &v }

func TestComputeRequiredDeposit_FixedWinsOverPercent(t *testing.T) {
	// Fixed amount of 5000 on a 20000 service: the percentage is ignored.
	services := []models.Service{
		{Name: "Tissage", Price: 20000, RequiresDeposit: true, DepositFixed: fixed(5000), DepositPercent: pct(50)},
	}
	assert.Equal(t, int64(5000), ComputeRequiredDeposit(services))
}

func TestComputeRequiredDeposit_PercentageAndExempt(t *testing.T) {
	// 20% of 15000 plus a service requiring no deposit.
	services := []models.Service{
		{Name: "Coloration", Price: 15000, RequiresDeposit: true, DepositPercent: pct(20)},
		{Name: "Coupe", Price: 8000},
	}
	assert.Equal(t, int64(3000), ComputeRequiredDeposit(services))
}

func TestComputeRequiredDeposit_NoPolicyContributesZero(t *testing.T) {
	services := []models.Service{
		{Name: "Soin", Price: 12000, RequiresDeposit: true}, // flag set, no amount configured
		{Name: "Brushing", Price: 5000},
	}
	assert.Equal(t, int64(0), ComputeRequiredDeposit(services))
}

func TestComputeRequiredDeposit_SumsWithoutClamping(t *testing.T) {
	// Contributions can exceed the total price; the sum is not capped.
	services := []models.Service{
		{Name: "A", Price: 1000, RequiresDeposit: true, DepositFixed: fixed(2000)},
		{Name: "B", Price: 1000, RequiresDeposit: true, DepositFixed: fixed(2000)},
	}
	assert.Equal(t, int64(4000), ComputeRequiredDeposit(services))
}

func TestComputeRequiredDeposit_RoundsHalfAwayFromZero(t *testing.T) {
	// 25% of 1250 = 312.5, rounds to 313.
	services := []models.Service{
		{Name: "A", Price: 1250, RequiresDeposit: true, DepositPercent: pct(25)},
	}
	assert.Equal(t, int64(313), ComputeRequiredDeposit(services))
}

func TestComputeRequiredDeposit_Deterministic(t *testing.T) {
	services := []models.Service{
		{Name: "A", Price: 15000, RequiresDeposit: true, DepositPercent: pct(20)},
		{Name: "B", Price: 20000, RequiresDeposit: true, DepositFixed: fixed(5000)},
	}
	first := ComputeRequiredDeposit(services)
	second := ComputeRequiredDeposit(services)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(8000), first)
}

func TestDepositRequested(t *testing.T) {
	assert.False(t, DepositRequested([]models.Service{{Name: "Coupe"}}))
	assert.True(t, DepositRequested([]models.Service{
		{Name: "Coupe"},
		{Name: "Tissage", RequiresDeposit: true},
	}))
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		num, den, want int64
	}{
		{100, 100, 1},
		{150, 100, 2},  // exactly half rounds up
		{149, 100, 1},
		{-150, 100, -2}, // half rounds away from zero on both sides
		{0, 100, 0},
		{100, 0, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, roundHalfAwayFromZero(c.num, c.den), "round(%d/%d)", c.num, c.den)
	}
}
