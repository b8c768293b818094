package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	loc := time.FixedZone("GMT", 0)
	in := time.Date(2026, 3, 14, 17, 45, 12, 999, loc)

	got := BeginningOfDay(in)

	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}

func TestBeginningOfDayKeepsLocalZone(t *testing.T) {
	loc := time.FixedZone("WAT", 3600)
	in := time.Date(2026, 3, 14, 0, 30, 0, 0, loc)

	got := BeginningOfDay(in)

	// Half past midnight local must not slip to the previous UTC day.
	assert.Equal(t, 14, got.Day())
	assert.Equal(t, 0, got.Hour())
}
