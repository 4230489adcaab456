package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Даты аренды разбираются в UTC, поэтому граница "сегодня"
// не зависит от зоны серверных часов
func TestValidateDates_TodayTruncatedInUTC(t *testing.T) {
	dropoff := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	t.Run("pickup today passes with ahead-of-UTC clock", func(t *testing.T) {
		// Локально уже 2 сентября, но по UTC все еще 1-е
		zone := time.FixedZone("UTC+14", 14*3600)
		now := time.Date(2026, 9, 2, 1, 0, 0, 0, zone)
		pickup := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

		assert.NoError(t, validateDates(pickup, dropoff, now))
	})

	t.Run("pickup yesterday rejected with behind-UTC clock", func(t *testing.T) {
		// Локально еще 31 августа, но по UTC наступило 1 сентября
		zone := time.FixedZone("UTC-11", -11*3600)
		now := time.Date(2026, 8, 31, 23, 0, 0, 0, zone)
		pickup := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

		assert.ErrorIs(t, validateDates(pickup, dropoff, now), ErrInvalidDates)
	})
}
