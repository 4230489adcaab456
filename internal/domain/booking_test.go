package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingIsOccupying(t *testing.T) {
	cases := []struct {
		status   BookingStatus
		expected bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusInProgress, true},
		{StatusCompleted, false},
		{StatusCancelled, false},
	}

	for _, tc := range cases {
		b := &Booking{Status: tc.status}
		assert.Equal(t, tc.expected, b.IsOccupying(), "status %s", tc.status)
	}
}

func TestBookingCanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusInProgress}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
}

func TestValidStatusTransition(t *testing.T) {
	allowed := []struct{ from, to BookingStatus }{
		{StatusPending, StatusConfirmed},
		{StatusConfirmed, StatusInProgress},
		{StatusConfirmed, StatusCompleted},
		{StatusInProgress, StatusCompleted},
	}
	for _, tc := range allowed {
		assert.True(t, ValidStatusTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	rejected := []struct{ from, to BookingStatus }{
		{StatusPending, StatusInProgress},
		{StatusPending, StatusCompleted},
		{StatusCompleted, StatusInProgress},
		{StatusCancelled, StatusConfirmed},
		{StatusConfirmed, StatusPending},
	}
	for _, tc := range rejected {
		assert.False(t, ValidStatusTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestBookingLoyaltyPoints(t *testing.T) {
	assert.Equal(t, int64(2835), (&Booking{TotalPrice: 2835.75}).LoyaltyPoints())
	assert.Equal(t, int64(0), (&Booking{TotalPrice: 0.99}).LoyaltyPoints())
}
