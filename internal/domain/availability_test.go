package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(value string) time.Time {
	t, err := time.Parse(DateFormat, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name     string
		p1, d1   string
		p2, d2   string
		expected bool
	}{
		{"full containment", "2024-06-01", "2024-06-10", "2024-06-03", "2024-06-05", true},
		{"partial overlap", "2024-06-01", "2024-06-05", "2024-06-04", "2024-06-08", true},
		{"shared boundary day conflicts", "2024-06-01", "2024-06-05", "2024-06-05", "2024-06-08", true},
		{"disjoint after", "2024-06-01", "2024-06-05", "2024-06-06", "2024-06-08", false},
		{"disjoint before", "2024-06-06", "2024-06-08", "2024-06-01", "2024-06-05", false},
		{"identical ranges", "2024-06-01", "2024-06-05", "2024-06-01", "2024-06-05", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RangesOverlap(date(tc.p1), date(tc.d1), date(tc.p2), date(tc.d2))
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestRentalDays(t *testing.T) {
	cases := []struct {
		name     string
		pickup   string
		dropoff  string
		expected int
	}{
		{"three full days", "2024-06-01", "2024-06-04", 3},
		{"one day", "2024-06-01", "2024-06-02", 1},
		{"same day is zero", "2024-06-01", "2024-06-01", 0},
		{"inverted range is negative", "2024-06-04", "2024-06-01", -3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RentalDays(date(tc.pickup), date(tc.dropoff)))
		})
	}

	t.Run("partial day rounds up", func(t *testing.T) {
		pickup := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		dropoff := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, 3, RentalDays(pickup, dropoff))
	})
}

func TestBuildCalendar(t *testing.T) {
	occupying := []*Booking{
		{Status: StatusConfirmed, PickupDate: date("2024-06-03"), DropoffDate: date("2024-06-05")},
		{Status: StatusCancelled, PickupDate: date("2024-06-01"), DropoffDate: date("2024-06-10")},
	}

	calendar := BuildCalendar(date("2024-06-01"), date("2024-06-07"), occupying)
	require.Len(t, calendar, 7)

	expected := map[string]bool{
		"2024-06-01": true,
		"2024-06-02": true,
		"2024-06-03": false,
		"2024-06-04": false,
		"2024-06-05": false,
		"2024-06-06": true,
		"2024-06-07": true,
	}

	for _, day := range calendar {
		assert.Equal(t, expected[day.Date.Format(DateFormat)], day.Available,
			"day %s", day.Date.Format(DateFormat))
	}
}

func TestBuildCalendarIgnoresCancelledBookings(t *testing.T) {
	bookings := []*Booking{
		{Status: StatusCancelled, PickupDate: date("2024-06-01"), DropoffDate: date("2024-06-03")},
		{Status: StatusCompleted, PickupDate: date("2024-06-01"), DropoffDate: date("2024-06-03")},
	}

	calendar := BuildCalendar(date("2024-06-01"), date("2024-06-03"), bookings)
	for _, day := range calendar {
		assert.True(t, day.Available)
	}
}
