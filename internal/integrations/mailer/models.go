package mailer

import "time"

// BookingEmail данные для письма о бронировании
type BookingEmail struct {
	RecipientEmail  string
	RecipientName   string
	BookingRef      string
	VehicleName     string
	PickupDate      time.Time
	DropoffDate     time.Time
	PickupLocation  string
	DropoffLocation string
	TotalPrice      float64
	LoyaltyPoints   int64
}
