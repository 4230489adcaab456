package payments

// PaymentIntent результат создания платежного намерения в Stripe
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	Amount       int64
	Currency     string
}

// Refund результат возврата средств
type Refund struct {
	ID     string
	Status string
	Amount int64
}
