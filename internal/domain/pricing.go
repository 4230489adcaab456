package domain

// PriceBreakdown расшифровка стоимости бронирования
type PriceBreakdown struct {
	BasePrice   float64
	ExtrasPrice float64
	Discount    float64
	TotalPrice  float64
}

// CalculatePrice вычисляет стоимость аренды
// Чистая функция без побочных эффектов:
//   - basePrice = дневной тариф × количество дней
//   - extrasPrice = сумма (тариф доп. услуги × дни) по известным кодам,
//     неизвестные коды молча игнорируются
//   - скидка: PERCENT считается от (basePrice + extrasPrice), FIXED - фиксированная сумма
//   - итог не бывает отрицательным
//
// Валидность числовых входов (неотрицательность) - ответственность вызывающего.
func CalculatePrice(dailyRate float64, days int, extras []string, extraRates map[string]float64, coupon *Coupon) PriceBreakdown {
	basePrice := dailyRate * float64(days)

	var extrasPrice float64
	for _, code := range extras {
		if rate, ok := extraRates[code]; ok {
			extrasPrice += rate * float64(days)
		}
	}

	var discount float64
	if coupon != nil {
		discount = coupon.CalculateDiscount(basePrice + extrasPrice)
	}

	totalPrice := basePrice + extrasPrice - discount
	if totalPrice < 0 {
		totalPrice = 0
	}

	return PriceBreakdown{
		BasePrice:   basePrice,
		ExtrasPrice: extrasPrice,
		Discount:    discount,
		TotalPrice:  totalPrice,
	}
}
