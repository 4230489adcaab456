package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Client клиент для отправки почтовых уведомлений через SMTP
// Отправка писем не влияет на результат бизнес-операций:
// вызывающая сторона логирует ошибку и продолжает работу
type Client struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
	log        Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(host string, port int, username, password, from, adminEmail string, log Logger) *Client {
	return &Client{
		dialer:     gomail.NewDialer(host, port, username, password),
		from:       from,
		adminEmail: adminEmail,
		log:        log,
	}
}

// SendBookingConfirmation отправляет клиенту подтверждение бронирования
func (c *Client) SendBookingConfirmation(data BookingEmail) error {
	subject := fmt.Sprintf("Бронирование %s подтверждено", data.BookingRef)
	body := fmt.Sprintf(
		"<h2>Здравствуйте, %s!</h2>"+
			"<p>Ваше бронирование <b>%s</b> подтверждено.</p>"+
			"<ul>"+
			"<li>Автомобиль: %s</li>"+
			"<li>Получение: %s, %s</li>"+
			"<li>Возврат: %s, %s</li>"+
			"<li>Итого: %.2f</li>"+
			"<li>Начислено баллов: %d</li>"+
			"</ul>"+
			"<p>Спасибо, что выбрали нас!</p>",
		data.RecipientName,
		data.BookingRef,
		data.VehicleName,
		data.PickupDate.Format("02.01.2006"), data.PickupLocation,
		data.DropoffDate.Format("02.01.2006"), data.DropoffLocation,
		data.TotalPrice,
		data.LoyaltyPoints,
	)

	if err := c.send(data.RecipientEmail, subject, body); err != nil {
		return fmt.Errorf("%w: booking confirmation for %s: %v", ErrSendFailed, data.BookingRef, err)
	}

	c.log.Info("Sent booking confirmation email for booking_ref=%s to %s", data.BookingRef, data.RecipientEmail)
	return nil
}

// SendAdminNewBooking уведомляет администратора об оплаченном бронировании
func (c *Client) SendAdminNewBooking(data BookingEmail) error {
	subject := fmt.Sprintf("Новое бронирование %s", data.BookingRef)
	body := fmt.Sprintf(
		"<h2>Оплачено новое бронирование %s</h2>"+
			"<ul>"+
			"<li>Клиент: %s (%s)</li>"+
			"<li>Автомобиль: %s</li>"+
			"<li>Период: %s - %s</li>"+
			"<li>Сумма: %.2f</li>"+
			"</ul>",
		data.BookingRef,
		data.RecipientName, data.RecipientEmail,
		data.VehicleName,
		data.PickupDate.Format("02.01.2006"),
		data.DropoffDate.Format("02.01.2006"),
		data.TotalPrice,
	)

	if err := c.send(c.adminEmail, subject, body); err != nil {
		return fmt.Errorf("%w: admin notification for %s: %v", ErrSendFailed, data.BookingRef, err)
	}

	c.log.Info("Sent admin notification email for booking_ref=%s", data.BookingRef)
	return nil
}

func (c *Client) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return c.dialer.DialAndSend(msg)
}
