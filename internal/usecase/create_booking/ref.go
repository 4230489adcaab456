package create_booking

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const bookingRefPrefix = "APEX-"

// generateBookingRef генерирует человекочитаемый код бронирования
// Формат: APEX-<unix millis в base36><4 случайных символа>, например "APEX-LX3F9A2B"
// Временная часть делает коды монотонными, случайный суффикс
// исключает коллизии при одновременном создании
func generateBookingRef(now time.Time) string {
	timePart := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	randomPart := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return bookingRefPrefix + timePart + randomPart
}
