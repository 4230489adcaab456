package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
)

const (
	// HeaderUserID заголовок с ID пользователя, проставляется шлюзом аутентификации
	HeaderUserID = "X-User-ID"

	// HeaderUserRole заголовок с ролью пользователя
	HeaderUserRole = "X-User-Role"

	// RoleAdmin роль администратора
	RoleAdmin = "admin"
)

const (
	msgUnauthorized = "требуется аутентификация"
	msgForbidden    = "доступ запрещен"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth извлекает идентификацию пользователя из доверенных заголовков
// Аутентификация выполняется внешним шлюзом, сервис доверяет X-User-ID
func Auth(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawUserID := r.Header.Get(HeaderUserID)
			if rawUserID == "" {
				log.Warn("%s %s - missing %s header", r.Method, r.URL.Path, HeaderUserID)
				handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			userID, err := strconv.ParseInt(rawUserID, 10, 64)
			if err != nil || userID <= 0 {
				log.Warn("%s %s - invalid %s header: %s", r.Method, r.URL.Path, HeaderUserID, rawUserID)
				handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, userRoleKey, r.Header.Get(HeaderUserRole))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly пропускает только запросы с ролью администратора
// Должен стоять после Auth в цепочке
func AdminOnly(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAdmin(r.Context()) {
				log.Warn("%s %s - admin access denied for user=%d", r.Method, r.URL.Path, UserID(r.Context()))
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserID возвращает ID пользователя из контекста запроса
// Ноль означает отсутствие аутентификации
func UserID(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDKey).(int64); ok {
		return id
	}
	return 0
}

// IsAdmin возвращает true, если запрос выполнен администратором
func IsAdmin(ctx context.Context) bool {
	role, ok := ctx.Value(userRoleKey).(string)
	return ok && role == RoleAdmin
}
