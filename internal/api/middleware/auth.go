// Package middleware HTTP middleware сервиса
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

// StaffIDHeader заголовок с ID сотрудника, выставляется шлюзом после аутентификации
const StaffIDHeader = "X-Staff-ID"

const msgInvalidStaffID = "отсутствует или некорректен заголовок X-Staff-ID"

type contextKey string

const (
	staffIDKey   contextKey = "staff_id"
	requestIDKey contextKey = "request_id"
)

// Auth требует заголовок X-Staff-ID и кладет ID сотрудника в context
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.Header.Get(StaffIDHeader))

		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidStaffID)
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStaffID возвращает ID сотрудника из context
func GetStaffID(ctx context.Context) (int64, bool) {
	staffID, ok := ctx.Value(staffIDKey).(int64)
	return staffID, ok
}
