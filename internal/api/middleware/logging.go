package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Logging пишет строку лога на каждый запрос
func Logging(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := wrap(w)

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			requestID := GetRequestID(r.Context())

			switch {
			case rw.statusCode >= http.StatusInternalServerError:
				log.Error("HTTP %s %s -> %d (%s) request_id=%s", r.Method, r.URL.Path, rw.statusCode, duration, requestID)
			case rw.statusCode >= http.StatusBadRequest:
				log.Warn("HTTP %s %s -> %d (%s) request_id=%s", r.Method, r.URL.Path, rw.statusCode, duration, requestID)
			default:
				log.Info("HTTP %s %s -> %d (%s) request_id=%s", r.Method, r.URL.Path, rw.statusCode, duration, requestID)
			}
		})
	}
}

// Recover превращает панику обработчика в 500
func Recover(log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					log.Error("HTTP %s %s - panic: %v request_id=%s", r.Method, r.URL.Path, p, GetRequestID(r.Context()))
					handlers.RespondInternalError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
