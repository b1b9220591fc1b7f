// Логирование HTTP-запросов
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-student-crud/internal/shared/logger"
)

// RequestIDHeader — заголовок с id запроса. Если клиент его не прислал,
// генерируем uuid.
const RequestIDHeader = "X-Request-ID"

const requestIDKey ctxKey = "request_id"

// RequestIDFromContext возвращает id текущего запроса или пустую строку.
func RequestIDFromContext(ctx context.Context) string {
	s, _ := ctx.Value(requestIDKey).(string)
	return s
}

type ResponseWriter struct {
	http.ResponseWriter
	Status int
	Size   int
}

func (w *ResponseWriter) WriteHeader(Status int) {
	w.Status = Status
	w.ResponseWriter.WriteHeader(Status)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if w.Status == 0 {
		w.Status = http.StatusOK
	}
	Size, err := w.ResponseWriter.Write(b)
	w.Size += Size
	return Size, err
}

// LoggerMiddleware пишет в лог каждый запрос и проставляет X-Request-ID.
func LoggerMiddleware(log *logger.HTTPLogger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" || len(reqID) > 128 {
				reqID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, reqID)
			ctx := context.WithValue(r.Context(), requestIDKey, reqID)

			wr := &ResponseWriter{ResponseWriter: w}
			next.ServeHTTP(wr, r.WithContext(ctx))

			if wr.Status == 0 {
				wr.Status = http.StatusOK
			}
			duration := time.Since(start).Seconds() * 1000
			log.LogRequest(reqID, r.Method, r.RequestURI, wr.Status, wr.Size, duration)
		})
	}
}
