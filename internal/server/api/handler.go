// Package api реализует HTTP-слой сервера учёта студентов и курсов.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения;
//   - извлечение личности вызывающего из контекста и передачу её в сервисы.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-student-crud/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-student-crud/internal/shared/logger"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Auth: middleware аутентификации по Bearer-токену.
//
// Методы Handler используются роутером для обработки HTTP-запросов.
type Handler struct {
	Svc  *service.Services
	Log  *logger.HTTPLogger
	Auth *middleware.Authenticator
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, auth *middleware.Authenticator) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		Svc:  svc,
		Log:  log,
		Auth: auth,
	}
}

// ErrorResponse стандартный формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse ответ без данных, только сообщение.
type MessageResponse struct {
	Message string `json:"message"`
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{
		Error: err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON читает тело запроса в v.
//
// Ошибки:
//   - ErrBadJSON для битого JSON
//   - *http.MaxBytesError если тело больше лимита
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return tooLarge
		}
		return serr.ErrBadJSON
	}
	return nil
}

// pathID разбирает {id} из пути. id должен быть положительным числом.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, serr.WithMessage(serr.ErrInvalidInput, "некорректный id")
	}
	return id, nil
}

// writeServiceError маппит ошибку сервисного слоя в HTTP-ответ.
//
// Клиенту уходит текст доменной ошибки; всё, что не распознано,
// логируется и отдаётся как 500 без подробностей.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &tooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, errors.New("payload too large"))
	case errors.Is(err, serr.ErrBadJSON), errors.Is(err, serr.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err)
	case errors.Is(err, serr.ErrAlreadyExists):
		WriteError(w, http.StatusBadRequest, err)
	case errors.Is(err, serr.ErrNotFound):
		WriteError(w, http.StatusNotFound, err)
	case errors.Is(err, serr.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, err)
	case errors.Is(err, serr.ErrForbidden):
		WriteError(w, http.StatusForbidden, err)
	case errors.Is(err, serr.ErrConflict):
		WriteError(w, http.StatusConflict, err)
	default:
		h.Log.Error("request failed",
			zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.Error(err),
		)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
	}
}
