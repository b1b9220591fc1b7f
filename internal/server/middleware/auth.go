// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-student-crud/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-student-crud/internal/shared/logger"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// identityKey — ключ контекста, под которым хранится личность вызывающего.
const identityKey ctxKey = "identity"

// PublicPrefix — запросы под этим префиксом не аутентифицируются вовсе.
const PublicPrefix = "/api/auth/"

const bearerPrefix = "Bearer "

// TokenValidator проверяет access-токен. Реализация — crypto.TokenService.
type TokenValidator interface {
	Validate(token string) (models.Identity, error)
}

// UserLookup — поиск пользователя по email (repository.UsersRepository).
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

// Authenticator заполняет личность вызывающего по Bearer-токену.
//
// Авторизацией не занимается: без токена или с битым токеном запрос
// просто идёт дальше анонимным, права проверяет сервисный слой.
type Authenticator struct {
	tokens TokenValidator
	users  UserLookup
	log    *logger.HTTPLogger
}

// NewAuthenticator создаёт Authenticator.
func NewAuthenticator(tokens TokenValidator, users UserLookup, log *logger.HTTPLogger) *Authenticator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Authenticator{tokens: tokens, users: users, log: log}
}

// WithIdentity кладёт личность в контекст.
func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext извлекает личность вызывающего из контекста.
//
// Для анонимного запроса возвращает пустую Identity (Authenticated() == false).
func IdentityFromContext(ctx context.Context) models.Identity {
	id, _ := ctx.Value(identityKey).(models.Identity)
	return id
}

// Middleware возвращает HTTP middleware аутентификации.
//
// Middleware:
//   - пропускает пути под /api/auth/ без проверки
//   - ожидает заголовок Authorization: Bearer <token>
//   - невалидный или отсутствующий токен = анонимный запрос
//   - ищет пользователя по email из токена: нет такого — 404, ошибка БД — 500
//   - сохраняет models.Identity (email + роль из токена) в context.Context
func (a *Authenticator) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, PublicPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := ExtractBearer(r.Header.Get("Authorization"))
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := a.tokens.Validate(tokenStr)
			if err != nil {
				a.log.Debug("invalid bearer token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if _, err := a.users.GetByEmail(r.Context(), id.Email); err != nil {
				if errors.Is(err, serr.ErrNotFound) {
					writeError(w, http.StatusNotFound, "Пользователь не найден")
					return
				}
				a.log.Error("auth: user lookup failed", zap.Error(err))
				writeError(w, http.StatusInternalServerError, serr.ErrInternal.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат (префикс сравнивается побайтово):
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	token, ok := strings.CutPrefix(h, bearerPrefix)
	if !ok {
		return ""
	}
	return token
}

// writeError пишет ошибку в том же формате, что и api слой: {"error": "..."}.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
