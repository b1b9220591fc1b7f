// Package crypto содержит криптографические примитивы сервера:
//   - хэширование и проверку паролей (bcrypt, argon2id);
//   - выпуск и проверку подписанных JWT access-токенов (HS256).
package crypto

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/models"
)

var (
	// ErrTokenInvalid — токен битый, подпись не сходится, алгоритм не тот и т.п.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired — срок действия токена истёк.
	ErrTokenExpired = errors.New("token expired")
)

// JWTConfig описывает параметры генерации и проверки JWT.
type JWTConfig struct {
	// Issuer — значение поля iss. Пустая строка — не проверяется.
	Issuer string
	// SigningKey — секретный ключ для подписи токена (HS256).
	SigningKey string
	// TTL — срок жизни токена.
	TTL time.Duration
}

// Claims — claims access-токена: стандартные поля + роль пользователя.
// Subject содержит email.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет access-токены.
//
// Состояния не хранит, поэтому безопасен для параллельного использования.
type TokenService struct {
	cfg JWTConfig
	now func() time.Time
}

// TokenOption — опция TokenService.
type TokenOption func(*TokenService)

// WithClock подменяет источник времени (для тестов на истечение срока).
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService создаёт TokenService.
func NewTokenService(cfg JWTConfig, opts ...TokenOption) *TokenService {
	s := &TokenService{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue создаёт и подписывает токен для пользователя.
//
// Токен содержит:
//   - sub (email)
//   - role
//   - iss (Issuer)
//   - iat (IssuedAt)
//   - exp (ExpiresAt)
func (s *TokenService) Issue(subject string, role models.Role) (string, error) {
	now := s.now()

	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.SigningKey))
}

// Validate проверяет подпись, алгоритм, срок действия и issuer токена
// и возвращает личность, записанную в нём.
//
// Ошибки:
//   - ErrTokenExpired, если срок истёк
//   - ErrTokenInvalid во всех остальных случаях
func (s *TokenService) Validate(token string) (models.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Identity{}, ErrTokenInvalid
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	claims := &Claims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, ErrTokenExpired
		}
		return models.Identity{}, ErrTokenInvalid
	}

	email := strings.TrimSpace(claims.Subject)
	role := models.Role(claims.Role)
	if email == "" || !role.Valid() {
		return models.Identity{}, ErrTokenInvalid
	}

	return models.Identity{Email: email, Role: role}, nil
}
