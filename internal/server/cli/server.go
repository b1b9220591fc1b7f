package cli

import (
	"database/sql"
	"net/http"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/api"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/config"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/middleware"
	h "github.com/IvanChernomyrdin/go-student-crud/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/repository"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/service"
	"github.com/IvanChernomyrdin/go-student-crud/internal/shared/logger"
)

// NewPasswordHasher создаёт хэшер паролей по секции password конфига.
func NewPasswordHasher(cfg *config.Config) (crypto.PasswordHasher, error) {
	return crypto.NewPasswordHasher(cfg.Password.Hasher, cfg.Password.Bcrypt.Cost, crypto.Argon2Params{
		Time:      cfg.Password.Argon2.Time,
		MemoryKiB: cfg.Password.Argon2.MemoryKiB,
		Threads:   cfg.Password.Argon2.Threads,
		KeyLen:    cfg.Password.Argon2.KeyLen,
		SaltLen:   cfg.Password.Argon2.SaltLen,
	})
}

// NewHTTPServer собирает всё приложение поверх открытой базы:
// репозитории, сервисы, middleware, хендлеры, роутер и http.Server.
func NewHTTPServer(cfg *config.Config, db *sql.DB, log *logger.HTTPLogger) (*http.Server, error) {
	hasher, err := NewPasswordHasher(cfg)
	if err != nil {
		return nil, err
	}

	tokens := crypto.NewTokenService(crypto.JWTConfig{
		Issuer:     cfg.Auth.Issuer,
		SigningKey: cfg.Auth.JWT.SigningKey,
		TTL:        cfg.Auth.TokenTTL,
	})

	// создаём репы
	usersRepo := repository.NewUsersRepository(db)
	repos := service.Repositories{
		Users:    usersRepo,
		Courses:  repository.NewCoursesRepository(db),
		Students: repository.NewStudentsRepository(db),
	}
	// создаём сервисы
	svc := service.NewServices(repos, hasher, tokens, log)
	// аутентификация по токену
	auth := middleware.NewAuthenticator(tokens, usersRepo, log)
	// создаём хандлер
	handler := api.NewHandler(svc, log, auth)
	// создаём роутер
	router := h.NewRouter(handler, cfg.Server.MaxBodyBytes)

	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}, nil
}
