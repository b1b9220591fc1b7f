// Package http реализует маршрутизацию HTTP-слоя сервера.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - аутентификацию по Bearer-токену для всех путей, кроме /api/auth/*.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/api"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - recover от паники и middleware логирования для всех запросов;
//   - лимит тела запроса maxBodyBytes (0 — без лимита);
//   - аутентификацию (личность в контексте, права проверяют сервисы);
//   - публичные эндпоинты /api/auth/*;
//   - профиль, курсы и студентов под /api.
func NewRouter(h *api.Handler, maxBodyBytes int64) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	if maxBodyBytes > 0 {
		r.Use(chimw.RequestSize(maxBodyBytes))
	}

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		if h.Auth != nil {
			r.Use(h.Auth.Middleware())
		}

		// Публичные пути
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		r.Get("/profile/me", h.Me)

		// чтение открыто всем, изменения — только ADMIN (проверяет сервис)
		r.Route("/courses", func(r chi.Router) {
			r.Get("/", h.ListCourses)
			r.Post("/", h.CreateCourse)
			r.Put("/{id}", h.UpdateCourse)
			r.Delete("/{id}", h.DeleteCourse)
		})
		r.Route("/students", func(r chi.Router) {
			r.Get("/", h.ListStudents)
			r.Post("/", h.CreateStudent)
			r.Put("/{id}", h.UpdateStudent)
			r.Delete("/{id}", h.DeleteStudent)
		})
	})

	return r
}
