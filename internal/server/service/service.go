// Package service содержит бизнес-логику приложения (учёт студентов и курсов).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
//
// Личность вызывающего (models.Identity) передаётся в мутирующие методы явно,
// первым делом каждый из них вызывает Authorize.
package service

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . UsersRepo,CoursesRepo,StudentsRepo,TokenIssuer

import (
	"context"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/models"
	"github.com/IvanChernomyrdin/go-student-crud/internal/shared/logger"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users    UsersRepo
	Courses  CoursesRepo
	Students StudentsRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth     *AuthService
	Courses  *CoursesService
	Students *StudentsService
}

// NewServices собирает все сервисы приложения.
func NewServices(repos Repositories, hasher crypto.PasswordHasher, tokens TokenIssuer, log *logger.HTTPLogger) *Services {
	return &Services{
		Auth:     NewAuthService(repos.Users, hasher, tokens),
		Courses:  NewCoursesService(repos.Courses, log),
		Students: NewStudentsService(repos.Students, repos.Courses, log),
	}
}

// UsersRepo — репозиторий пользователей (нужен для auth/register/login/profile).
type UsersRepo interface {
	Create(ctx context.Context, email, passwordHash string, role models.Role) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

// CoursesRepo — репозиторий курсов.
type CoursesRepo interface {
	List(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id int64) (models.Course, error)
	Create(ctx context.Context, title, description string) (models.Course, error)
	Update(ctx context.Context, c models.Course) (models.Course, error)
	Delete(ctx context.Context, id int64) error
}

// StudentsRepo — репозиторий студентов.
type StudentsRepo interface {
	List(ctx context.Context) ([]models.Student, error)
	GetByID(ctx context.Context, id int64) (models.Student, error)
	Create(ctx context.Context, name, email string, courseID int64) (int64, error)
	Update(ctx context.Context, id int64, name string, courseID int64) error
	Delete(ctx context.Context, id int64) error
}

// TokenIssuer выпускает access-токены. Реализация — crypto.TokenService.
type TokenIssuer interface {
	Issue(subject string, role models.Role) (string, error)
}
