package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-student-crud/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-student-crud/internal/shared/logger"
)

// CoursesService — бизнес-логика курсов. Мутации доступны только ADMIN.
type CoursesService struct {
	repo CoursesRepo
	log  *logger.HTTPLogger
}

func NewCoursesService(repo CoursesRepo, log *logger.HTTPLogger) *CoursesService {
	if log == nil {
		log = logger.NewNop()
	}
	return &CoursesService{repo: repo, log: log}
}

// List возвращает все курсы. Доступно всем.
func (s *CoursesService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Debug("courses fetched", zap.Int("count", len(courses)))
	return courses, nil
}

// Create создаёт курс.
//
// Ошибки:
//   - ErrUnauthorized / ErrForbidden
//   - ValidationError (ErrInvalidInput)
func (s *CoursesService) Create(ctx context.Context, actor models.Identity, title, description string) (models.Course, error) {
	if err := Authorize(actor, models.RoleAdmin); err != nil {
		return models.Course{}, err
	}
	if err := validateInput(courseInput{Title: title, Description: description}); err != nil {
		return models.Course{}, err
	}
	return s.repo.Create(ctx, title, description)
}

// Update перезаписывает title и description курса.
//
// Ошибки:
//   - ErrUnauthorized / ErrForbidden
//   - ValidationError (ErrInvalidInput)
//   - ErrNotFound если курса нет
func (s *CoursesService) Update(ctx context.Context, actor models.Identity, id int64, title, description string) (models.Course, error) {
	if err := Authorize(actor, models.RoleAdmin); err != nil {
		return models.Course{}, err
	}
	if err := validateInput(courseInput{Title: title, Description: description}); err != nil {
		return models.Course{}, err
	}

	c, err := s.repo.Update(ctx, models.Course{ID: id, Title: title, Description: description})
	if err != nil {
		return models.Course{}, courseErr(err)
	}
	return c, nil
}

// Delete удаляет курс.
//
// Ошибки:
//   - ErrUnauthorized / ErrForbidden
//   - ErrNotFound если курса нет
//   - ErrConflict если на курс записаны студенты
func (s *CoursesService) Delete(ctx context.Context, actor models.Identity, id int64) error {
	if err := Authorize(actor, models.RoleAdmin); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return courseErr(err)
	}
	return nil
}

func courseErr(err error) error {
	switch {
	case errors.Is(err, serr.ErrNotFound):
		return serr.WithMessage(serr.ErrNotFound, "Курс не найден")
	case errors.Is(err, serr.ErrConflict):
		return serr.WithMessage(serr.ErrConflict, "Курс используется студентами")
	default:
		return err
	}
}
