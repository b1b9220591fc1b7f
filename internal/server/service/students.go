package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-student-crud/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-student-crud/internal/shared/logger"
)

// StudentsService — бизнес-логика студентов. Мутации доступны только ADMIN.
//
// Студент всегда ссылается на существующий курс: курс проверяется до записи,
// а FK в БД закрывает гонку с удалением курса.
type StudentsService struct {
	students StudentsRepo
	courses  CoursesRepo
	log      *logger.HTTPLogger
}

func NewStudentsService(students StudentsRepo, courses CoursesRepo, log *logger.HTTPLogger) *StudentsService {
	if log == nil {
		log = logger.NewNop()
	}
	return &StudentsService{students: students, courses: courses, log: log}
}

// List возвращает всех студентов вместе с курсами. Доступно всем.
func (s *StudentsService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Debug("students fetched", zap.Int("count", len(students)))
	return students, nil
}

// Create записывает студента на курс courseID.
//
// Ошибки:
//   - ErrUnauthorized / ErrForbidden
//   - ErrNotFound если курса нет, независимо от остальных полей
//   - ValidationError (ErrInvalidInput)
func (s *StudentsService) Create(ctx context.Context, actor models.Identity, name, email string, courseID int64) (models.Student, error) {
	if err := Authorize(actor, models.RoleAdmin); err != nil {
		return models.Student{}, err
	}

	course, err := s.course(ctx, courseID)
	if err != nil {
		return models.Student{}, err
	}
	if err := validateInput(studentInput{Name: name, Email: email}); err != nil {
		return models.Student{}, err
	}

	id, err := s.students.Create(ctx, name, email, courseID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return models.Student{}, courseNotFound(courseID)
		}
		return models.Student{}, err
	}

	return models.Student{
		ID:       id,
		Name:     name,
		Email:    email,
		CourseID: course.ID,
		Course:   &course,
	}, nil
}

// Update меняет имя и курс студента. Email при обновлении не меняется,
// но в запросе обязателен.
//
// Ошибки:
//   - ErrUnauthorized / ErrForbidden
//   - ErrNotFound если нет студента или курса
//   - ValidationError (ErrInvalidInput)
func (s *StudentsService) Update(ctx context.Context, actor models.Identity, id int64, name, email string, courseID int64) (models.Student, error) {
	if err := Authorize(actor, models.RoleAdmin); err != nil {
		return models.Student{}, err
	}

	current, err := s.students.GetByID(ctx, id)
	if err != nil {
		return models.Student{}, studentErr(err)
	}

	course, err := s.course(ctx, courseID)
	if err != nil {
		return models.Student{}, err
	}
	if err := validateInput(studentInput{Name: name, Email: email}); err != nil {
		return models.Student{}, err
	}

	if err := s.students.Update(ctx, id, name, courseID); err != nil {
		return models.Student{}, studentErr(err)
	}

	return models.Student{
		ID:       id,
		Name:     name,
		Email:    current.Email,
		CourseID: course.ID,
		Course:   &course,
	}, nil
}

// Delete удаляет студента.
//
// Ошибки:
//   - ErrUnauthorized / ErrForbidden
//   - ErrNotFound если студента нет
func (s *StudentsService) Delete(ctx context.Context, actor models.Identity, id int64) error {
	if err := Authorize(actor, models.RoleAdmin); err != nil {
		return err
	}
	if err := s.students.Delete(ctx, id); err != nil {
		return studentErr(err)
	}
	return nil
}

// course находит курс или возвращает NotFound с id курса в сообщении.
// id <= 0 в БД не бывает, поэтому в репозиторий не ходим.
func (s *StudentsService) course(ctx context.Context, id int64) (models.Course, error) {
	if id <= 0 {
		return models.Course{}, courseNotFound(id)
	}
	c, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return models.Course{}, courseNotFound(id)
		}
		return models.Course{}, err
	}
	return c, nil
}

func courseNotFound(id int64) error {
	return serr.WithMessage(serr.ErrNotFound, "Курс с ID %d не найден", id)
}

func studentErr(err error) error {
	if errors.Is(err, serr.ErrNotFound) {
		return serr.WithMessage(serr.ErrNotFound, "Студент не найден")
	}
	return err
}
