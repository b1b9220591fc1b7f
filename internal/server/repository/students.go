package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-student-crud/internal/shared/errors"
)

// StudentsRepository реализует доступ к таблице students (PostgreSQL).
//
// При чтении студент возвращается вместе с курсом (JOIN).
type StudentsRepository struct {
	db *sql.DB
}

func NewStudentsRepository(db *sql.DB) *StudentsRepository {
	return &StudentsRepository{db: db}
}

const selectStudents = `SELECT s.id, s.name, s.email, s.course_id, c.title, c.description
	  FROM students s
	  JOIN courses c ON c.id = s.course_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (models.Student, error) {
	var (
		s models.Student
		c models.Course
	)
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.CourseID, &c.Title, &c.Description); err != nil {
		return models.Student{}, err
	}
	c.ID = s.CourseID
	s.Course = &c
	return s, nil
}

// List возвращает всех студентов с их курсами.
func (r *StudentsRepository) List(ctx context.Context) ([]models.Student, error) {
	rows, err := r.db.QueryContext(ctx, selectStudents+` ORDER BY s.id`)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, serr.ErrInternal
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}
	return students, nil
}

// GetByID возвращает студента по id или ErrNotFound.
func (r *StudentsRepository) GetByID(ctx context.Context, id int64) (models.Student, error) {
	s, err := scanStudent(r.db.QueryRowContext(ctx, selectStudents+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Student{}, serr.ErrNotFound
		}
		return models.Student{}, serr.ErrInternal
	}
	return s, nil
}

// Create сохраняет студента и возвращает его id.
//
// Если курс успели удалить между проверкой в сервисе и вставкой,
// срабатывает FK и возвращается ErrNotFound.
func (r *StudentsRepository) Create(ctx context.Context, name, email string, courseID int64) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO students (name, email, course_id)
		 VALUES ($1,$2,$3)
		 RETURNING id`,
		name, email, courseID,
	).Scan(&id)

	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return 0, serr.ErrNotFound
		}
		return 0, serr.ErrInternal
	}
	return id, nil
}

// Update меняет имя и курс студента. Email не трогаем.
//
// Ошибки:
//   - ErrNotFound если студента нет или курс не существует (FK)
//   - ErrInternal при ошибке БД
func (r *StudentsRepository) Update(ctx context.Context, id int64, name string, courseID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE students
		    SET name = $2,
		        course_id = $3
		  WHERE id = $1`,
		id, name, courseID,
	)
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return serr.ErrNotFound
		}
		return serr.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		return serr.ErrInternal
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}

// Delete удаляет студента или возвращает ErrNotFound.
func (r *StudentsRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return serr.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		return serr.ErrInternal
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}
