package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-student-crud/internal/shared/errors"
)

// CoursesRepository реализует доступ к таблице courses (PostgreSQL).
type CoursesRepository struct {
	db *sql.DB
}

func NewCoursesRepository(db *sql.DB) *CoursesRepository {
	return &CoursesRepository{db: db}
}

// List возвращает все курсы. Порядок — по id, но вызывающим на него
// полагаться не стоит.
func (r *CoursesRepository) List(ctx context.Context) ([]models.Course, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description FROM courses ORDER BY id`,
	)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description); err != nil {
			return nil, serr.ErrInternal
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}
	return courses, nil
}

// GetByID возвращает курс по id или ErrNotFound.
func (r *CoursesRepository) GetByID(ctx context.Context, id int64) (models.Course, error) {
	var c models.Course
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, description FROM courses WHERE id=$1`,
		id,
	).Scan(&c.ID, &c.Title, &c.Description)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Course{}, serr.ErrNotFound
		}
		return models.Course{}, serr.ErrInternal
	}
	return c, nil
}

// Create сохраняет новый курс и возвращает его с id.
func (r *CoursesRepository) Create(ctx context.Context, title, description string) (models.Course, error) {
	c := models.Course{Title: title, Description: description}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO courses (title, description)
		 VALUES ($1,$2)
		 RETURNING id`,
		title, description,
	).Scan(&c.ID)

	if err != nil {
		return models.Course{}, serr.ErrInternal
	}
	return c, nil
}

// Update перезаписывает title и description курса.
//
// Ошибки:
//   - ErrNotFound если курса с таким id нет
//   - ErrInternal при ошибке БД
func (r *CoursesRepository) Update(ctx context.Context, c models.Course) (models.Course, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE courses
		    SET title = $2,
		        description = $3
		  WHERE id = $1`,
		c.ID, c.Title, c.Description,
	)
	if err != nil {
		return models.Course{}, serr.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.Course{}, serr.ErrInternal
	}
	if n == 0 {
		return models.Course{}, serr.ErrNotFound
	}
	return c, nil
}

// Delete удаляет курс.
//
// Ошибки:
//   - ErrNotFound если курса нет
//   - ErrConflict если на курс ещё ссылаются студенты (FK RESTRICT)
//   - ErrInternal при других ошибках БД
func (r *CoursesRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return serr.ErrConflict
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
