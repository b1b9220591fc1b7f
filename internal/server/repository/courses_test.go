package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/models"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-student-crud/internal/shared/errors"
)

func newCoursesRepo(t *testing.T) (*repository.CoursesRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return repository.NewCoursesRepository(db), mock
}

func TestCoursesRepository_List_OK(t *testing.T) {
	repo, mock := newCoursesRepo(t)

	mock.ExpectQuery(`SELECT id, title, description FROM courses`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description"}).
			AddRow(int64(1), "Math", "algebra").
			AddRow(int64(2), "Physics", ""))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []models.Course{
		{ID: 1, Title: "Math", Description: "algebra"},
		{ID: 2, Title: "Physics", Description: ""},
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

// пустая таблица отдаёт пустой срез, а не nil (в JSON это [])
func TestCoursesRepository_List_Empty(t *testing.T) {
	repo, mock := newCoursesRepo(t)

	mock.ExpectQuery(`SELECT id, title, description FROM courses`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description"}))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestCoursesRepository_List_InternalError(t *testing.T) {
	repo, mock := newCoursesRepo(t)

	mock.ExpectQuery(`SELECT id, title, description FROM courses`).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.List(context.Background())
	require.ErrorIs(t, err, serr.ErrInternal)
}

func TestCoursesRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newCoursesRepo(t)

		mock.ExpectQuery(`SELECT id, title, description FROM courses WHERE id`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description"}).
				AddRow(int64(7), "Math", ""))

		got, err := repo.GetByID(context.Background(), 7)
		require.NoError(t, err)
		require.Equal(t, models.Course{ID: 7, Title: "Math"}, got)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newCoursesRepo(t)

		mock.ExpectQuery(`SELECT id, title, description FROM courses WHERE id`).
			WithArgs(int64(999)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 999)
		require.ErrorIs(t, err, serr.ErrNotFound)
	})
}

func TestCoursesRepository_Create_OK(t *testing.T) {
	repo, mock := newCoursesRepo(t)

	mock.ExpectQuery(`INSERT INTO courses`).
		WithArgs("Math", "algebra").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	got, err := repo.Create(context.Background(), "Math", "algebra")
	require.NoError(t, err)
	require.Equal(t, models.Course{ID: 1, Title: "Math", Description: "algebra"}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCoursesRepository_Create_InternalError(t *testing.T) {
	repo, mock := newCoursesRepo(t)

	mock.ExpectQuery(`INSERT INTO courses`).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.Create(context.Background(), "Math", "")
	require.ErrorIs(t, err, serr.ErrInternal)
}

func TestCoursesRepository_Update(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		repo, mock := newCoursesRepo(t)

		mock.ExpectExec(`UPDATE courses`).
			WithArgs(int64(1), "Math II", "calculus").
			WillReturnResult(sqlmock.NewResult(0, 1))

		got, err := repo.Update(context.Background(), models.Course{ID: 1, Title: "Math II", Description: "calculus"})
		require.NoError(t, err)
		require.Equal(t, "Math II", got.Title)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newCoursesRepo(t)

		mock.ExpectExec(`UPDATE courses`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.Update(context.Background(), models.Course{ID: 42, Title: "x"})
		require.ErrorIs(t, err, serr.ErrNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newCoursesRepo(t)

		mock.ExpectExec(`UPDATE courses`).
			WillReturnError(sql.ErrConnDone)

		_, err := repo.Update(context.Background(), models.Course{ID: 1, Title: "x"})
		require.ErrorIs(t, err, serr.ErrInternal)
	})
}

func TestCoursesRepository_Delete(t *testing.T) {
	cases := []struct {
		name    string
		prepare func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "ok",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM courses`).
					WithArgs(int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM courses`).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: serr.ErrNotFound,
		},
		{
			name: "used by students",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM courses`).
					WillReturnError(&pgconn.PgError{Code: "23503"})
			},
			wantErr: serr.ErrConflict,
		},
		{
			name: "db error",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM courses`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: serr.ErrInternal,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newCoursesRepo(t)
			tc.prepare(mock)

			err := repo.Delete(context.Background(), 1)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.wantErr)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
