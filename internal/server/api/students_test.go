package api_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/api"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-student-crud/internal/shared/errors"
)

func studentsRouter(h *api.Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/students", h.ListStudents)
	r.Post("/api/students", h.CreateStudent)
	r.Put("/api/students/{id}", h.UpdateStudent)
	r.Delete("/api/students/{id}", h.DeleteStudent)
	return r
}

func TestHandler_ListStudents(t *testing.T) {
	h, d := newTestHandler(t)
	d.students.EXPECT().List(gomock.Any()).Return([]models.Student{{
		ID: 1, Name: "Bob", Email: "b@x.com", CourseID: 1,
		Course: &models.Course{ID: 1, Title: "Math"},
	}}, nil)

	rec := do(t, studentsRouter(h), http.MethodGet, "/api/students", nil, models.Identity{})

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t,
		`[{"id":1,"name":"Bob","email":"b@x.com","courseId":1,"course":{"id":1,"title":"Math","description":""}}]`,
		rec.Body.String())
}

func TestHandler_CreateStudent(t *testing.T) {
	body := map[string]any{"name": "Bob", "email": "b@x.com", "courseId": 1}

	t.Run("created", func(t *testing.T) {
		h, d := newTestHandler(t)
		d.courses.EXPECT().GetByID(gomock.Any(), int64(1)).Return(models.Course{ID: 1, Title: "Math"}, nil)
		d.students.EXPECT().Create(gomock.Any(), "Bob", "b@x.com", int64(1)).Return(int64(7), nil)

		rec := do(t, studentsRouter(h), http.MethodPost, "/api/students", body, admin)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.JSONEq(t,
			`{"id":7,"name":"Bob","email":"b@x.com","courseId":1,"course":{"id":1,"title":"Math","description":""}}`,
			rec.Body.String())
	})

	t.Run("course missing", func(t *testing.T) {
		h, d := newTestHandler(t)
		d.courses.EXPECT().GetByID(gomock.Any(), int64(999)).Return(models.Course{}, serr.ErrNotFound)

		rec := do(t, studentsRouter(h), http.MethodPost, "/api/students",
			map[string]any{"name": "Bob", "email": "b@x.com", "courseId": 999}, admin)

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.JSONEq(t, `{"error":"Курс с ID 999 не найден"}`, rec.Body.String())
	})

	t.Run("missing courseId", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := do(t, studentsRouter(h), http.MethodPost, "/api/students",
			map[string]any{"name": "", "email": "b@x.com"}, admin)

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.JSONEq(t, `{"error":"Курс с ID 0 не найден"}`, rec.Body.String())
	})

	t.Run("user forbidden", func(t *testing.T) {
		h, _ := newTestHandler(t)
		rec := do(t, studentsRouter(h), http.MethodPost, "/api/students", body, user)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHandler_UpdateStudent(t *testing.T) {
	bob := models.Student{ID: 1, Name: "Bob", Email: "b@x.com", CourseID: 1, Course: &models.Course{ID: 1, Title: "Math"}}

	t.Run("course missing", func(t *testing.T) {
		h, d := newTestHandler(t)
		d.students.EXPECT().GetByID(gomock.Any(), int64(1)).Return(bob, nil)
		d.courses.EXPECT().GetByID(gomock.Any(), int64(999)).Return(models.Course{}, serr.ErrNotFound)

		rec := do(t, studentsRouter(h), http.MethodPut, "/api/students/1",
			map[string]any{"name": "Bob", "email": "b@x.com", "courseId": 999}, admin)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("student missing", func(t *testing.T) {
		h, d := newTestHandler(t)
		d.students.EXPECT().GetByID(gomock.Any(), int64(5)).Return(models.Student{}, serr.ErrNotFound)

		rec := do(t, studentsRouter(h), http.MethodPut, "/api/students/5",
			map[string]any{"name": "Bob", "email": "b@x.com", "courseId": 1}, admin)

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.JSONEq(t, `{"error":"Студент не найден"}`, rec.Body.String())
	})
}

func TestHandler_DeleteStudent(t *testing.T) {
	h, d := newTestHandler(t)
	d.students.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil)

	rec := do(t, studentsRouter(h), http.MethodDelete, "/api/students/3", nil, admin)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, studentsRouter(h), http.MethodDelete, "/api/students/3", nil, models.Identity{})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
