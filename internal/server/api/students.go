package api

import (
	"net/http"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/middleware"
)

// StudentRequest тело запроса создания/обновления студента.
//
// При обновлении email обязателен, но не меняется.
type StudentRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	CourseID int64  `json:"courseId"`
}

// ListStudents возвращает всех студентов вместе с курсами.
//
// @Summary      List students
// @Tags         students
// @Produce      json
// @Success      200 {array}  models.Student
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/students [get]
func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.Svc.Students.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

// CreateStudent записывает студента на курс. Только ADMIN.
//
// @Summary      Create student
// @Tags         students
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body StudentRequest true "Student"
// @Success      201 {object} models.Student
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      403 {object} ErrorResponse "Forbidden"
// @Failure      404 {object} ErrorResponse "Course not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/students [post]
func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req StudentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	student, err := h.Svc.Students.Create(r.Context(), middleware.IdentityFromContext(r.Context()), req.Name, req.Email, req.CourseID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, student)
}

// UpdateStudent меняет имя и курс студента. Только ADMIN.
//
// @Summary      Update student
// @Description  Overwrites name and course. Email is required but not updated.
// @Tags         students
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int            true "Student ID"
// @Param        request body StudentRequest true "Student"
// @Success      200 {object} models.Student
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      403 {object} ErrorResponse "Forbidden"
// @Failure      404 {object} ErrorResponse "Student or course not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/students/{id} [put]
func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	var req StudentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	student, err := h.Svc.Students.Update(r.Context(), middleware.IdentityFromContext(r.Context()), id, req.Name, req.Email, req.CourseID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, student)
}

// DeleteStudent удаляет студента. Только ADMIN.
//
// @Summary      Delete student
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Student ID"
// @Success      204
// @Failure      400 {object} ErrorResponse "Invalid id"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      403 {object} ErrorResponse "Forbidden"
// @Failure      404 {object} ErrorResponse "Student not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/students/{id} [delete]
func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if err := h.Svc.Students.Delete(r.Context(), middleware.IdentityFromContext(r.Context()), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
