package api

import (
	"net/http"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/middleware"
)

// CourseRequest тело запроса создания/обновления курса.
type CourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ListCourses возвращает все курсы.
//
// @Summary      List courses
// @Tags         courses
// @Produce      json
// @Success      200 {array}  models.Course
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/courses [get]
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.Svc.Courses.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// CreateCourse создаёт курс. Только ADMIN.
//
// @Summary      Create course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CourseRequest true "Course"
// @Success      201 {object} models.Course
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      403 {object} ErrorResponse "Forbidden"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/courses [post]
func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req CourseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	course, err := h.Svc.Courses.Create(r.Context(), middleware.IdentityFromContext(r.Context()), req.Title, req.Description)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, course)
}

// UpdateCourse перезаписывает курс. Только ADMIN.
//
// @Summary      Update course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int           true "Course ID"
// @Param        request body CourseRequest true "Course"
// @Success      200 {object} models.Course
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      403 {object} ErrorResponse "Forbidden"
// @Failure      404 {object} ErrorResponse "Course not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/courses/{id} [put]
func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	var req CourseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	course, err := h.Svc.Courses.Update(r.Context(), middleware.IdentityFromContext(r.Context()), id, req.Title, req.Description)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// DeleteCourse удаляет курс. Только ADMIN.
//
// @Summary      Delete course
// @Description  Fails with 409 while students are enrolled in the course.
// @Tags         courses
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Course ID"
// @Success      204
// @Failure      400 {object} ErrorResponse "Invalid id"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      403 {object} ErrorResponse "Forbidden"
// @Failure      404 {object} ErrorResponse "Course not found"
// @Failure      409 {object} ErrorResponse "Course is in use"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/courses/{id} [delete]
func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if err := h.Svc.Courses.Delete(r.Context(), middleware.IdentityFromContext(r.Context()), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
