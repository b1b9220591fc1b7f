// HTTP-хендлеры регистрации, логина и профиля
package api

import (
	"net/http"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/models"
	"github.com/IvanChernomyrdin/go-student-crud/internal/shared/utils"
)

// RegisterRequest описывает тело запроса регистрации пользователя.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest описывает тело запроса входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse ответ на вход. Ровно одно поле не null.
type LoginResponse struct {
	Token *string `json:"token"`
	Error *string `json:"error"`
}

// ProfileResponse профиль текущего пользователя.
type ProfileResponse struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// Register обрабатывает регистрацию пользователя.
//
// @Summary      Register user
// @Description  Creates a user with role USER. Does not log in.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Register request"
// @Success      201 {object} MessageResponse
// @Failure      400 {object} ErrorResponse "Invalid input, bad JSON or email already taken"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if _, err := h.Svc.Auth.Register(r.Context(), req.Email, req.Password); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{Message: "Пользователь зарегистрирован"})
}

// Login обрабатывает вход пользователя и выдачу токена.
//
// Неверный пароль — 200 с token: null и текстом в error.
//
// @Summary      Login
// @Description  Returns a signed access token. Wrong password yields {"token": null, "error": "..."}.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} ErrorResponse "Bad JSON"
// @Failure      404 {object} ErrorResponse "User not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	res, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token: utils.PtrOrNil(res.Token),
		Error: utils.PtrOrNil(res.Error),
	})
}

// Me возвращает профиль аутентифицированного пользователя.
//
// @Summary      Current user profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ProfileResponse
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "User not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/profile/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Svc.Auth.Profile(r.Context(), middleware.IdentityFromContext(r.Context()))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{Email: user.Email, Role: user.Role})
}
