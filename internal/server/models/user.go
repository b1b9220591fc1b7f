// Серверные модели пользователя, курса и студента
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role — роль пользователя. Хранится в users.role и в claim "role" токена.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid сообщает, известна ли роль серверу.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Identity — аутентифицированная личность в рамках одного запроса.
//
// Нулевое значение означает анонимный запрос.
type Identity struct {
	Email string
	Role  Role
}

// Authenticated возвращает true, если запрос пришёл с валидным токеном.
func (i Identity) Authenticated() bool {
	return i.Email != ""
}
