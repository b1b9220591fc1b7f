package service

import (
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-student-crud/internal/shared/errors"
)

// Authorize проверяет, что actor аутентифицирован и имеет роль required.
//
// Ошибки:
//   - ErrUnauthorized для анонимного вызова
//   - ErrForbidden если роль не та
func Authorize(actor models.Identity, required models.Role) error {
	if !actor.Authenticated() {
		return serr.ErrUnauthorized
	}
	if actor.Role != required {
		return serr.ErrForbidden
	}
	return nil
}
