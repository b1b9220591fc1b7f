package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-student-crud/internal/shared/errors"
)

// UsersRepository хранит пользователей. Email уникален (unique index).
type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create сохраняет пользователя и возвращает его id.
//
// Ошибки:
//   - ErrAlreadyExists при нарушении уникальности email
//   - ErrInternal при других ошибках БД
func (r *UsersRepository) Create(ctx context.Context, email, passwordHash string, role models.Role) (uuid.UUID, error) {
	var id uuid.UUID

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash, role)
		 VALUES ($1,$2,$3)
		 RETURNING id`,
		email, passwordHash, string(role),
	).Scan(&id)

	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return uuid.Nil, serr.ErrAlreadyExists
		}
		return uuid.Nil, serr.ErrInternal
	}

	return id, nil
}

// GetByEmail ищет пользователя по email.
//
// Ошибки:
//   - ErrNotFound если пользователя нет
//   - ErrInternal при ошибке БД
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var (
		u    models.User
		role string
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, created_at FROM users WHERE email=$1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, serr.ErrInternal
	}

	u.Role = models.Role(role)
	return u, nil
}
