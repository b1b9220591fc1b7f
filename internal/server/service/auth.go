package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-student-crud/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-student-crud/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-student-crud/internal/shared/errors"
)

// Сообщение, которое клиент получает при неверном пароле.
const msgWrongPassword = "Неверный пароль"

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей (роль USER)
//   - создание администраторов (только из CLI)
//   - аутентификация (логин) и выпуск access токена
//   - профиль текущего пользователя
type AuthService struct {
	users  UsersRepo
	hasher crypto.PasswordHasher
	tokens TokenIssuer
}

// LoginResult — ответ на логин. Ровно одно из полей непустое.
//
// Неверный пароль — не ошибка: Token пустой, Error содержит текст для клиента.
type LoginResult struct {
	Token string
	Error string
}

// NewAuthService создаёт AuthService.
func NewAuthService(users UsersRepo, hasher crypto.PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register регистрирует нового пользователя с ролью USER.
//
// Валидация:
//   - email обязателен
//   - пароль длиной >= 6 символов
//
// Возвращает:
//   - id пользователя
//   - ValidationError (ErrInvalidInput) при некорректных данных
//   - ErrAlreadyExists если email уже зарегистрирован
func (s *AuthService) Register(ctx context.Context, email, password string) (uuid.UUID, error) {
	return s.registerWithRole(ctx, email, password, models.RoleUser)
}

// CreateAdmin создаёт пользователя с ролью ADMIN. Через HTTP не доступен.
func (s *AuthService) CreateAdmin(ctx context.Context, email, password string) (uuid.UUID, error) {
	return s.registerWithRole(ctx, email, password, models.RoleAdmin)
}

// registerWithRole — общая часть Register и CreateAdmin.
func (s *AuthService) registerWithRole(ctx context.Context, email, password string, role models.Role) (uuid.UUID, error) {
	if !role.Valid() {
		return uuid.Nil, serr.ErrInvalidInput
	}

	email = normalizeEmail(email)
	if err := validateInput(registerInput{Email: email, Password: password}); err != nil {
		return uuid.Nil, err
	}

	// email уже занят?
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return uuid.Nil, serr.WithMessage(serr.ErrAlreadyExists, "Email уже занят")
	case !errors.Is(err, serr.ErrNotFound):
		return uuid.Nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return uuid.Nil, serr.NewValidationError("Пароль слишком длинный")
		}
		return uuid.Nil, serr.ErrInternal
	}

	id, err := s.users.Create(ctx, email, hash, role)
	if err != nil {
		// проверку выше обогнала параллельная регистрация, сработал unique index
		if errors.Is(err, serr.ErrAlreadyExists) {
			return uuid.Nil, serr.WithMessage(serr.ErrAlreadyExists, "Email уже занят")
		}
		return uuid.Nil, err
	}
	return id, nil
}

// Login аутентифицирует пользователя и выдаёт access токен.
//
// Ошибки:
//   - ErrNotFound если пользователя с таким email нет
//
// Неверный пароль возвращается в LoginResult.Error без ошибки.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return LoginResult{}, serr.WithMessage(serr.ErrNotFound, "Пользователь не найден")
		}
		return LoginResult{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return LoginResult{Error: msgWrongPassword}, nil
	}

	token, err := s.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return LoginResult{}, serr.ErrInternal
	}
	return LoginResult{Token: token}, nil
}

// Profile возвращает сохранённого пользователя для actor.
//
// Ошибки:
//   - ErrUnauthorized для анонимного вызова
//   - ErrNotFound если пользователя уже нет
func (s *AuthService) Profile(ctx context.Context, actor models.Identity) (models.User, error) {
	if !actor.Authenticated() {
		return models.User{}, serr.ErrUnauthorized
	}

	user, err := s.users.GetByEmail(ctx, actor.Email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return models.User{}, serr.WithMessage(serr.ErrNotFound, "Пользователь не найден")
		}
		return models.User{}, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
