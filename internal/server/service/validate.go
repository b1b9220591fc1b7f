package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	serr "github.com/IvanChernomyrdin/go-student-crud/internal/shared/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validator: %v", err))
	}
	return v
}

// Сообщения об ошибках валидации: "<Структура>.<Поле>.<тег>".
var validationMessages = map[string]string{
	"registerInput.Email.required": "Email обязателен",
	"registerInput.Password.min":   "Пароль должен содержать минимум 6 символов",
	"courseInput.Title.notblank":   "Название курса не может быть пустым",
	"courseInput.Title.max":        "Название курса не может превышать 255 символов",
	"courseInput.Description.max":  "Описание курса не может превышать 255 символов",
	"studentInput.Name.notblank":   "ФИО студента не может быть пустым",
	"studentInput.Name.max":        "ФИО студента не может превышать 255 символов",
	"studentInput.Email.required":  "Email студента не может быть пустым",
	"studentInput.Email.max":       "Email студента не может превышать 255 символов",
}

type registerInput struct {
	Email    string `validate:"required"`
	Password string `validate:"min=6"`
}

type courseInput struct {
	Title       string `validate:"notblank,max=255"`
	Description string `validate:"max=255"`
}

type studentInput struct {
	Name  string `validate:"notblank,max=255"`
	Email string `validate:"required,max=255"`
}

// validateInput проверяет структуру и собирает сообщения по всем полям
// в *serr.ValidationError.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return serr.ErrInternal
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := validationMessages[fe.StructNamespace()+"."+fe.Tag()]; ok {
			msgs = append(msgs, msg)
			continue
		}
		msgs = append(msgs, fmt.Sprintf("поле %s не прошло проверку %s", fe.Field(), fe.Tag()))
	}
	return serr.NewValidationError(msgs...)
}
