package apperrors

import "fmt"

var (
	// Токены и сессия
	ErrTokenExpired    = fmt.Errorf("срок действия токена истёк")
	ErrTokenNotFound   = fmt.Errorf("токен не найден")
	ErrSessionExpired  = fmt.Errorf("сессия истекла, требуется повторный вход")
	ErrNotAuthorized   = fmt.Errorf("неавторизован")
	ErrRefreshRejected = fmt.Errorf("не удалось обновить токен")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")
	ErrForbidden  = fmt.Errorf("доступ запрещён")
)

// ApiError — ошибка, пришедшая от бэкенда: HTTP-статус, сообщение
// и (если бэкенд их вернул) ошибки по отдельным полям.
type ApiError struct {
	Status      int
	Message     string
	Cause       error
	FieldErrors map[string]string
}

func (e *ApiError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("ошибка API, статус %d", e.Status)
}

func (e *ApiError) Unwrap() error { return e.Cause }

func NewApiError(status int, message string, cause error, fields map[string]string) *ApiError {
	return &ApiError{
		Status:      status,
		Message:     message,
		Cause:       cause,
		FieldErrors: fields,
	}
}

// ValidationError — ошибки валидации, пойманные до сетевого вызова.
// Показываются рядом с полями формы, сетевой запрос не выполняется.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	for field, msg := range e.Fields {
		return fmt.Sprintf("%s: %s", field, msg)
	}
	return "ошибка валидации"
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
