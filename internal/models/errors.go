package models

import "net/http"

type ErrorKind string // Класс бизнес-ошибки

const (
	KindBadRequest   ErrorKind = "bad_request"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindInvalidState ErrorKind = "invalid_state"
	KindExpired      ErrorKind = "expired"
	KindInternal     ErrorKind = "internal"
)

// ErrorResponse описывает бизнес-ошибку с классом, кодом и сообщением.
type ErrorResponse struct {
	Kind       ErrorKind `json:"-"`
	StatusCode int       `json:"-"`
	Message    string    `json:"reason"`
}

// NewErrorResponse создает новую ошибку с классом, кодом и сообщением.
func NewErrorResponse(kind ErrorKind, statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		Kind:       kind,
		StatusCode: statusCode,
		Message:    message}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// BadRequest создает ошибку некорректного запроса.
func BadRequest(message string) *ErrorResponse {
	return NewErrorResponse(KindBadRequest, http.StatusBadRequest, message)
}

// Unauthorized создает ошибку аутентификации.
func Unauthorized(message string) *ErrorResponse {
	return NewErrorResponse(KindUnauthorized, http.StatusUnauthorized, message)
}

// Forbidden создает ошибку доступа: пользователь не владелец ресурса или не в той роли.
func Forbidden(message string) *ErrorResponse {
	return NewErrorResponse(KindForbidden, http.StatusForbidden, message)
}

// NotFound создает ошибку отсутствия сущности.
func NotFound(message string) *ErrorResponse {
	return NewErrorResponse(KindNotFound, http.StatusNotFound, message)
}

// Conflict создает ошибку нарушения уникальности.
func Conflict(message string) *ErrorResponse {
	return NewErrorResponse(KindConflict, http.StatusConflict, message)
}

// InvalidState создает ошибку недопустимого перехода статуса.
func InvalidState(message string) *ErrorResponse {
	return NewErrorResponse(KindInvalidState, http.StatusUnprocessableEntity, message)
}

// Expired создает ошибку истекшего срока.
func Expired(message string) *ErrorResponse {
	return NewErrorResponse(KindExpired, http.StatusUnprocessableEntity, message)
}

// Internal создает внутреннюю ошибку без деталей для клиента.
func Internal(message string) *ErrorResponse {
	return NewErrorResponse(KindInternal, http.StatusInternalServerError, message)
}

// IsKind сообщает, относится ли ошибка к указанному классу.
func IsKind(err error, kind ErrorKind) bool {
	if e, ok := err.(*ErrorResponse); ok {
		return e.Kind == kind
	}
	return false
}
