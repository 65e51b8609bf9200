package errors

import (
	"errors"
	"net/http"
)

// HTTPError represents an error with an associated HTTP status code and a
// client-safe message.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Map translates a service error into an HTTPError. Unknown errors map to
// a generic 500 so internal error text never reaches clients.
func Map(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, "Email já cadastrado.")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, "Email ou senha incorretos.")
	case errors.Is(err, ErrReservationLimit):
		return NewHTTPError(http.StatusBadRequest, "Limite de 3 reservas ativas atingido.")
	case errors.Is(err, ErrAlreadyReserved):
		return NewHTTPError(http.StatusBadRequest, "Você já reservou este livro.")
	case errors.Is(err, ErrUnavailable):
		return NewHTTPError(http.StatusBadRequest, "Livro indisponível no momento.")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "Não encontrado.")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Erro interno do servidor.")
	}
}
