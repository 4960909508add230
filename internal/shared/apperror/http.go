package apperror

import (
	"errors"
	"net/http"
)

// HTTPError adalah bentuk final error setelah di-recover di boundary handler.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Fields  map[string][]string
}

// ToHTTP recovers any error into an HTTPError. Unknown errors collapse to a
// generic 500 so storage failures are never leaked raw to callers.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
			Fields:  appErr.Fields,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "An unexpected error occurred.",
	}
}
