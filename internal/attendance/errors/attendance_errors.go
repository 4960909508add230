package attendanceerrors

import (
	"go-attendance/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found.",
		http.StatusNotFound,
	)
	ErrInvalidDate = apperror.NewFieldError(
		apperror.CodeInvalidInput,
		http.StatusBadRequest,
		"date",
		"Enter a valid date in YYYY-MM-DD format.",
	)
	ErrInvalidStatus = apperror.NewFieldError(
		apperror.CodeInvalidInput,
		http.StatusBadRequest,
		"status",
		"Status must be either 'Present' or 'Absent'.",
	)
)
