package employeeerrors

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
	ErrEmployeeCodeExists = apperror.NewFieldError(
		apperror.CodeConflict,
		http.StatusConflict,
		"employee_id",
		"Employee with this ID already exists.",
	)
	ErrEmployeeEmailExists = apperror.NewFieldError(
		apperror.CodeConflict,
		http.StatusConflict,
		"email",
		"Employee with this email already exists.",
	)
	ErrEmployeeHasAttendance = apperror.New(
		apperror.CodeConflict,
		"Cannot delete an employee with existing attendance records.",
		http.StatusConflict,
	)
	ErrInvalidEmail = apperror.NewFieldError(
		apperror.CodeInvalidInput,
		http.StatusBadRequest,
		"email",
		"Enter a valid email address.",
	)
)
