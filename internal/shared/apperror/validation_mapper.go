package apperror

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// employee_id -> Employee Id
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError menerjemahkan validator.ValidationErrors menjadi
// AppError dengan map field -> pesan, sesuai bentuk error di wire contract.
func MapValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make(map[string][]string, len(errs))
		for _, e := range errs {
			// e.Field() sudah berupa nama tag json karena RegisterTagNameFunc
			// didaftarkan di apperror.Init()
			name := e.Field()
			var msg string
			switch e.Tag() {
			case "required":
				msg = formatFieldName(name) + " is required."
			case "email":
				msg = "Enter a valid email address."
			default:
				msg = formatFieldName(name) + " is invalid."
			}
			fields[name] = append(fields[name], msg)
		}
		return &AppError{
			Code:       CodeInvalidInput,
			Message:    "Invalid input",
			HTTPStatus: http.StatusBadRequest,
			Fields:     fields,
		}
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
