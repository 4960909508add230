package attendance

import (
	"errors"

	attendanceerrors "go-attendance/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// FK violation: employee dihapus di sela resolve dan upsert
		if pgErr.Code == "23503" {
			return attendanceerrors.ErrEmployeeNotFound
		}
	}

	return err
}
