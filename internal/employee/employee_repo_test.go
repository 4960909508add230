package employee_test

import (
	"context"
	"testing"

	"go-attendance/internal/employee"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormOverMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock, func() { db.Close() }
}

func TestEmployeeRepository_WithTx(t *testing.T) {
	t.Run("create rides the caller's transaction", func(t *testing.T) {
		gormDB, poolMock, cleanup := newGormOverMock(t)
		defer cleanup()

		txDB, txMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer txDB.Close()

		txMock.ExpectBegin()
		tx, err := txDB.Begin()
		assert.NoError(t, err)

		repo := employee.NewRepository(gormDB).WithTx(tx)

		txMock.ExpectExec(`INSERT INTO "employees"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Create(context.Background(), &employee.Employee{
			ID:           uuid.New(),
			EmployeeCode: "EMP001",
			FullName:     "Jane Doe",
			Email:        "jane@x.com",
			Department:   "Engineering",
		})
		assert.NoError(t, err)

		// Rollback membuang insert; koneksi pool gorm tidak pernah melihat
		// write apa pun.
		txMock.ExpectRollback()
		assert.NoError(t, tx.Rollback())

		assert.NoError(t, poolMock.ExpectationsWereMet())
		assert.NoError(t, txMock.ExpectationsWereMet())
	})

	t.Run("delete rides the caller's transaction", func(t *testing.T) {
		gormDB, poolMock, cleanup := newGormOverMock(t)
		defer cleanup()

		txDB, txMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer txDB.Close()

		txMock.ExpectBegin()
		tx, err := txDB.Begin()
		assert.NoError(t, err)

		repo := employee.NewRepository(gormDB).WithTx(tx)

		txMock.ExpectExec(`DELETE FROM "employees"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), uuid.New().String()))

		txMock.ExpectRollback()
		assert.NoError(t, tx.Rollback())

		assert.NoError(t, poolMock.ExpectationsWereMet())
		assert.NoError(t, txMock.ExpectationsWereMet())
	})
}
