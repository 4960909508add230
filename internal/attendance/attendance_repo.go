package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, a *Attendance) (created bool, err error)
	FindEmployeeRef(ctx context.Context, employeeID string) (*EmployeeRef, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Attendance, error)
	CountPresentByEmployee(ctx context.Context, employeeID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx mengikat seluruh statement repository ke transaksi milik caller,
// sehingga upsert attendance dan insert outbox commit/rollback bersama.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{Context: context.Background(), NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

type upsertRow struct {
	ID        uuid.UUID `gorm:"column:id"`
	Inserted  bool      `gorm:"column:inserted"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// Upsert menulis record attendance sebagai satu langkah atomik per composite
// key (employee_id, attendance_date). Raw SQL agar race antar Mark untuk key
// yang sama tidak pernah menghasilkan duplikat; row yang sudah ada hanya
// diganti statusnya dan id lamanya dipertahankan.
func (r *repository) Upsert(ctx context.Context, a *Attendance) (bool, error) {
	var row upsertRow
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO attendances (id, employee_id, attendance_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, now(), now())
		ON CONFLICT (employee_id, attendance_date) DO UPDATE
		SET status = EXCLUDED.status, updated_at = now()
		RETURNING id, (xmax = 0) AS inserted, created_at, updated_at
	`, a.ID, a.EmployeeID, a.AttendanceDate.Format("2006-01-02"), a.Status).Scan(&row).Error
	if err != nil {
		return false, err
	}

	a.ID = row.ID
	a.CreatedAt = row.CreatedAt
	a.UpdatedAt = row.UpdatedAt
	return row.Inserted, nil
}

func (r *repository) FindEmployeeRef(ctx context.Context, employeeID string) (*EmployeeRef, error) {
	var ref EmployeeRef
	err := r.db.WithContext(ctx).
		First(&ref, "id = ?", employeeID).Error
	return &ref, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

// CountPresentByEmployee menghitung hari Present di SELURUH record milik
// employee, terlepas dari date filter yang dipakai untuk listing.
func (r *repository) CountPresentByEmployee(ctx context.Context, employeeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusPresent).
		Count(&count).Error
	return count, err
}
