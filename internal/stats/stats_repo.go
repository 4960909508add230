package stats

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=stats_repo.go -destination=mock/stats_repo_mock.go -package=mock
type Repository interface {
	CountEmployees(ctx context.Context) (int64, error)
	CountAttendance(ctx context.Context) (int64, error)
	CountAttendanceByDateAndStatus(ctx context.Context, date time.Time, status string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountEmployees(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Count(&count).Error
	return count, err
}

func (r *repository) CountAttendance(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("attendances").
		Count(&count).Error
	return count, err
}

func (r *repository) CountAttendanceByDateAndStatus(ctx context.Context, date time.Time, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("attendances").
		Where("attendance_date = ?", date.Format("2006-01-02")).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
