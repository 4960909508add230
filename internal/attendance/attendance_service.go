package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/stats"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Service interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (resp AttendanceResponse, created bool, err error)
	ListForEmployee(ctx context.Context, employeeID, dateFilter string) (EmployeeAttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		logger: l,
	}
}

func (s *service) Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, bool, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("mark attendance requested",
		zap.String("request_id", rid),
		zap.String("employee", req.Employee),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)

	if req.Status != StatusPresent && req.Status != StatusAbsent {
		return AttendanceResponse{}, false, attendanceerrors.ErrInvalidStatus
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return AttendanceResponse{}, false, attendanceerrors.ErrInvalidDate
	}
	employeeID, err := uuid.Parse(req.Employee)
	if err != nil {
		return AttendanceResponse{}, false, attendanceerrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark attendance begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ref, err := qtx.FindEmployeeRef(ctx, employeeID.String())
	if err != nil {
		return AttendanceResponse{}, false, mapRepositoryError(err)
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     employeeID,
		AttendanceDate: date,
		Status:         req.Status,
	}

	// Atomic upsert pada composite key; FK RESTRICT menutup race terhadap
	// delete employee yang lolos dari FindEmployeeRef di atas.
	created, err := qtx.Upsert(ctx, row)
	if err != nil {
		s.logger.Error("mark attendance upsert failed",
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID.String()),
			zap.Error(err),
		)
		return AttendanceResponse{}, false, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.AttendanceMarkedEvent{
			EventType:    "attendance_marked",
			RequestID:    rid,
			AttendanceID: row.ID.String(),
			EmployeeID:   employeeID.String(),
			Date:         req.Date,
			Status:       row.Status,
			Created:      created,
			OccurredAt:   time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return AttendanceResponse{}, false, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "attendance",
			AggregateID:   row.ID.String(),
			EventType:     event.EventType,
			Topic:         events.AttendanceMarkedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("mark attendance outbox persist failed",
				zap.String("attendance_id", row.ID.String()),
				zap.Error(err),
			)
			return AttendanceResponse{}, false, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("mark attendance commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, false, mapRepositoryError(err)
	}

	if s.rdb != nil {
		cacheKey := stats.DailyStatsKey(req.Date)
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate daily stats cache",
				zap.Error(err),
				zap.String("key", cacheKey),
			)
		}
	}

	s.logger.Info("mark attendance success",
		zap.String("request_id", rid),
		zap.String("attendance_id", row.ID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.String("date", req.Date),
		zap.Bool("created", created),
	)

	return mapToResponse(*row, ref), created, nil
}

func (s *service) ListForEmployee(ctx context.Context, employeeID, dateFilter string) (EmployeeAttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return EmployeeAttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	ref, err := s.repo.FindEmployeeRef(ctx, employeeID)
	if err != nil {
		return EmployeeAttendanceResponse{}, mapRepositoryError(err)
	}

	var rows []Attendance
	if dateFilter != "" {
		date, err := time.Parse(dateLayout, dateFilter)
		if err != nil {
			return EmployeeAttendanceResponse{}, attendanceerrors.ErrInvalidDate
		}
		rows, err = s.repo.FindByEmployeeAndDate(ctx, employeeID, date)
		if err != nil {
			return EmployeeAttendanceResponse{}, mapRepositoryError(err)
		}
	} else {
		rows, err = s.repo.FindAllByEmployee(ctx, employeeID)
		if err != nil {
			return EmployeeAttendanceResponse{}, mapRepositoryError(err)
		}
	}

	// total_present_days dihitung dari seluruh record employee, bukan dari
	// list yang sudah difilter tanggal.
	totalPresent, err := s.repo.CountPresentByEmployee(ctx, employeeID)
	if err != nil {
		return EmployeeAttendanceResponse{}, mapRepositoryError(err)
	}

	resp := EmployeeAttendanceResponse{
		Attendance:       make([]AttendanceResponse, len(rows)),
		TotalPresentDays: totalPresent,
	}
	for i, r := range rows {
		resp.Attendance[i] = mapToResponse(r, ref)
	}
	return resp, nil
}

func mapToResponse(a Attendance, ref *EmployeeRef) AttendanceResponse {
	resp := AttendanceResponse{
		ID:        a.ID.String(),
		Employee:  a.EmployeeID.String(),
		Date:      a.AttendanceDate.Format(dateLayout),
		Status:    a.Status,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if a.Employee != nil {
		resp.EmployeeCode = a.Employee.EmployeeCode
		resp.EmployeeName = a.Employee.FullName
	} else if ref != nil {
		resp.EmployeeCode = ref.EmployeeCode
		resp.EmployeeName = ref.FullName
	}
	return resp
}
