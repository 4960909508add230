package attendance_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-attendance/internal/attendance"
	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"

	attendanceMock "go-attendance/internal/attendance/mock"
	kafkaMock "go-attendance/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service attendance.Service
	repo    *attendanceMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := attendanceMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := attendance.NewServiceWithOutbox(db, repo, outboxRepo, nil)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		outbox:  outboxRepo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func expectOutboxEvent(deps *serviceDeps, t *testing.T, wantCreated bool) {
	t.Helper()
	deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
	deps.outbox.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, ev kafka.OutboxEvent) error {
			assert.Equal(t, "attendance_marked", ev.EventType)
			assert.Equal(t, events.AttendanceMarkedTopic, ev.Topic)

			var payload events.AttendanceMarkedEvent
			assert.NoError(t, json.Unmarshal(ev.Payload, &payload))
			assert.Equal(t, wantCreated, payload.Created)
			return nil
		})
}

func TestAttendanceService_Mark(t *testing.T) {
	employeeID := uuid.New()
	ref := &attendance.EmployeeRef{ID: employeeID, EmployeeCode: "EMP001", FullName: "Jane Doe"}

	t.Run("first mark of the day inserts", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindEmployeeRef(gomock.Any(), employeeID.String()).
			Return(ref, nil)
		deps.repo.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, a *attendance.Attendance) (bool, error) {
				assert.Equal(t, employeeID, a.EmployeeID)
				assert.Equal(t, attendance.StatusPresent, a.Status)
				assert.Equal(t, "2026-01-15", a.AttendanceDate.Format("2006-01-02"))
				return true, nil
			})
		expectOutboxEvent(deps, t, true)

		resp, created, err := deps.service.Mark(context.Background(), attendance.MarkAttendanceRequest{
			Employee: employeeID.String(),
			Date:     "2026-01-15",
			Status:   attendance.StatusPresent,
		})

		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "2026-01-15", resp.Date)
		assert.Equal(t, attendance.StatusPresent, resp.Status)
		assert.Equal(t, "EMP001", resp.EmployeeCode)
		assert.Equal(t, "Jane Doe", resp.EmployeeName)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("re-mark overwrites status and keeps the original id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		existingID := uuid.New()

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindEmployeeRef(gomock.Any(), employeeID.String()).
			Return(ref, nil)
		deps.repo.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, a *attendance.Attendance) (bool, error) {
				// Konflik di composite key: id lama dipertahankan oleh RETURNING
				a.ID = existingID
				return false, nil
			})
		expectOutboxEvent(deps, t, false)

		resp, created, err := deps.service.Mark(context.Background(), attendance.MarkAttendanceRequest{
			Employee: employeeID.String(),
			Date:     "2026-01-15",
			Status:   attendance.StatusAbsent,
		})

		assert.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, existingID.String(), resp.ID)
		assert.Equal(t, attendance.StatusAbsent, resp.Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, _, err := deps.service.Mark(context.Background(), attendance.MarkAttendanceRequest{
			Employee: employeeID.String(),
			Date:     "2026-01-15",
			Status:   "present",
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidStatus)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid date", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, _, err := deps.service.Mark(context.Background(), attendance.MarkAttendanceRequest{
			Employee: employeeID.String(),
			Date:     "15-01-2026",
			Status:   attendance.StatusPresent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindEmployeeRef(gomock.Any(), employeeID.String()).
			Return(nil, gorm.ErrRecordNotFound)

		_, _, err := deps.service.Mark(context.Background(), attendance.MarkAttendanceRequest{
			Employee: employeeID.String(),
			Date:     "2026-01-15",
			Status:   attendance.StatusPresent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})

	t.Run("malformed employee id short-circuits to not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, _, err := deps.service.Mark(context.Background(), attendance.MarkAttendanceRequest{
			Employee: "not-a-uuid",
			Date:     "2026-01-15",
			Status:   attendance.StatusPresent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})

	t.Run("fk violation from concurrent delete maps to not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindEmployeeRef(gomock.Any(), employeeID.String()).
			Return(ref, nil)
		deps.repo.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			Return(false, &pgconn.PgError{Code: "23503", ConstraintName: "fk_attendances_employee"})

		_, _, err := deps.service.Mark(context.Background(), attendance.MarkAttendanceRequest{
			Employee: employeeID.String(),
			Date:     "2026-01-15",
			Status:   attendance.StatusPresent,
		})

		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})
}

func TestAttendanceService_ListForEmployee(t *testing.T) {
	employeeID := uuid.New()
	ref := &attendance.EmployeeRef{ID: employeeID, EmployeeCode: "EMP001", FullName: "Jane Doe"}

	day := func(s string) time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return d
	}

	t.Run("full history without filter", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		rows := []attendance.Attendance{
			{ID: uuid.New(), EmployeeID: employeeID, AttendanceDate: day("2026-01-14"), Status: attendance.StatusPresent},
			{ID: uuid.New(), EmployeeID: employeeID, AttendanceDate: day("2026-01-15"), Status: attendance.StatusAbsent},
		}

		deps.repo.EXPECT().FindEmployeeRef(gomock.Any(), employeeID.String()).Return(ref, nil)
		deps.repo.EXPECT().FindAllByEmployee(gomock.Any(), employeeID.String()).Return(rows, nil)
		deps.repo.EXPECT().CountPresentByEmployee(gomock.Any(), employeeID.String()).Return(int64(1), nil)

		resp, err := deps.service.ListForEmployee(context.Background(), employeeID.String(), "")

		assert.NoError(t, err)
		assert.Len(t, resp.Attendance, 2)
		assert.Equal(t, "2026-01-14", resp.Attendance[0].Date)
		assert.Equal(t, int64(1), resp.TotalPresentDays)
		assert.Equal(t, "EMP001", resp.Attendance[0].EmployeeCode)
	})

	t.Run("date filter narrows the list but not total_present_days", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		rows := []attendance.Attendance{
			{ID: uuid.New(), EmployeeID: employeeID, AttendanceDate: day("2026-01-15"), Status: attendance.StatusAbsent},
		}

		deps.repo.EXPECT().FindEmployeeRef(gomock.Any(), employeeID.String()).Return(ref, nil)
		deps.repo.EXPECT().
			FindByEmployeeAndDate(gomock.Any(), employeeID.String(), day("2026-01-15")).
			Return(rows, nil)
		deps.repo.EXPECT().CountPresentByEmployee(gomock.Any(), employeeID.String()).Return(int64(7), nil)

		resp, err := deps.service.ListForEmployee(context.Background(), employeeID.String(), "2026-01-15")

		assert.NoError(t, err)
		assert.Len(t, resp.Attendance, 1)
		assert.Equal(t, int64(7), resp.TotalPresentDays)
	})

	t.Run("no records yields empty array with zero total", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindEmployeeRef(gomock.Any(), employeeID.String()).Return(ref, nil)
		deps.repo.EXPECT().FindAllByEmployee(gomock.Any(), employeeID.String()).Return(nil, nil)
		deps.repo.EXPECT().CountPresentByEmployee(gomock.Any(), employeeID.String()).Return(int64(0), nil)

		resp, err := deps.service.ListForEmployee(context.Background(), employeeID.String(), "")

		assert.NoError(t, err)
		assert.NotNil(t, resp.Attendance)
		assert.Len(t, resp.Attendance, 0)
		assert.Equal(t, int64(0), resp.TotalPresentDays)
	})

	t.Run("invalid date filter", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindEmployeeRef(gomock.Any(), employeeID.String()).Return(ref, nil)

		_, err := deps.service.ListForEmployee(context.Background(), employeeID.String(), "January 15")
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindEmployeeRef(gomock.Any(), employeeID.String()).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.ListForEmployee(context.Background(), employeeID.String(), "")
		assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	})
}
