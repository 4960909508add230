package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-attendance/internal/shared/apperror"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	dateLayout = "2006-01-02"

	DailyStatsKeyPrefix = "stats:daily:"

	// TTL pendek: batas staleness untuk perubahan jumlah employee; perubahan
	// attendance meng-invalidate key-nya sendiri lewat ledger.
	dailyStatsTTL = 30 * time.Second
)

func DailyStatsKey(date string) string {
	return DailyStatsKeyPrefix + date
}

var ErrInvalidDate = apperror.NewFieldError(
	apperror.CodeInvalidInput,
	http.StatusBadRequest,
	"date",
	"Enter a valid date in YYYY-MM-DD format.",
)

// Statuses dihitung lewat ledger; konstanta diduplikasi ringan di sini agar
// paket stats tetap murni read-side tanpa dependensi ke ledger.
const (
	statusPresent = "Present"
	statusAbsent  = "Absent"
)

type Service interface {
	StatsForDay(ctx context.Context, date string) (DailyStatsResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("stats.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stats.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// StatsForDay adalah agregasi read-only: tidak pernah memutasi store.
func (s *service) StatsForDay(ctx context.Context, date string) (DailyStatsResponse, error) {
	if date == "" {
		date = time.Now().UTC().Format(dateLayout)
	}
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return DailyStatsResponse{}, ErrInvalidDate
	}

	cacheKey := DailyStatsKey(date)

	// 1. Cek Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp DailyStatsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight: dashboard polling beramai-ramai cukup satu hitungan
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := s.compute(ctx, day)
		if err != nil {
			return nil, err
		}

		// 3. Simpan ke Redis
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, dailyStatsTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return DailyStatsResponse{}, err
	}

	return v.(DailyStatsResponse), nil
}

func (s *service) compute(ctx context.Context, day time.Time) (DailyStatsResponse, error) {
	totalEmployees, err := s.repo.CountEmployees(ctx)
	if err != nil {
		s.logger.Error("count employees failed", zap.Error(err))
		return DailyStatsResponse{}, err
	}

	totalRecords, err := s.repo.CountAttendance(ctx)
	if err != nil {
		s.logger.Error("count attendance failed", zap.Error(err))
		return DailyStatsResponse{}, err
	}

	present, err := s.repo.CountAttendanceByDateAndStatus(ctx, day, statusPresent)
	if err != nil {
		s.logger.Error("count present failed", zap.Error(err))
		return DailyStatsResponse{}, err
	}

	absent, err := s.repo.CountAttendanceByDateAndStatus(ctx, day, statusAbsent)
	if err != nil {
		s.logger.Error("count absent failed", zap.Error(err))
		return DailyStatsResponse{}, err
	}

	return DailyStatsResponse{
		TotalEmployees:         totalEmployees,
		TotalAttendanceRecords: totalRecords,
		TodayPresent:           present,
		TodayAbsent:            absent,
	}, nil
}
