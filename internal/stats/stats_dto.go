package stats

type DailyStatsResponse struct {
	TotalEmployees         int64 `json:"total_employees"`
	TotalAttendanceRecords int64 `json:"total_attendance_records"`
	TodayPresent           int64 `json:"today_present"`
	TodayAbsent            int64 `json:"today_absent"`
}
