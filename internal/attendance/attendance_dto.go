package attendance

type MarkAttendanceRequest struct {
	Employee string `json:"employee" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Status   string `json:"status" binding:"required"`
}

type AttendanceResponse struct {
	ID           string `json:"id"`
	Employee     string `json:"employee"`
	EmployeeCode string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type EmployeeAttendanceResponse struct {
	Attendance       []AttendanceResponse `json:"attendance"`
	TotalPresentDays int64                `json:"total_present_days"`
}
