package dto

// ── 任务模块 DTO ──

// CreateTaskRequest 手动创建任务请求
type CreateTaskRequest struct {
	SubjectID       string `json:"subject_id"       binding:"required"`
	Title           string `json:"title"            binding:"required,max=200"`
	ScheduledDate   string `json:"scheduled_date"   binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
}

// RescheduleTaskRequest 改期请求
type RescheduleTaskRequest struct {
	ScheduledDate string `json:"scheduled_date" binding:"required"`
}

// WeekQuery 周视图查询参数；WeekOf 为空时取今天
type WeekQuery struct {
	WeekOf string `form:"week_of"`
}

// MonthQuery 月视图查询参数（YYYY-MM）
type MonthQuery struct {
	Month string `form:"month" binding:"required"`
}

// DayCountResponse 某日任务统计
type DayCountResponse struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}
