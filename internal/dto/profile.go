package dto

// ── 学习档案 DTO ──

// UpdateProfileRequest 更新档案请求
type UpdateProfileRequest struct {
	FullName              string  `json:"full_name"               binding:"required,max=100"`
	PrimaryExam           string  `json:"primary_exam"            binding:"required,max=100"`
	ExamDate              *string `json:"exam_date"`
	DailyAvailableMinutes int     `json:"daily_available_minutes" binding:"required"`
}
