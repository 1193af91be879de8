package dto

// ── 看板模块 DTO ──

// SubjectProgressResponse 科目进度
type SubjectProgressResponse struct {
	SubjectID      string `json:"subject_id"`
	Name           string `json:"name"`
	TotalItems     int    `json:"total_items"`
	CompletedItems int    `json:"completed_items"`
	Percent        int    `json:"percent"`
	Deadline       string `json:"deadline"`
	DaysLeft       int    `json:"days_left"`
	Health         string `json:"health"` // overdue | at_risk | behind | on_track
}

// UpcomingDeadlineResponse 即将到期的科目
type UpcomingDeadlineResponse struct {
	SubjectID      string `json:"subject_id"`
	Name           string `json:"name"`
	Deadline       string `json:"deadline"`
	DaysLeft       int    `json:"days_left"`
	RemainingItems int    `json:"remaining_items"`
}
