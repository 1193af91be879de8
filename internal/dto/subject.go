package dto

// ── 科目模块 DTO ──

// CreateSubjectRequest 创建科目请求
type CreateSubjectRequest struct {
	Name               string `json:"name"                 binding:"required,max=100"`
	TotalItems         int    `json:"total_items"          binding:"required"`
	AvgDurationMinutes int    `json:"avg_duration_minutes" binding:"required"`
	Deadline           string `json:"deadline"             binding:"required"`
	Priority           int    `json:"priority"`
	Mandatory          bool   `json:"mandatory"`
}

// UpdateSubjectRequest 更新科目请求（Version 用于乐观锁）
type UpdateSubjectRequest struct {
	Name               *string `json:"name"                 binding:"omitempty,max=100"`
	TotalItems         *int    `json:"total_items"`
	CompletedItems     *int    `json:"completed_items"`
	AvgDurationMinutes *int    `json:"avg_duration_minutes"`
	Deadline           *string `json:"deadline"`
	Priority           *int    `json:"priority"`
	Mandatory          *bool   `json:"mandatory"`
	Version            int     `json:"version"              binding:"required"`
}

// ListSubjectsRequest 科目列表查询参数
type ListSubjectsRequest struct {
	IncludeArchived bool `form:"include_archived"`
}
