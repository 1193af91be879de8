package dto

// ── 计划模块 DTO ──

// AnalyzePlanRequest 计划分析请求；Mode 为空时使用服务端默认模式
type AnalyzePlanRequest struct {
	Mode string `json:"mode" binding:"omitempty,oneof=strict auto"`
}

// 调整类型
const (
	AdjustmentExtendDeadline       = "extend_deadline"
	AdjustmentReduceItems          = "reduce_items"
	AdjustmentIncreaseDailyMinutes = "increase_daily_minutes"
)

// AdjustmentRequest 一次假设性调整
type AdjustmentRequest struct {
	Type          string `json:"type" binding:"required,oneof=extend_deadline reduce_items increase_daily_minutes"`
	SubjectID     string `json:"subject_id"`
	NewDeadline   string `json:"new_deadline"`
	NewTotalItems int    `json:"new_total_items"`
	DeltaMinutes  int    `json:"delta_minutes"`
}

// ResolvePlanRequest 调整后重新分析请求
type ResolvePlanRequest struct {
	Mode       string            `json:"mode"       binding:"omitempty,oneof=strict auto"`
	Adjustment AdjustmentRequest `json:"adjustment" binding:"required"`
}

// PlanTaskItem 待提交的计划任务
type PlanTaskItem struct {
	SubjectID       string `json:"subject_id"       binding:"required"`
	ScheduledDate   string `json:"scheduled_date"   binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
	Title           string `json:"title"            binding:"required,max=200"`
	Priority        int    `json:"priority"`
}

// CommitPlanRequest 提交计划请求
type CommitPlanRequest struct {
	Tasks []PlanTaskItem `json:"tasks" binding:"dive"`
}

// ── 响应 ──

// SuggestionsResponse 纠偏建议
type SuggestionsResponse struct {
	ExtendDeadlineDays     *int `json:"extend_deadline_days,omitempty"`
	ReduceItemsBy          *int `json:"reduce_items_by,omitempty"`
	IncreaseDailyMinutesBy *int `json:"increase_daily_minutes_by,omitempty"`
}

// FeasibilityResponse 单科可行性
// RequiredMinutesPerDay / CapacityGapMinutesPerDay 在可用天数为 0 时为 null（无穷大）
type FeasibilityResponse struct {
	SubjectID                string              `json:"subject_id"`
	Name                     string              `json:"name"`
	EffectiveDeadline        string              `json:"effective_deadline"`
	AvailableDays            int                 `json:"available_days"`
	TotalRemainingMinutes    int                 `json:"total_remaining_minutes"`
	RequiredMinutesPerDay    *float64            `json:"required_minutes_per_day"`
	CapacityGapMinutesPerDay *float64            `json:"capacity_gap_minutes_per_day"`
	Status                   string              `json:"status"`
	Suggestions              SuggestionsResponse `json:"suggestions"`
}

// OverloadResponse 可行性汇总
type OverloadResponse struct {
	Overload               bool                  `json:"overload"`
	BurnRate               float64               `json:"burn_rate"`
	CurrentCapacity        int                   `json:"current_capacity"`
	SuggestedCapacity      int                   `json:"suggested_capacity"`
	Subjects               []FeasibilityResponse `json:"subjects"`
	TotalRequiredMinPerDay float64               `json:"total_required_min_per_day"`
	AvailableMinPerDay     int                   `json:"available_min_per_day"`
	CapacityGapMinPerDay   float64               `json:"capacity_gap_min_per_day"`
	OverallStatus          string                `json:"overall_status"`
}

// ScheduledTaskResponse 排程产出的任务
type ScheduledTaskResponse struct {
	SubjectID       string `json:"subject_id"`
	ScheduledDate   string `json:"scheduled_date"`
	DurationMinutes int    `json:"duration_minutes"`
	Title           string `json:"title"`
	Priority        int    `json:"priority"`
}

// PlanResponse 计划分析结果
// Status 为 NO_SUBJECTS 时其余字段为空；OVERLOAD 时仅有 Overload
type PlanResponse struct {
	Status            string                  `json:"status"`
	Mode              string                  `json:"mode"`
	Today             string                  `json:"today"`
	Tasks             []ScheduledTaskResponse `json:"tasks,omitempty"`
	TaskCount         int                     `json:"task_count"`
	EffectiveCapacity int                     `json:"effective_capacity,omitempty"`
	Overload          *OverloadResponse       `json:"overload,omitempty"`
}

// CommitPlanResponse 提交结果
type CommitPlanResponse struct {
	Inserted int   `json:"inserted"`
	Replaced int64 `json:"replaced"`
	Skipped  int   `json:"skipped"` // 早于今天而被丢弃的任务数
}

// PlanEventResponse 计划事件
type PlanEventResponse struct {
	ID        string `json:"id"`
	EventType string `json:"event_type"`
	Mode      string `json:"mode,omitempty"`
	Status    string `json:"status,omitempty"`
	TaskCount int    `json:"task_count"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"created_at"`
}
