package dto

// ── 认证模块响应 ──

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // Access Token 有效期（秒）
	User         UserResponse `json:"user"`
}

// ── 用户 / 档案响应 ──

// UserResponse 用户信息响应（脱敏，含学习档案）
type UserResponse struct {
	ID                    string  `json:"id"`
	Email                 string  `json:"email"`
	FullName              string  `json:"full_name"`
	PrimaryExam           string  `json:"primary_exam"`
	ExamDate              *string `json:"exam_date"`
	DailyAvailableMinutes int     `json:"daily_available_minutes"`
	CreatedAt             string  `json:"created_at"`
}

// ── 科目响应 ──

// SubjectResponse 科目信息响应
type SubjectResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	TotalItems         int    `json:"total_items"`
	CompletedItems     int    `json:"completed_items"`
	AvgDurationMinutes int    `json:"avg_duration_minutes"`
	Deadline           string `json:"deadline"`
	Priority           int    `json:"priority"`
	Mandatory          bool   `json:"mandatory"`
	Archived           bool   `json:"archived"`
	Version            int    `json:"version"`
}

// ── 休息日响应 ──

// OffDayResponse 休息日
type OffDayResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// ImportOffDaysResponse 日历导入结果
type ImportOffDaysResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// ── 任务响应 ──

// TaskResponse 学习任务
type TaskResponse struct {
	ID              string  `json:"id"`
	SubjectID       string  `json:"subject_id"`
	SubjectName     string  `json:"subject_name,omitempty"`
	Title           string  `json:"title"`
	ScheduledDate   string  `json:"scheduled_date"`
	DurationMinutes int     `json:"duration_minutes"`
	Priority        int     `json:"priority"`
	Completed       bool    `json:"completed"`
	CompletedAt     *string `json:"completed_at,omitempty"`
	IsPlanGenerated bool    `json:"is_plan_generated"`
}
