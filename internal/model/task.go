package model

import "time"

// Task 学习任务表，对应 tasks
// IsPlanGenerated 为 true 的任务由计划提交产生，重新提交时会被整体替换
type Task struct {
	TaskID          string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	UserID          string     `gorm:"type:uuid;not null;index:idx_tasks_user_date"   json:"user_id"`
	SubjectID       string     `gorm:"type:uuid;not null"                             json:"subject_id"`
	Title           string     `gorm:"type:varchar(200);not null"                     json:"title"`
	ScheduledDate   time.Time  `gorm:"type:date;not null;index:idx_tasks_user_date"   json:"scheduled_date"`
	DurationMinutes int        `gorm:"not null"                                       json:"duration_minutes"`
	Priority        int        `gorm:"type:smallint;not null;default:3"               json:"priority"`
	Completed       bool       `gorm:"not null;default:false"                         json:"completed"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	IsPlanGenerated bool       `gorm:"not null;default:false"                         json:"is_plan_generated"`
	Timestamps

	// 关联
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }
