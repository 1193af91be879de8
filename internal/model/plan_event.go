package model

import "time"

// 计划事件类型
const (
	PlanEventAnalyzed         = "analyzed"
	PlanEventCommitted        = "committed"
	PlanEventResolvedOverload = "resolved_overload"
)

// PlanEvent 计划事件表（纯审计日志），对应 plan_events
type PlanEvent struct {
	PlanEventID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"plan_event_id"`
	UserID      string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	EventType   string    `gorm:"type:varchar(30);not null"                      json:"event_type"`
	Mode        string    `gorm:"type:varchar(10);not null;default:''"           json:"mode"`
	Status      string    `gorm:"type:varchar(20);not null;default:''"           json:"status"`
	TaskCount   int       `gorm:"not null;default:0"                             json:"task_count"`
	Detail      string    `gorm:"type:text;not null;default:''"                  json:"detail"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (PlanEvent) TableName() string { return "plan_events" }
