package model

import "time"

// Subject 科目表，对应 subjects
type Subject struct {
	SubjectID          string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	UserID             string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	Name               string    `gorm:"type:varchar(100);not null"                     json:"name"`
	TotalItems         int       `gorm:"not null"                                       json:"total_items"`
	CompletedItems     int       `gorm:"not null;default:0"                             json:"completed_items"`
	AvgDurationMinutes int       `gorm:"not null"                                       json:"avg_duration_minutes"`
	Deadline           time.Time `gorm:"type:date;not null"                             json:"deadline"`
	Priority           int       `gorm:"type:smallint;not null;default:3"               json:"priority"` // 1-5，1 最高
	Mandatory          bool      `gorm:"not null;default:false"                         json:"mandatory"`
	Archived           bool      `gorm:"not null;default:false"                         json:"archived"`
	VersionedModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }

// RemainingItems 剩余条目数（下限 0）
func (s *Subject) RemainingItems() int {
	if s.CompletedItems >= s.TotalItems {
		return 0
	}
	return s.TotalItems - s.CompletedItems
}
