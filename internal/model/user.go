package model

import "time"

// DefaultDailyAvailableMinutes 新用户的默认每日学习时长
const DefaultDailyAvailableMinutes = 120

// User 用户表（含学习档案），对应 users
type User struct {
	UserID                string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email                 string     `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash          string     `gorm:"type:varchar(255);not null"                     json:"-"`
	FullName              string     `gorm:"type:varchar(100);not null"                     json:"full_name"`
	PrimaryExam           string     `gorm:"type:varchar(100);not null;default:''"          json:"primary_exam"`
	ExamDate              *time.Time `gorm:"type:date"                                      json:"exam_date,omitempty"`
	DailyAvailableMinutes int        `gorm:"not null;default:120"                           json:"daily_available_minutes"`
	Timestamps
}

// TableName 指定表名
func (User) TableName() string { return "users" }
