package model

import "time"

// OffDay 休息日表，对应 off_days，(user_id, date) 唯一
type OffDay struct {
	OffDayID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"off_day_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_off_days_user_date" json:"user_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:uq_off_days_user_date" json:"date"`
	Reason    string    `gorm:"type:varchar(200);not null;default:''"          json:"reason"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (OffDay) TableName() string { return "off_days" }
