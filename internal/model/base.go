package model

import (
	"time"

	"gorm.io/gorm"
)

// Timestamps 创建/更新时间，由数据库默认值与 GORM 自动维护
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// VersionedModel 科目等可被并发编辑的记录：软删除 + 乐观锁版本号
type VersionedModel struct {
	Timestamps
	DeletedAt gorm.DeletedAt `gorm:"index"              json:"deleted_at,omitempty"`
	Version   int            `gorm:"not null;default:1" json:"version"`
}

// NextVersion 返回更新成功后应写入的版本号
func (m VersionedModel) NextVersion() int { return m.Version + 1 }
