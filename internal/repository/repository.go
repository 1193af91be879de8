package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User      UserRepository
	Subject   SubjectRepository
	Task      TaskRepository
	OffDay    OffDayRepository
	PlanEvent PlanEventRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:        db,
		User:      NewUserRepo(db),
		Subject:   NewSubjectRepo(db),
		Task:      NewTaskRepo(db),
		OffDay:    NewOffDayRepo(db),
		PlanEvent: NewPlanEventRepo(db),
	}
}

// WithTx 返回绑定到事务连接的 Repository 聚合
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Transaction 在同一事务中执行 fn，fn 返回错误或 panic 时整体回滚。
// 未绑定数据库连接时（单元测试注入的 mock 聚合）直接在当前聚合上执行。
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
