package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/praveensharma0809/planner-app/internal/model"
)

// PlanEventRepository 计划事件数据访问接口（只追加）
type PlanEventRepository interface {
	Create(ctx context.Context, event *model.PlanEvent) error
	ListRecent(ctx context.Context, userID string, limit int) ([]model.PlanEvent, error)
}

type planEventRepo struct {
	db *gorm.DB
}

func NewPlanEventRepo(db *gorm.DB) PlanEventRepository {
	return &planEventRepo{db: db}
}

func (r *planEventRepo) Create(ctx context.Context, event *model.PlanEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *planEventRepo) ListRecent(ctx context.Context, userID string, limit int) ([]model.PlanEvent, error) {
	var events []model.PlanEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
