package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/praveensharma0809/planner-app/internal/model"
	pkgerrors "github.com/praveensharma0809/planner-app/pkg/errors"
)

// OffDayRepository 休息日数据访问接口
type OffDayRepository interface {
	Create(ctx context.Context, offDay *model.OffDay) error
	ListByUser(ctx context.Context, userID string) ([]model.OffDay, error)
	Delete(ctx context.Context, userID, id string) error
}

type offDayRepo struct {
	db *gorm.DB
}

func NewOffDayRepo(db *gorm.DB) OffDayRepository {
	return &offDayRepo{db: db}
}

// Create 同一用户同一日期重复时返回 ErrDuplicateKey
func (r *offDayRepo) Create(ctx context.Context, offDay *model.OffDay) error {
	err := r.db.WithContext(ctx).Create(offDay).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return pkgerrors.ErrDuplicateKey
	}
	return err
}

func (r *offDayRepo) ListByUser(ctx context.Context, userID string) ([]model.OffDay, error) {
	var offDays []model.OffDay
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&offDays).Error
	return offDays, err
}

func (r *offDayRepo) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Where("off_day_id = ? AND user_id = ?", id, userID).
		Delete(&model.OffDay{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
