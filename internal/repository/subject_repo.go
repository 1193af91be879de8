package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/praveensharma0809/planner-app/internal/model"
	pkgerrors "github.com/praveensharma0809/planner-app/pkg/errors"
)

// SubjectRepository 科目数据访问接口（所有查询均按 user_id 隔离）
type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, userID, id string) (*model.Subject, error)
	ListByUser(ctx context.Context, userID string, includeArchived bool) ([]model.Subject, error)
	CountOwned(ctx context.Context, userID string, ids []string) (int64, error)
	Update(ctx context.Context, subject *model.Subject) error
	SetArchived(ctx context.Context, userID, id string, archived bool) error
	AdjustCompleted(ctx context.Context, userID, id string, delta int) error
	Delete(ctx context.Context, userID, id string) error
}

type subjectRepo struct {
	db *gorm.DB
}

func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) Create(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepo) GetByID(ctx context.Context, userID, id string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("subject_id = ? AND user_id = ?", id, userID).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) ListByUser(ctx context.Context, userID string, includeArchived bool) ([]model.Subject, error) {
	var subjects []model.Subject
	db := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeArchived {
		db = db.Where("archived = ?", false)
	}
	err := db.Order("deadline ASC, created_at ASC").Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepo) CountOwned(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Subject{}).
		Where("user_id = ? AND subject_id IN ?", userID, ids).
		Count(&count).Error
	return count, err
}

// Update 乐观锁更新：version 不匹配时返回 ErrOptimisticLock
func (r *subjectRepo) Update(ctx context.Context, subject *model.Subject) error {
	oldVersion := subject.Version
	result := r.db.WithContext(ctx).
		Model(&model.Subject{}).
		Where("subject_id = ? AND user_id = ? AND version = ?", subject.SubjectID, subject.UserID, oldVersion).
		Updates(map[string]interface{}{
			"name":                 subject.Name,
			"total_items":          subject.TotalItems,
			"completed_items":      subject.CompletedItems,
			"avg_duration_minutes": subject.AvgDurationMinutes,
			"deadline":             subject.Deadline,
			"priority":             subject.Priority,
			"mandatory":            subject.Mandatory,
			"version":              subject.NextVersion(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	subject.Version = subject.NextVersion()
	return nil
}

func (r *subjectRepo) SetArchived(ctx context.Context, userID, id string, archived bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.Subject{}).
		Where("subject_id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"archived": archived,
			"version":  gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AdjustCompleted 原子增减已完成条目数，结果不小于 0
func (r *subjectRepo) AdjustCompleted(ctx context.Context, userID, id string, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&model.Subject{}).
		Where("subject_id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"completed_items": gorm.Expr("GREATEST(completed_items + ?, 0)", delta),
			"version":         gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *subjectRepo) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Where("subject_id = ? AND user_id = ?", id, userID).
		Delete(&model.Subject{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
