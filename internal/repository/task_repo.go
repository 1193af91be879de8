package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/praveensharma0809/planner-app/internal/model"
)

// DayCount 某日任务统计
type DayCount struct {
	Date      time.Time
	Total     int
	Completed int
}

// TaskRepository 学习任务数据访问接口
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, userID, id string) (*model.Task, error)
	SetCompleted(ctx context.Context, task *model.Task, completed bool, at *time.Time) (bool, error)
	Reschedule(ctx context.Context, userID, id string, date time.Time) error
	DeleteBySubject(ctx context.Context, userID, subjectID string) (int64, error)
	ReplacePlanGenerated(ctx context.Context, userID string, from time.Time, tasks []model.Task) (int64, error)
	ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]model.Task, error)
	ListFrom(ctx context.Context, userID string, from time.Time) ([]model.Task, error)
	ListBacklog(ctx context.Context, userID string, before time.Time) ([]model.Task, error)
	CountByDay(ctx context.Context, userID string, from, to time.Time) ([]DayCount, error)
}

type taskRepo struct {
	db *gorm.DB
}

func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) GetByID(ctx context.Context, userID, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// SetCompleted 仅当完成状态发生变化时才更新，返回是否发生了变化
func (r *taskRepo) SetCompleted(ctx context.Context, task *model.Task, completed bool, at *time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("task_id = ? AND user_id = ? AND completed = ?", task.TaskID, task.UserID, !completed).
		Updates(map[string]interface{}{
			"completed":    completed,
			"completed_at": at,
			"updated_at":   gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	task.Completed = completed
	task.CompletedAt = at
	return true, nil
}

// DeleteBySubject 删除某科目的全部任务（科目为软删除，外键级联不会触发）
func (r *taskRepo) DeleteBySubject(ctx context.Context, userID, subjectID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		Delete(&model.Task{})
	return result.RowsAffected, result.Error
}

func (r *taskRepo) Reschedule(ctx context.Context, userID, id string, date time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("task_id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"scheduled_date": date,
			"updated_at":     gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplacePlanGenerated 在一个事务内删除 from 及之后的计划生成任务并写入新任务，
// 手动创建的任务与 from 之前的历史任务不受影响。返回删除的任务数。
func (r *taskRepo) ReplacePlanGenerated(ctx context.Context, userID string, from time.Time, tasks []model.Task) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND is_plan_generated = ? AND scheduled_date >= ?", userID, true, from).
			Delete(&model.Task{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected

		if len(tasks) == 0 {
			return nil
		}
		return tx.CreateInBatches(&tasks, 500).Error
	})
	return deleted, err
}

func (r *taskRepo) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("user_id = ? AND scheduled_date BETWEEN ? AND ?", userID, from, to).
		Order("scheduled_date ASC, priority ASC, created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) ListFrom(ctx context.Context, userID string, from time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("user_id = ? AND scheduled_date >= ?", userID, from).
		Order("scheduled_date ASC, priority ASC, created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) ListBacklog(ctx context.Context, userID string, before time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("user_id = ? AND completed = ? AND scheduled_date < ?", userID, false, before).
		Order("scheduled_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) CountByDay(ctx context.Context, userID string, from, to time.Time) ([]DayCount, error) {
	var counts []DayCount
	err := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Select("scheduled_date AS date, COUNT(*) AS total, COUNT(*) FILTER (WHERE completed) AS completed").
		Where("user_id = ? AND scheduled_date BETWEEN ? AND ?", userID, from, to).
		Group("scheduled_date").
		Order("scheduled_date ASC").
		Scan(&counts).Error
	return counts, err
}
