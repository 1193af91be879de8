package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/praveensharma0809/planner-app/internal/dto"
	"github.com/praveensharma0809/planner-app/internal/model"
	"github.com/praveensharma0809/planner-app/internal/planner"
	"github.com/praveensharma0809/planner-app/internal/repository"
)

// ── 任务模块业务错误 ──

var (
	ErrTaskNotFound    = errors.New("任务不存在")
	ErrTaskInvalid     = errors.New("任务标题不能为空，时长必须不小于 1 分钟")
	ErrTaskDateInvalid = errors.New("任务日期格式无效")
	ErrTaskDateInPast  = errors.New("不能将任务安排在今天之前")
	ErrMonthInvalid    = errors.New("月份格式应为 YYYY-MM")
)

// TaskService 学习任务业务接口
type TaskService interface {
	Create(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	Complete(ctx context.Context, userID, id string) (*dto.TaskResponse, error)
	Uncomplete(ctx context.Context, userID, id string) (*dto.TaskResponse, error)
	Reschedule(ctx context.Context, userID, id string, req *dto.RescheduleTaskRequest) (*dto.TaskResponse, error)
	Backlog(ctx context.Context, userID string) ([]dto.TaskResponse, error)
	Week(ctx context.Context, userID string, weekOf string) ([]dto.TaskResponse, error)
	MonthCounts(ctx context.Context, userID string, month string) ([]dto.DayCountResponse, error)
}

type taskService struct {
	repo   *repository.Repository
	cal    calendar
	logger *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, cal calendar, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, cal: cal, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *taskService) Create(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.DurationMinutes < 1 {
		return nil, ErrTaskInvalid
	}
	date, ok := planner.ParseDate(req.ScheduledDate)
	if !ok {
		return nil, ErrTaskDateInvalid
	}

	subject, err := s.repo.Subject.GetByID(ctx, userID, req.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.String("id", req.SubjectID), zap.Error(err))
		return nil, err
	}

	task := &model.Task{
		UserID:          userID,
		SubjectID:       subject.SubjectID,
		Title:           title,
		ScheduledDate:   date,
		DurationMinutes: req.DurationMinutes,
		Priority:        subject.Priority,
	}
	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("创建任务失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	task.Subject = subject

	resp := toTaskResponse(task)
	return &resp, nil
}

// ────────────────────── Complete / Uncomplete ──────────────────────

func (s *taskService) Complete(ctx context.Context, userID, id string) (*dto.TaskResponse, error) {
	return s.setCompleted(ctx, userID, id, true)
}

func (s *taskService) Uncomplete(ctx context.Context, userID, id string) (*dto.TaskResponse, error) {
	return s.setCompleted(ctx, userID, id, false)
}

// setCompleted 幂等切换完成状态；状态确有变化时在同一事务内调整科目的已完成条目数
func (s *taskService) setCompleted(ctx context.Context, userID, id string, completed bool) (*dto.TaskResponse, error) {
	task, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var at *time.Time
	delta := -1
	if completed {
		now := s.cal.now()
		at = &now
		delta = 1
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		changed, err := txRepo.Task.SetCompleted(ctx, task, completed, at)
		if err != nil || !changed {
			return err
		}
		return txRepo.Subject.AdjustCompleted(ctx, userID, task.SubjectID, delta)
	})
	if err != nil {
		s.logger.Error("更新任务完成状态失败，事务回滚",
			zap.String("id", id),
			zap.Bool("completed", completed),
			zap.Error(err),
		)
		return nil, err
	}

	resp := toTaskResponse(task)
	return &resp, nil
}

// ────────────────────── Reschedule ──────────────────────

func (s *taskService) Reschedule(ctx context.Context, userID, id string, req *dto.RescheduleTaskRequest) (*dto.TaskResponse, error) {
	date, ok := planner.ParseDate(req.ScheduledDate)
	if !ok {
		return nil, ErrTaskDateInvalid
	}
	if date.Before(s.cal.today()) {
		return nil, ErrTaskDateInPast
	}

	task, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Task.Reschedule(ctx, userID, id, date); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("任务改期失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	task.ScheduledDate = date

	resp := toTaskResponse(task)
	return &resp, nil
}

// ────────────────────── 查询 ──────────────────────

// Backlog 今天之前未完成的任务
func (s *taskService) Backlog(ctx context.Context, userID string) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.ListBacklog(ctx, userID, s.cal.today())
	if err != nil {
		s.logger.Error("查询积压任务失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toTaskResponses(tasks), nil
}

// Week 包含 weekOf 的周一至周日的任务；weekOf 为空时取今天
func (s *taskService) Week(ctx context.Context, userID string, weekOf string) ([]dto.TaskResponse, error) {
	anchor := s.cal.today()
	if strings.TrimSpace(weekOf) != "" {
		d, ok := planner.ParseDate(weekOf)
		if !ok {
			return nil, ErrTaskDateInvalid
		}
		anchor = d
	}
	from, to := weekRange(anchor)

	tasks, err := s.repo.Task.ListByDateRange(ctx, userID, from, to)
	if err != nil {
		s.logger.Error("查询周任务失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toTaskResponses(tasks), nil
}

// MonthCounts 某月每天的任务总数与完成数（只返回有任务的日期）
func (s *taskService) MonthCounts(ctx context.Context, userID string, month string) ([]dto.DayCountResponse, error) {
	first, err := time.Parse("2006-01", strings.TrimSpace(month))
	if err != nil {
		return nil, ErrMonthInvalid
	}
	last := first.AddDate(0, 1, -1)

	counts, err := s.repo.Task.CountByDay(ctx, userID, first, last)
	if err != nil {
		s.logger.Error("统计月任务失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.DayCountResponse, 0, len(counts))
	for _, c := range counts {
		result = append(result, dto.DayCountResponse{
			Date:      planner.FormatDate(c.Date),
			Total:     c.Total,
			Completed: c.Completed,
		})
	}
	return result, nil
}

// ── 辅助函数 ──

func (s *taskService) load(ctx context.Context, userID, id string) (*model.Task, error) {
	task, err := s.repo.Task.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("查询任务失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return task, nil
}

// weekRange 返回 d 所在周的周一与周日
func weekRange(d time.Time) (time.Time, time.Time) {
	offset := (int(d.Weekday()) + 6) % 7 // 周一为 0
	monday := planner.AddDays(d, -offset)
	return monday, planner.AddDays(monday, 6)
}

func toTaskResponses(tasks []model.Task) []dto.TaskResponse {
	result := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, toTaskResponse(&tasks[i]))
	}
	return result
}

func toTaskResponse(task *model.Task) dto.TaskResponse {
	resp := dto.TaskResponse{
		ID:              task.TaskID,
		SubjectID:       task.SubjectID,
		Title:           task.Title,
		ScheduledDate:   planner.FormatDate(task.ScheduledDate),
		DurationMinutes: task.DurationMinutes,
		Priority:        task.Priority,
		Completed:       task.Completed,
		IsPlanGenerated: task.IsPlanGenerated,
	}
	if task.Subject != nil {
		resp.SubjectName = task.Subject.Name
	}
	if task.CompletedAt != nil {
		at := task.CompletedAt.UTC().Format(time.RFC3339)
		resp.CompletedAt = &at
	}
	return resp
}
