package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/praveensharma0809/planner-app/config"
	"github.com/praveensharma0809/planner-app/internal/dto"
	"github.com/praveensharma0809/planner-app/internal/model"
	"github.com/praveensharma0809/planner-app/internal/planner"
	"github.com/praveensharma0809/planner-app/internal/repository"
)

// ── 科目模块业务错误 ──

var (
	ErrSubjectNotFound     = errors.New("科目不存在")
	ErrSubjectNameRequired = errors.New("科目名称不能为空")
	ErrSubjectItemsInvalid = errors.New("总条目数与单条时长必须不小于 1")
	ErrSubjectProgress     = errors.New("已完成条目数必须在 0 到总条目数之间")
	ErrDeadlineInvalid     = errors.New("截止日期格式无效")
	ErrDeadlineTooFar      = errors.New("截止日期超出允许的排程范围")
	ErrPriorityInvalid     = errors.New("优先级必须在 1-5 之间")
)

const defaultPriority = 3

// SubjectService 科目业务接口
type SubjectService interface {
	List(ctx context.Context, userID string, includeArchived bool) ([]dto.SubjectResponse, error)
	Get(ctx context.Context, userID, id string) (*dto.SubjectResponse, error)
	Create(ctx context.Context, userID string, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	ToggleArchive(ctx context.Context, userID, id string) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type subjectService struct {
	repo           *repository.Repository
	cal            calendar
	maxHorizonDays int
	logger         *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(cfg *config.Config, repo *repository.Repository, cal calendar, logger *zap.Logger) SubjectService {
	return &subjectService{
		repo:           repo,
		cal:            cal,
		maxHorizonDays: cfg.Planner.MaxHorizonDays,
		logger:         logger,
	}
}

// ────────────────────── List ──────────────────────

func (s *subjectService) List(ctx context.Context, userID string, includeArchived bool) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.ListByUser(ctx, userID, includeArchived)
	if err != nil {
		s.logger.Error("列出科目失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, toSubjectResponse(&subjects[i]))
	}
	return result, nil
}

// ────────────────────── Get ──────────────────────

func (s *subjectService) Get(ctx context.Context, userID, id string) (*dto.SubjectResponse, error) {
	subject, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	resp := toSubjectResponse(subject)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *subjectService) Create(ctx context.Context, userID string, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrSubjectNameRequired
	}
	if req.TotalItems < 1 || req.AvgDurationMinutes < 1 {
		return nil, ErrSubjectItemsInvalid
	}
	deadline, err := s.parseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}
	priority := req.Priority
	if priority == 0 {
		priority = defaultPriority
	}
	if priority < 1 || priority > 5 {
		return nil, ErrPriorityInvalid
	}

	subject := &model.Subject{
		UserID:             userID,
		Name:               name,
		TotalItems:         req.TotalItems,
		AvgDurationMinutes: req.AvgDurationMinutes,
		Deadline:           deadline,
		Priority:           priority,
		Mandatory:          req.Mandatory,
	}
	subject.Version = 1

	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		s.logger.Error("创建科目失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := toSubjectResponse(subject)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *subjectService) Update(ctx context.Context, userID, id string, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	subject, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrSubjectNameRequired
		}
		subject.Name = name
	}
	if req.TotalItems != nil {
		subject.TotalItems = *req.TotalItems
	}
	if req.CompletedItems != nil {
		subject.CompletedItems = *req.CompletedItems
	}
	if req.AvgDurationMinutes != nil {
		subject.AvgDurationMinutes = *req.AvgDurationMinutes
	}
	if subject.TotalItems < 1 || subject.AvgDurationMinutes < 1 {
		return nil, ErrSubjectItemsInvalid
	}
	if subject.CompletedItems < 0 || subject.CompletedItems > subject.TotalItems {
		return nil, ErrSubjectProgress
	}
	if req.Deadline != nil {
		deadline, err := s.parseDeadline(*req.Deadline)
		if err != nil {
			return nil, err
		}
		subject.Deadline = deadline
	}
	if req.Priority != nil {
		if *req.Priority < 1 || *req.Priority > 5 {
			return nil, ErrPriorityInvalid
		}
		subject.Priority = *req.Priority
	}
	if req.Mandatory != nil {
		subject.Mandatory = *req.Mandatory
	}

	// 以客户端持有的版本号做乐观锁
	subject.Version = req.Version
	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		s.logger.Warn("更新科目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toSubjectResponse(subject)
	return &resp, nil
}

// ────────────────────── ToggleArchive ──────────────────────

func (s *subjectService) ToggleArchive(ctx context.Context, userID, id string) (*dto.SubjectResponse, error) {
	subject, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	archived := !subject.Archived
	if err := s.repo.Subject.SetArchived(ctx, userID, id, archived); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("切换科目归档状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	subject.Archived = archived
	subject.Version = subject.NextVersion()
	resp := toSubjectResponse(subject)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

// Delete 软删除科目并在同一事务中删除其任务
func (s *subjectService) Delete(ctx context.Context, userID, id string) error {
	var removed int64
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Subject.Delete(ctx, userID, id); err != nil {
			return err
		}
		n, err := txRepo.Task.DeleteBySubject(ctx, userID, id)
		removed = n
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		s.logger.Error("删除科目失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("科目已删除", zap.String("id", id), zap.Int64("tasks_removed", removed))
	return nil
}

// ── 辅助函数 ──

func (s *subjectService) load(ctx context.Context, userID, id string) (*model.Subject, error) {
	subject, err := s.repo.Subject.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return subject, nil
}

// parseDeadline 截止日期允许早于今天（视为已逾期），但不得超出排程窗口
func (s *subjectService) parseDeadline(raw string) (t time.Time, err error) {
	deadline, ok := planner.ParseDate(raw)
	if !ok {
		return t, ErrDeadlineInvalid
	}
	if s.maxHorizonDays > 0 && planner.DaysBetween(s.cal.today(), deadline) > s.maxHorizonDays {
		return t, ErrDeadlineTooFar
	}
	return deadline, nil
}

func toSubjectResponse(subject *model.Subject) dto.SubjectResponse {
	return dto.SubjectResponse{
		ID:                 subject.SubjectID,
		Name:               subject.Name,
		TotalItems:         subject.TotalItems,
		CompletedItems:     subject.CompletedItems,
		AvgDurationMinutes: subject.AvgDurationMinutes,
		Deadline:           planner.FormatDate(subject.Deadline),
		Priority:           subject.Priority,
		Mandatory:          subject.Mandatory,
		Archived:           subject.Archived,
		Version:            subject.Version,
	}
}
