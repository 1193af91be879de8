package service

import (
	"context"
	"errors"
	"fmt"
	"math"
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

// ── 计划模块业务错误 ──

var (
	ErrInvalidMode         = errors.New("排程模式只能是 strict 或 auto")
	ErrInvalidAdjustment   = errors.New("调整参数无效")
	ErrPlanTaskInvalid     = errors.New("计划任务参数无效")
	ErrPlanSubjectNotOwned = errors.New("计划中包含不属于当前用户的科目")
)

// planHistoryLimit History 返回的事件数
const planHistoryLimit = 20

// PlanService 计划业务接口：加载用户数据后调用 planner 核心，只写审计事件与提交结果
type PlanService interface {
	Analyze(ctx context.Context, userID string, mode string) (*dto.PlanResponse, error)
	Resolve(ctx context.Context, userID string, req *dto.ResolvePlanRequest) (*dto.PlanResponse, error)
	Commit(ctx context.Context, userID string, req *dto.CommitPlanRequest) (*dto.CommitPlanResponse, error)
	History(ctx context.Context, userID string) ([]dto.PlanEventResponse, error)
}

type planService struct {
	repo        *repository.Repository
	cal         calendar
	defaultMode string
	boost       bool
	logger      *zap.Logger
}

// NewPlanService 创建 PlanService 实例
func NewPlanService(cfg *config.Config, repo *repository.Repository, cal calendar, logger *zap.Logger) PlanService {
	return &planService{
		repo:        repo,
		cal:         cal,
		defaultMode: cfg.Planner.DefaultMode,
		boost:       cfg.Planner.AutoBoostCapacity,
		logger:      logger,
	}
}

// planInput 一次分析所需的全部输入
type planInput struct {
	subjects []planner.Subject
	daily    int
	opts     planner.Options
}

// ────────────────────── Analyze ──────────────────────

func (s *planService) Analyze(ctx context.Context, userID string, mode string) (*dto.PlanResponse, error) {
	m, err := s.parseMode(mode)
	if err != nil {
		return nil, err
	}
	in, err := s.loadInput(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.cal.today()
	status := planner.AnalyzePlan(in.subjects, in.daily, today, m, in.opts)
	resp := toPlanResponse(status, m, today)

	s.recordEvent(ctx, userID, model.PlanEventAnalyzed, m, resp, "")
	return resp, nil
}

// ────────────────────── Resolve ──────────────────────

func (s *planService) Resolve(ctx context.Context, userID string, req *dto.ResolvePlanRequest) (*dto.PlanResponse, error) {
	m, err := s.parseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	adj, err := toAdjustment(&req.Adjustment)
	if err != nil {
		return nil, err
	}
	in, err := s.loadInput(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.cal.today()
	status := planner.ResolveOverload(in.subjects, in.daily, today, m, adj, in.opts)
	resp := toPlanResponse(status, m, today)

	s.recordEvent(ctx, userID, model.PlanEventResolvedOverload, m, resp, describeAdjustment(&req.Adjustment))
	return resp, nil
}

// ────────────────────── Commit ──────────────────────

// Commit 丢弃早于今天的任务，校验科目归属后原子替换今天及以后的计划任务
func (s *planService) Commit(ctx context.Context, userID string, req *dto.CommitPlanRequest) (*dto.CommitPlanResponse, error) {
	today := s.cal.today()

	result := &dto.CommitPlanResponse{}
	tasks := make([]model.Task, 0, len(req.Tasks))
	subjectIDs := make(map[string]struct{})
	for _, item := range req.Tasks {
		date, ok := planner.ParseDate(item.ScheduledDate)
		if !ok || item.DurationMinutes < 1 || strings.TrimSpace(item.Title) == "" {
			return nil, ErrPlanTaskInvalid
		}
		if date.Before(today) {
			result.Skipped++
			continue
		}
		priority := item.Priority
		if priority < 1 || priority > 5 {
			priority = defaultPriority
		}
		tasks = append(tasks, model.Task{
			UserID:          userID,
			SubjectID:       item.SubjectID,
			Title:           strings.TrimSpace(item.Title),
			ScheduledDate:   date,
			DurationMinutes: item.DurationMinutes,
			Priority:        priority,
			IsPlanGenerated: true,
		})
		subjectIDs[item.SubjectID] = struct{}{}
	}

	if len(subjectIDs) > 0 {
		ids := make([]string, 0, len(subjectIDs))
		for id := range subjectIDs {
			ids = append(ids, id)
		}
		owned, err := s.repo.Subject.CountOwned(ctx, userID, ids)
		if err != nil {
			s.logger.Error("校验科目归属失败", zap.String("user_id", userID), zap.Error(err))
			return nil, err
		}
		if owned != int64(len(ids)) {
			return nil, ErrPlanSubjectNotOwned
		}
	}

	replaced, err := s.repo.Task.ReplacePlanGenerated(ctx, userID, today, tasks)
	if err != nil {
		s.logger.Error("提交计划失败，事务回滚", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	result.Inserted = len(tasks)
	result.Replaced = replaced

	event := &model.PlanEvent{
		UserID:    userID,
		EventType: model.PlanEventCommitted,
		TaskCount: result.Inserted,
		Detail:    fmt.Sprintf("replaced=%d skipped=%d", result.Replaced, result.Skipped),
	}
	if err := s.repo.PlanEvent.Create(ctx, event); err != nil {
		s.logger.Warn("记录计划事件失败", zap.String("user_id", userID), zap.Error(err))
	}

	s.logger.Info("计划已提交",
		zap.String("user_id", userID),
		zap.Int("inserted", result.Inserted),
		zap.Int64("replaced", result.Replaced),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// ────────────────────── History ──────────────────────

func (s *planService) History(ctx context.Context, userID string) ([]dto.PlanEventResponse, error) {
	events, err := s.repo.PlanEvent.ListRecent(ctx, userID, planHistoryLimit)
	if err != nil {
		s.logger.Error("查询计划事件失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.PlanEventResponse, 0, len(events))
	for _, e := range events {
		result = append(result, dto.PlanEventResponse{
			ID:        e.PlanEventID,
			EventType: e.EventType,
			Mode:      e.Mode,
			Status:    e.Status,
			TaskCount: e.TaskCount,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return result, nil
}

// ── 辅助函数 ──

func (s *planService) parseMode(raw string) (planner.Mode, error) {
	if strings.TrimSpace(raw) == "" {
		raw = s.defaultMode
	}
	m, err := planner.ParseMode(raw)
	if err != nil {
		return "", ErrInvalidMode
	}
	return m, nil
}

// loadInput 加载档案、未归档科目与休息日
func (s *planService) loadInput(ctx context.Context, userID string) (*planInput, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	subjects, err := s.repo.Subject.ListByUser(ctx, userID, false)
	if err != nil {
		s.logger.Error("列出科目失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	offDays, err := s.repo.OffDay.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出休息日失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	in := &planInput{
		subjects: make([]planner.Subject, 0, len(subjects)),
		daily:    user.DailyAvailableMinutes,
		opts: planner.Options{
			BoostAutoCapacity: s.boost,
		},
	}
	for i := range subjects {
		in.subjects = append(in.subjects, toPlannerSubject(&subjects[i]))
	}
	if user.ExamDate != nil {
		in.opts.ExamDate = planner.FormatDate(*user.ExamDate)
	}
	dates := make([]string, 0, len(offDays))
	for _, o := range offDays {
		dates = append(dates, planner.FormatDate(o.Date))
	}
	in.opts.OffDays = planner.NewOffDays(dates...)
	return in, nil
}

// recordEvent 写入审计事件；失败只记日志，不影响分析结果
func (s *planService) recordEvent(ctx context.Context, userID, eventType string, m planner.Mode, resp *dto.PlanResponse, detail string) {
	event := &model.PlanEvent{
		UserID:    userID,
		EventType: eventType,
		Mode:      string(m),
		Status:    resp.Status,
		TaskCount: resp.TaskCount,
		Detail:    detail,
	}
	if err := s.repo.PlanEvent.Create(ctx, event); err != nil {
		s.logger.Warn("记录计划事件失败", zap.String("user_id", userID), zap.Error(err))
	}
}

func toPlannerSubject(subject *model.Subject) planner.Subject {
	return planner.Subject{
		ID:                 subject.SubjectID,
		Name:               subject.Name,
		TotalItems:         subject.TotalItems,
		CompletedItems:     subject.CompletedItems,
		AvgDurationMinutes: subject.AvgDurationMinutes,
		Deadline:           planner.FormatDate(subject.Deadline),
		Priority:           subject.Priority,
		Mandatory:          subject.Mandatory,
	}
}

// toAdjustment 将请求转换为 planner.Adjustment
func toAdjustment(req *dto.AdjustmentRequest) (planner.Adjustment, error) {
	switch req.Type {
	case dto.AdjustmentExtendDeadline:
		if req.SubjectID == "" {
			return nil, ErrInvalidAdjustment
		}
		if _, ok := planner.ParseDate(req.NewDeadline); !ok {
			return nil, ErrInvalidAdjustment
		}
		return planner.ExtendDeadline{SubjectID: req.SubjectID, NewDeadline: req.NewDeadline}, nil
	case dto.AdjustmentReduceItems:
		if req.SubjectID == "" {
			return nil, ErrInvalidAdjustment
		}
		return planner.ReduceItems{SubjectID: req.SubjectID, NewTotalItems: req.NewTotalItems}, nil
	case dto.AdjustmentIncreaseDailyMinutes:
		return planner.IncreaseDailyMinutes{DeltaMinutes: req.DeltaMinutes}, nil
	default:
		return nil, ErrInvalidAdjustment
	}
}

func describeAdjustment(req *dto.AdjustmentRequest) string {
	switch req.Type {
	case dto.AdjustmentExtendDeadline:
		return fmt.Sprintf("%s subject=%s deadline=%s", req.Type, req.SubjectID, req.NewDeadline)
	case dto.AdjustmentReduceItems:
		return fmt.Sprintf("%s subject=%s total=%d", req.Type, req.SubjectID, req.NewTotalItems)
	default:
		return fmt.Sprintf("%s delta=%d", req.Type, req.DeltaMinutes)
	}
}

// ── 响应转换 ──

func toPlanResponse(status planner.PlanStatus, m planner.Mode, today time.Time) *dto.PlanResponse {
	resp := &dto.PlanResponse{
		Status: string(status.Kind()),
		Mode:   string(m),
		Today:  today.Format(planner.DateLayout),
	}

	switch st := status.(type) {
	case planner.Overloaded:
		resp.Overload = toOverloadResponse(&st.Result)
	case planner.Ready:
		resp.Tasks = make([]dto.ScheduledTaskResponse, 0, len(st.Tasks))
		for _, t := range st.Tasks {
			resp.Tasks = append(resp.Tasks, dto.ScheduledTaskResponse{
				SubjectID:       t.SubjectID,
				ScheduledDate:   t.ScheduledDate,
				DurationMinutes: t.DurationMinutes,
				Title:           t.Title,
				Priority:        t.Priority,
			})
		}
		resp.TaskCount = st.TaskCount
		resp.EffectiveCapacity = st.EffectiveCapacity
		resp.Overload = toOverloadResponse(&st.Overload)
	}
	return resp
}

func toOverloadResponse(r *planner.OverloadResult) *dto.OverloadResponse {
	resp := &dto.OverloadResponse{
		Overload:               r.Overload,
		BurnRate:               r.BurnRate,
		CurrentCapacity:        r.CurrentCapacity,
		SuggestedCapacity:      r.SuggestedCapacity,
		Subjects:               make([]dto.FeasibilityResponse, 0, len(r.Subjects)),
		TotalRequiredMinPerDay: finiteOrZero(r.TotalRequiredMinPerDay),
		AvailableMinPerDay:     r.AvailableMinPerDay,
		CapacityGapMinPerDay:   finiteOrZero(r.CapacityGapMinPerDay),
		OverallStatus:          string(r.OverallStatus),
	}
	for _, f := range r.Subjects {
		item := dto.FeasibilityResponse{
			SubjectID:                f.SubjectID,
			Name:                     f.Name,
			EffectiveDeadline:        f.EffectiveDeadline,
			AvailableDays:            f.AvailableDays,
			TotalRemainingMinutes:    f.TotalRemainingMinutes,
			RequiredMinutesPerDay:    finitePtr(f.RequiredMinutesPerDay),
			CapacityGapMinutesPerDay: finitePtr(f.CapacityGapMinutesPerDay),
			Status:                   string(f.Status),
			Suggestions: dto.SuggestionsResponse{
				ExtendDeadlineDays:     f.Suggestions.ExtendDeadlineDays,
				ReduceItemsBy:          f.Suggestions.ReduceItemsBy,
				IncreaseDailyMinutesBy: f.Suggestions.IncreaseDailyMinutesBy,
			},
		}
		resp.Subjects = append(resp.Subjects, item)
	}
	return resp
}

// finitePtr JSON 无法表示无穷大，以 null 输出
func finitePtr(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func finiteOrZero(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}
