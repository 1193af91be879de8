package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/praveensharma0809/planner-app/internal/dto"
	"github.com/praveensharma0809/planner-app/internal/model"
	"github.com/praveensharma0809/planner-app/internal/planner"
	"github.com/praveensharma0809/planner-app/internal/repository"
)

// 科目健康度
const (
	HealthOverdue = "overdue"
	HealthAtRisk  = "at_risk"
	HealthBehind  = "behind"
	HealthOnTrack = "on_track"
)

// DashboardService 看板业务接口
type DashboardService interface {
	SubjectProgress(ctx context.Context, userID string) ([]dto.SubjectProgressResponse, error)
	UpcomingDeadlines(ctx context.Context, userID string) ([]dto.UpcomingDeadlineResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	cal    calendar
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, cal calendar, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, cal: cal, logger: logger}
}

// SubjectProgress 未归档科目的完成度与健康度
func (s *dashboardService) SubjectProgress(ctx context.Context, userID string) ([]dto.SubjectProgressResponse, error) {
	subjects, err := s.repo.Subject.ListByUser(ctx, userID, false)
	if err != nil {
		s.logger.Error("列出科目失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	today := s.cal.today()
	result := make([]dto.SubjectProgressResponse, 0, len(subjects))
	for i := range subjects {
		subject := &subjects[i]
		percent := progressPercent(subject)
		daysLeft := planner.DaysBetween(today, subject.Deadline)
		result = append(result, dto.SubjectProgressResponse{
			SubjectID:      subject.SubjectID,
			Name:           subject.Name,
			TotalItems:     subject.TotalItems,
			CompletedItems: subject.CompletedItems,
			Percent:        percent,
			Deadline:       planner.FormatDate(subject.Deadline),
			DaysLeft:       daysLeft,
			Health:         subjectHealth(percent, daysLeft),
		})
	}
	return result, nil
}

// UpcomingDeadlines 仍有剩余条目的科目，按截止日期升序
func (s *dashboardService) UpcomingDeadlines(ctx context.Context, userID string) ([]dto.UpcomingDeadlineResponse, error) {
	subjects, err := s.repo.Subject.ListByUser(ctx, userID, false)
	if err != nil {
		s.logger.Error("列出科目失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	pending := make([]model.Subject, 0, len(subjects))
	for _, subject := range subjects {
		if subject.RemainingItems() > 0 {
			pending = append(pending, subject)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Deadline.Before(pending[j].Deadline)
	})

	today := s.cal.today()
	result := make([]dto.UpcomingDeadlineResponse, 0, len(pending))
	for _, subject := range pending {
		result = append(result, dto.UpcomingDeadlineResponse{
			SubjectID:      subject.SubjectID,
			Name:           subject.Name,
			Deadline:       planner.FormatDate(subject.Deadline),
			DaysLeft:       planner.DaysBetween(today, subject.Deadline),
			RemainingItems: subject.RemainingItems(),
		})
	}
	return result, nil
}

func progressPercent(subject *model.Subject) int {
	if subject.TotalItems <= 0 {
		return 0
	}
	percent := subject.CompletedItems * 100 / subject.TotalItems
	if percent > 100 {
		percent = 100
	}
	return percent
}

// subjectHealth 截止已过且未完成为 overdue；≤3 天且 <80% 为 at_risk；≤7 天且 <60% 为 behind
func subjectHealth(percent, daysLeft int) string {
	switch {
	case percent >= 100:
		return HealthOnTrack
	case daysLeft < 0:
		return HealthOverdue
	case daysLeft <= 3 && percent < 80:
		return HealthAtRisk
	case daysLeft <= 7 && percent < 60:
		return HealthBehind
	default:
		return HealthOnTrack
	}
}
