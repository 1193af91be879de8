package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/praveensharma0809/planner-app/config"
	"github.com/praveensharma0809/planner-app/internal/planner"
	"github.com/praveensharma0809/planner-app/internal/repository"
	"github.com/praveensharma0809/planner-app/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	Profile   ProfileService
	Subject   SubjectService
	OffDay    OffDayService
	Plan      PlanService
	Task      TaskService
	Dashboard DashboardService
	Export    ExportService
}

// TokenBlacklist Token 黑名单（由 pkg/redis.Client 实现，可为 nil）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Clock 当前时间来源；测试中替换为固定时间
type Clock func() time.Time

// calendar 按配置时区计算"今天"
type calendar struct {
	now Clock
	loc *time.Location
}

func newCalendar(cfg *config.PlannerConfig, now Clock) calendar {
	if now == nil {
		now = time.Now
	}
	return calendar{now: now, loc: cfg.Location()}
}

// today 今天的日历日期（UTC 零点）
func (c calendar) today() time.Time {
	return planner.DateOf(c.now(), c.loc)
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	now Clock,
	logger *zap.Logger,
) *Service {
	cal := newCalendar(&cfg.Planner, now)
	return &Service{
		Auth:      NewAuthService(repo, jwtMgr, blacklist, logger),
		Profile:   NewProfileService(repo, logger),
		Subject:   NewSubjectService(cfg, repo, cal, logger),
		OffDay:    NewOffDayService(repo, logger),
		Plan:      NewPlanService(cfg, repo, cal, logger),
		Task:      NewTaskService(repo, cal, logger),
		Dashboard: NewDashboardService(repo, cal, logger),
		Export:    NewExportService(repo, cal, logger),
	}
}

// ── 响应转换 ──

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := planner.FormatDate(*t)
	return &s
}
