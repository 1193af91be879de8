package handler

import "github.com/praveensharma0809/planner-app/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	Profile   *ProfileHandler
	Subject   *SubjectHandler
	OffDay    *OffDayHandler
	Plan      *PlanHandler
	Task      *TaskHandler
	Dashboard *DashboardHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Profile:   NewProfileHandler(svc.Profile),
		Subject:   NewSubjectHandler(svc.Subject),
		OffDay:    NewOffDayHandler(svc.OffDay),
		Plan:      NewPlanHandler(svc.Plan),
		Task:      NewTaskHandler(svc.Task),
		Dashboard: NewDashboardHandler(svc.Dashboard),
		Export:    NewExportHandler(svc.Export),
	}
}
