package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/praveensharma0809/planner-app/internal/service"
	"github.com/praveensharma0809/planner-app/pkg/response"
)

// DashboardHandler 看板 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Progress 各科目进度与健康度
// GET /api/v1/dashboard/progress
func (h *DashboardHandler) Progress(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.dashboardSvc.SubjectProgress(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Deadlines 即将到期的科目
// GET /api/v1/dashboard/deadlines
func (h *DashboardHandler) Deadlines(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.dashboardSvc.UpcomingDeadlines(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}
