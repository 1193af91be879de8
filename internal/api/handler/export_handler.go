package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/praveensharma0809/planner-app/internal/service"
	"github.com/praveensharma0809/planner-app/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportPlan 导出今天起的学习计划（Excel）
// GET /api/v1/export/plan.xlsx
func (h *ExportHandler) ExportPlan(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportPlan(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.File(c, filename, contentTypeXLSX, buf.Bytes())
}

// ExportCalendar 导出今天起的学习计划（iCalendar）
// GET /api/v1/export/plan.ics
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportCalendar(c.Request.Context(), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.File(c, filename, contentTypeICS, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoTasks):
		response.NotFound(c, 17001, "今天之后暂无学习任务")
	default:
		response.InternalError(c)
	}
}
