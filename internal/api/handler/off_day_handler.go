package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/praveensharma0809/planner-app/internal/dto"
	"github.com/praveensharma0809/planner-app/internal/service"
	"github.com/praveensharma0809/planner-app/pkg/response"
)

// OffDayHandler 休息日模块 HTTP 处理器
type OffDayHandler struct {
	offDaySvc service.OffDayService
}

// NewOffDayHandler 创建 OffDayHandler
func NewOffDayHandler(offDaySvc service.OffDayService) *OffDayHandler {
	return &OffDayHandler{offDaySvc: offDaySvc}
}

// ListOffDays 获取休息日列表
// GET /api/v1/off-days
func (h *OffDayHandler) ListOffDays(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	days, err := h.offDaySvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": days})
}

// CreateOffDay 添加休息日
// POST /api/v1/off-days
func (h *OffDayHandler) CreateOffDay(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOffDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeBadRequest, "参数校验失败")
		return
	}

	day, err := h.offDaySvc.Add(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleOffDayError(c, err)
		return
	}

	response.Created(c, day)
}

// DeleteOffDay 删除休息日
// DELETE /api/v1/off-days/:id
func (h *OffDayHandler) DeleteOffDay(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustGetParamID(c, "休息日")
	if !ok {
		return
	}

	if err := h.offDaySvc.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleOffDayError(c, err)
		return
	}

	response.OK(c, nil)
}

// ImportICS 从 iCalendar 文件导入休息日
// POST /api/v1/off-days/import (multipart/form-data, field="file")
func (h *OffDayHandler) ImportICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 14000, "请上传 ICS 文件")
		return
	}
	defer file.Close()

	result, err := h.offDaySvc.ImportICS(c.Request.Context(), userID, file)
	if err != nil {
		h.handleOffDayError(c, err)
		return
	}

	response.Created(c, result)
}

func (h *OffDayHandler) handleOffDayError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOffDayNotFound):
		response.NotFound(c, 14001, "休息日不存在")
	case errors.Is(err, service.ErrOffDayExists):
		response.Conflict(c, 14002, "该日期已是休息日")
	case errors.Is(err, service.ErrOffDayDateInvalid):
		response.BadRequest(c, 14003, err.Error())
	case errors.Is(err, service.ErrICSInvalid):
		response.BadRequest(c, 14004, err.Error())
	case errors.Is(err, service.ErrICSTooManyDates):
		response.BadRequest(c, 14005, err.Error())
	default:
		response.InternalError(c)
	}
}
