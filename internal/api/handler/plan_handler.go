package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/praveensharma0809/planner-app/internal/dto"
	"github.com/praveensharma0809/planner-app/internal/service"
	"github.com/praveensharma0809/planner-app/pkg/response"
)

// PlanHandler 计划模块 HTTP 处理器
//
// 分析与调整接口总是返回 200，结果状态（READY / OVERLOAD / NO_SUBJECTS）
// 放在响应体的 status 字段中；只有参数错误才返回 4xx。
type PlanHandler struct {
	planSvc service.PlanService
}

// NewPlanHandler 创建 PlanHandler
func NewPlanHandler(planSvc service.PlanService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc}
}

// Analyze 分析可行性并生成排程草案（不落库）
// POST /api/v1/plan/analyze   body 可省略，也可用 ?mode=auto
func (h *PlanHandler) Analyze(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AnalyzePlanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, response.CodeBadRequest, "参数校验失败")
			return
		}
	}
	if req.Mode == "" {
		req.Mode = c.Query("mode")
	}

	result, err := h.planSvc.Analyze(c.Request.Context(), userID, req.Mode)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.OK(c, result)
}

// Resolve 应用一次假设性调整后重新分析
// POST /api/v1/plan/resolve
func (h *PlanHandler) Resolve(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ResolvePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeBadRequest, "参数校验失败")
		return
	}

	result, err := h.planSvc.Resolve(c.Request.Context(), userID, &req)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.OK(c, result)
}

// Commit 用草案替换今天起的自动生成任务
// POST /api/v1/plan/commit
func (h *PlanHandler) Commit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CommitPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeBadRequest, "参数校验失败")
		return
	}

	result, err := h.planSvc.Commit(c.Request.Context(), userID, &req)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.Created(c, result)
}

// History 最近的计划事件
// GET /api/v1/plan/history
func (h *PlanHandler) History(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	events, err := h.planSvc.History(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": events})
}

func (h *PlanHandler) handlePlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidMode):
		response.BadRequest(c, 15001, err.Error())
	case errors.Is(err, service.ErrInvalidAdjustment):
		response.BadRequest(c, 15002, err.Error())
	case errors.Is(err, service.ErrPlanTaskInvalid):
		response.BadRequest(c, 15003, err.Error())
	case errors.Is(err, service.ErrPlanSubjectNotOwned):
		response.BadRequest(c, 15004, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 15005, "用户不存在")
	default:
		response.InternalError(c)
	}
}
