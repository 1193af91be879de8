package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/praveensharma0809/planner-app/internal/dto"
	"github.com/praveensharma0809/planner-app/internal/service"
	"github.com/praveensharma0809/planner-app/pkg/response"
)

// TaskHandler 任务模块 HTTP 处理器
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// CreateTask 手动创建任务
// POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeBadRequest, "参数校验失败")
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.Created(c, task)
}

// CompleteTask 标记完成
// PUT /api/v1/tasks/:id/complete
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustGetParamID(c, "任务")
	if !ok {
		return
	}

	task, err := h.taskSvc.Complete(c.Request.Context(), userID, id)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, task)
}

// UncompleteTask 取消完成
// PUT /api/v1/tasks/:id/uncomplete
func (h *TaskHandler) UncompleteTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustGetParamID(c, "任务")
	if !ok {
		return
	}

	task, err := h.taskSvc.Uncomplete(c.Request.Context(), userID, id)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, task)
}

// RescheduleTask 改期
// PUT /api/v1/tasks/:id/reschedule
func (h *TaskHandler) RescheduleTask(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustGetParamID(c, "任务")
	if !ok {
		return
	}

	var req dto.RescheduleTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeBadRequest, "参数校验失败")
		return
	}

	task, err := h.taskSvc.Reschedule(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, task)
}

// Backlog 逾期未完成的任务
// GET /api/v1/tasks/backlog
func (h *TaskHandler) Backlog(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	tasks, err := h.taskSvc.Backlog(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": tasks})
}

// Week 周视图（周一至周日）
// GET /api/v1/tasks/week?week_of=2024-01-03
func (h *TaskHandler) Week(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var q dto.WeekQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, response.CodeBadRequest, "参数校验失败")
		return
	}

	tasks, err := h.taskSvc.Week(c.Request.Context(), userID, q.WeekOf)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, gin.H{"list": tasks})
}

// MonthCounts 月视图每日任务统计
// GET /api/v1/tasks/month-counts?month=2024-01
func (h *TaskHandler) MonthCounts(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var q dto.MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, response.CodeBadRequest, "month 不能为空")
		return
	}

	counts, err := h.taskSvc.MonthCounts(c.Request.Context(), userID, q.Month)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, gin.H{"list": counts})
}

func (h *TaskHandler) handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		response.NotFound(c, 16001, "任务不存在")
	case errors.Is(err, service.ErrTaskInvalid):
		response.BadRequest(c, 16002, err.Error())
	case errors.Is(err, service.ErrTaskDateInvalid):
		response.BadRequest(c, 16003, err.Error())
	case errors.Is(err, service.ErrTaskDateInPast):
		response.BadRequest(c, 16004, err.Error())
	case errors.Is(err, service.ErrMonthInvalid):
		response.BadRequest(c, 16005, err.Error())
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 16006, "科目不存在")
	default:
		response.InternalError(c)
	}
}
