package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/praveensharma0809/planner-app/internal/dto"
	"github.com/praveensharma0809/planner-app/internal/service"
	pkgerrors "github.com/praveensharma0809/planner-app/pkg/errors"
	"github.com/praveensharma0809/planner-app/pkg/response"
)

// SubjectHandler 科目模块 HTTP 处理器
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

// NewSubjectHandler 创建 SubjectHandler
func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// ListSubjects 获取科目列表
// GET /api/v1/subjects?include_archived=true
func (h *SubjectHandler) ListSubjects(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ListSubjectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeBadRequest, "参数校验失败")
		return
	}

	subjects, err := h.subjectSvc.List(c.Request.Context(), userID, req.IncludeArchived)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": subjects})
}

// GetSubject 获取科目详情
// GET /api/v1/subjects/:id
func (h *SubjectHandler) GetSubject(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustGetParamID(c, "科目")
	if !ok {
		return
	}

	subject, err := h.subjectSvc.Get(c.Request.Context(), userID, id)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, subject)
}

// CreateSubject 创建科目
// POST /api/v1/subjects
func (h *SubjectHandler) CreateSubject(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeBadRequest, "参数校验失败")
		return
	}

	subject, err := h.subjectSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.Created(c, subject)
}

// UpdateSubject 更新科目
// PUT /api/v1/subjects/:id
func (h *SubjectHandler) UpdateSubject(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustGetParamID(c, "科目")
	if !ok {
		return
	}

	var req dto.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeBadRequest, "参数校验失败")
		return
	}

	subject, err := h.subjectSvc.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, subject)
}

// ToggleArchive 归档 / 取消归档
// PUT /api/v1/subjects/:id/archive
func (h *SubjectHandler) ToggleArchive(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustGetParamID(c, "科目")
	if !ok {
		return
	}

	subject, err := h.subjectSvc.ToggleArchive(c.Request.Context(), userID, id)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, subject)
}

// DeleteSubject 删除科目（级联删除其任务）
// DELETE /api/v1/subjects/:id
func (h *SubjectHandler) DeleteSubject(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	id, ok := mustGetParamID(c, "科目")
	if !ok {
		return
	}

	if err := h.subjectSvc.Delete(c.Request.Context(), userID, id); err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleSubjectError 统一处理科目模块业务错误
func (h *SubjectHandler) handleSubjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 13001, "科目不存在")
	case errors.Is(err, service.ErrSubjectNameRequired):
		response.BadRequest(c, 13002, err.Error())
	case errors.Is(err, service.ErrSubjectItemsInvalid):
		response.BadRequest(c, 13003, err.Error())
	case errors.Is(err, service.ErrSubjectProgress):
		response.BadRequest(c, 13004, err.Error())
	case errors.Is(err, service.ErrDeadlineInvalid):
		response.BadRequest(c, 13005, err.Error())
	case errors.Is(err, service.ErrDeadlineTooFar):
		response.BadRequest(c, 13006, err.Error())
	case errors.Is(err, service.ErrPriorityInvalid):
		response.BadRequest(c, 13007, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 13008, "科目已被修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
