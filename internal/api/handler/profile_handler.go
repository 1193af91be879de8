package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/praveensharma0809/planner-app/internal/dto"
	"github.com/praveensharma0809/planner-app/internal/service"
	"github.com/praveensharma0809/planner-app/pkg/response"
)

// ProfileHandler 学习档案 HTTP 处理器
type ProfileHandler struct {
	profileSvc service.ProfileService
}

// NewProfileHandler 创建 ProfileHandler
func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// GetProfile 获取当前用户档案
// GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileSvc.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, profile)
}

// UpdateProfile 更新档案
// PUT /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeBadRequest, "参数校验失败")
		return
	}

	profile, err := h.profileSvc.Update(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	response.OK(c, profile)
}

func (h *ProfileHandler) handleProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "用户不存在")
	case errors.Is(err, service.ErrProfileInvalid):
		response.BadRequest(c, 12002, err.Error())
	case errors.Is(err, service.ErrDailyMinutesInvalid):
		response.BadRequest(c, 12003, err.Error())
	case errors.Is(err, service.ErrExamDateInvalid):
		response.BadRequest(c, 12004, err.Error())
	default:
		response.InternalError(c)
	}
}
