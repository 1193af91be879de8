package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/praveensharma0809/planner-app/internal/api/middleware"
	"github.com/praveensharma0809/planner-app/pkg/jwt"
	"github.com/praveensharma0809/planner-app/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return "", false
	}
	return s, true
}

// MustGetClaims 提取当前 Access Token 的 Claims（登出时需要 jti 与剩余有效期）
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.ContextClaims)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return nil, false
	}
	return claims, true
}

// mustGetParamID 读取路径参数 :id
func mustGetParamID(c *gin.Context, label string) (string, bool) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, response.CodeBadRequest, label+"ID不能为空")
		return "", false
	}
	return id, true
}
