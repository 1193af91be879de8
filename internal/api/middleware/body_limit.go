package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praveensharma0809/planner-app/pkg/response"
)

// BodyLimit 请求体大小限制。routeLimits 以路由模板（c.FullPath）为键覆盖默认上限，
// 例如文件上传接口可单独放宽
func BodyLimit(defaultMax int64, routeLimits map[string]int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultMax
		if n, ok := routeLimits[c.FullPath()]; ok {
			limit = n
		}

		if c.Request.ContentLength > limit {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodePayloadTooLarge, "请求体过大")
			c.Abort()
			return
		}
		// chunked 请求没有 Content-Length，读取时截断
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
