package dto

// ── 休息日模块 DTO ──

// CreateOffDayRequest 添加休息日请求
type CreateOffDayRequest struct {
	Date   string `json:"date"   binding:"required"`
	Reason string `json:"reason" binding:"max=200"`
}
