package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/praveensharma0809/planner-app/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LogConfig
		level   zapcore.Level
		wantErr bool
	}{
		{"json info", config.LogConfig{Level: "info", Format: "json"}, zapcore.InfoLevel, false},
		{"console debug", config.LogConfig{Level: "debug", Format: "Console"}, zapcore.DebugLevel, false},
		{"非法级别", config.LogConfig{Level: "loud", Format: "json"}, zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLogger(&tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("期望返回错误")
				}
				return
			}
			if err != nil {
				t.Fatalf("初始化失败: %v", err)
			}
			if !l.Core().Enabled(tt.level) {
				t.Errorf("期望级别 %v 已启用", tt.level)
			}
			if tt.level > zapcore.DebugLevel && l.Core().Enabled(zapcore.DebugLevel) {
				t.Error("info 级别下不应输出 debug 日志")
			}
		})
	}
}
