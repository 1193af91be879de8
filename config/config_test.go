package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Auth:   AuthConfig{JWTSecret: "0123456789abcdef"},
		Planner: PlannerConfig{
			Timezone:       "UTC",
			DefaultMode:    "strict",
			MaxHorizonDays: 365,
		},
		RateLimit: RateLimitConfig{Enabled: true, Requests: 10, Window: time.Minute},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"合法配置", func(*Config) {}, false},
		{"空密钥", func(c *Config) { c.Auth.JWTSecret = "" }, true},
		{"密钥过短", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, true},
		{"非法模式", func(c *Config) { c.Planner.DefaultMode = "lenient" }, true},
		{"auto 模式", func(c *Config) { c.Planner.DefaultMode = "AUTO" }, false},
		{"非法时区", func(c *Config) { c.Planner.Timezone = "Mars/Olympus" }, true},
		{"排程窗口为零", func(c *Config) { c.Planner.MaxHorizonDays = 0 }, true},
		{"限流参数非法", func(c *Config) { c.RateLimit.Requests = 0 }, true},
		{"关闭限流时忽略参数", func(c *Config) { c.RateLimit = RateLimitConfig{} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("期望 wantErr=%v, 实际 err=%v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 9090
auth:
  jwt_secret: "file-secret-0123456789"
planner:
  timezone: "Asia/Kolkata"
  default_mode: "auto"
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	t.Setenv("PLANNER_SERVER_PORT", "7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("环境变量应覆盖配置文件, 期望 7070, 实际 %d", cfg.Server.Port)
	}
	if cfg.Planner.DefaultMode != "auto" {
		t.Errorf("期望 default_mode=auto, 实际 %s", cfg.Planner.DefaultMode)
	}
	if cfg.Planner.MaxHorizonDays != 730 {
		t.Errorf("期望默认 max_horizon_days=730, 实际 %d", cfg.Planner.MaxHorizonDays)
	}
	if cfg.Auth.AccessTokenTTL != 15*time.Minute {
		t.Errorf("期望默认 access_token_ttl=15m, 实际 %v", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Planner.Location().String() != "Asia/Kolkata" {
		t.Errorf("期望时区 Asia/Kolkata, 实际 %s", cfg.Planner.Location())
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("缺少 jwt_secret 时应返回错误")
	}
}
