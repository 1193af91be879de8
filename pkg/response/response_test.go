package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestContentDisposition(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{
			name:     "纯 ASCII",
			filename: "study-plan_2024-01-01.xlsx",
			want:     `attachment; filename="study-plan_2024-01-01.xlsx"; filename*=UTF-8''study-plan_2024-01-01.xlsx`,
		},
		{
			name:     "空格编码为 %20",
			filename: "my plan.ics",
			want:     `attachment; filename="my plan.ics"; filename*=UTF-8''my%20plan.ics`,
		},
		{
			name:     "中文与保留字符",
			filename: "学习计划 2024:01.xlsx",
			want:     `attachment; filename="____ 2024:01.xlsx"; filename*=UTF-8''%E5%AD%A6%E4%B9%A0%E8%AE%A1%E5%88%92%202024%3A01.xlsx`,
		},
		{
			name:     "引号不破坏头部",
			filename: `a"b.ics`,
			want:     `attachment; filename="a_b.ics"; filename*=UTF-8''a%22b.ics`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContentDisposition(tt.filename); got != tt.want {
				t.Errorf("期望 %s\n实际 %s", tt.want, got)
			}
		})
	}
}

func TestFile(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	File(c, "my plan.ics", "text/calendar; charset=utf-8", []byte("BEGIN:VCALENDAR"))

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200, 实际 %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); got != ContentDisposition("my plan.ics") {
		t.Errorf("Content-Disposition 不符: %s", got)
	}
	if got := w.Header().Get("Content-Type"); got != "text/calendar; charset=utf-8" {
		t.Errorf("Content-Type 不符: %s", got)
	}
	if w.Body.String() != "BEGIN:VCALENDAR" {
		t.Errorf("响应体不符: %s", w.Body.String())
	}
}
