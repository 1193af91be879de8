package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praveensharma0809/planner-app/internal/planner"
)

const samplePlan = `
today: 2024-01-01
daily_minutes: 60
exam_date: 2024-03-01
mode: strict
off_days:
  - 2024-01-02
subjects:
  - id: phy
    name: Physics
    total_items: 4
    avg_duration_minutes: 60
    deadline: 2024-01-03
    priority: 2
  - name: Chemistry
    total_items: 2
    completed_items: 2
    avg_duration_minutes: 30
    deadline: 2024-02-01
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPlanFile(t *testing.T) {
	pf, err := loadPlanFile(writePlan(t, samplePlan))
	require.NoError(t, err)

	in, err := pf.toInput("", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", planner.FormatDate(in.today))
	assert.Equal(t, planner.ModeStrict, in.mode)
	assert.Equal(t, 60, in.daily)
	require.Len(t, in.subjects, 2)
	assert.Equal(t, "phy", in.subjects[0].ID)
	assert.Equal(t, "subject-2", in.subjects[1].ID)
	assert.Equal(t, 3, in.subjects[1].Priority, "未填写优先级时取默认值 3")
	assert.True(t, in.opts.OffDays.Has(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestLoadPlanFile_Errors(t *testing.T) {
	_, err := loadPlanFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = loadPlanFile(writePlan(t, "   \n"))
	assert.Error(t, err)

	_, err = loadPlanFile(writePlan(t, "subjects: [unclosed"))
	assert.Error(t, err)
}

func TestToInput_Validation(t *testing.T) {
	tests := []struct {
		name string
		pf   planFile
		mode string
	}{
		{"非法模式", planFile{DailyMinutes: 60}, "lenient"},
		{"非法今天", planFile{DailyMinutes: 60, Today: "tomorrow"}, ""},
		{"非法考试日期", planFile{DailyMinutes: 60, ExamDate: "2024-13-40"}, ""},
		{"负数容量", planFile{DailyMinutes: -1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.pf.toInput(tt.mode, time.Now())
			assert.Error(t, err)
		})
	}
}

func TestRun_StrictOverloadThenAdjust(t *testing.T) {
	pf, err := loadPlanFile(writePlan(t, samplePlan))
	require.NoError(t, err)
	in, err := pf.toInput("", time.Now())
	require.NoError(t, err)

	// 4 条 × 60 分钟，可用 2 天（1 日与 3 日），每日 60 分钟
	status := run(in, 0)
	require.Equal(t, planner.KindOverload, status.Kind())

	status = run(in, 60)
	require.Equal(t, planner.KindReady, status.Kind())
	ready := status.(planner.Ready)
	assert.Equal(t, 4, ready.TaskCount)
	for _, task := range ready.Tasks {
		assert.NotEqual(t, "2024-01-02", task.ScheduledDate, "休息日不应排任务")
	}
}

func TestRenderReport(t *testing.T) {
	pf, err := loadPlanFile(writePlan(t, samplePlan))
	require.NoError(t, err)

	in, err := pf.toInput("auto", time.Now())
	require.NoError(t, err)
	out := renderReport(in, run(in, 0), 0)

	assert.Contains(t, out, "READY")
	assert.Contains(t, out, "Physics")
	assert.Contains(t, out, "2024-01-03")
	assert.Contains(t, out, "mode=auto")

	in.mode = planner.ModeStrict
	out = renderReport(in, run(in, 0), 0)
	assert.Contains(t, out, "OVERLOAD")
	assert.Contains(t, out, "Scheduling blocked")

	empty := &planInput{daily: 60, today: in.today, mode: planner.ModeStrict}
	out = renderReport(empty, run(empty, 0), 0)
	assert.True(t, strings.Contains(out, "No subjects"))
}

func TestRenderTasks_Truncates(t *testing.T) {
	ready := planner.Ready{
		Tasks: []planner.ScheduledTask{
			{ScheduledDate: "2024-01-01", Title: "a", DurationMinutes: 30},
			{ScheduledDate: "2024-01-02", Title: "b", DurationMinutes: 30},
			{ScheduledDate: "2024-01-03", Title: "c", DurationMinutes: 30},
		},
		TaskCount: 3,
	}
	out := renderTasks(ready, 2)
	assert.Contains(t, out, "2024-01-02")
	assert.NotContains(t, out, "2024-01-03")
	assert.Contains(t, out, "...")
}
