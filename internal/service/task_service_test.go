package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/praveensharma0809/planner-app/internal/dto"
	"github.com/praveensharma0809/planner-app/internal/model"
)

func setupTestTaskService() (TaskService, *mockRepos, *model.Subject) {
	repo, mocks := newMockRepository()
	seedUser(mocks, 120)
	subject := seedSubject(mocks, model.Subject{
		SubjectID:          "subject-bio",
		Name:               "Biology",
		TotalItems:         10,
		AvgDurationMinutes: 30,
		Deadline:           date(2024, 1, 31),
		Priority:           2,
	})
	return NewTaskService(repo, newTestCalendar(), zap.NewNop()), mocks, subject
}

func TestTaskService_Create(t *testing.T) {
	svc, _, subject := setupTestTaskService()

	task, err := svc.Create(context.Background(), "user-1", &dto.CreateTaskRequest{
		SubjectID:       subject.SubjectID,
		Title:           " Revise cells ",
		ScheduledDate:   "2024-01-03",
		DurationMinutes: 45,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if task.Priority != 2 {
		t.Errorf("优先级应继承自科目，期望 2，实际 %d", task.Priority)
	}
	if task.IsPlanGenerated {
		t.Error("手动任务不应标记为计划生成")
	}
	if task.Title != "Revise cells" || task.SubjectName != "Biology" {
		t.Errorf("任务内容不符: %+v", task)
	}
}

func TestTaskService_Create_Validation(t *testing.T) {
	svc, _, subject := setupTestTaskService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.CreateTaskRequest
		want error
	}{
		{"标题为空", dto.CreateTaskRequest{SubjectID: subject.SubjectID, Title: " ", ScheduledDate: "2024-01-03", DurationMinutes: 30}, ErrTaskInvalid},
		{"时长为零", dto.CreateTaskRequest{SubjectID: subject.SubjectID, Title: "x", ScheduledDate: "2024-01-03"}, ErrTaskInvalid},
		{"日期非法", dto.CreateTaskRequest{SubjectID: subject.SubjectID, Title: "x", ScheduledDate: "3rd Jan", DurationMinutes: 30}, ErrTaskDateInvalid},
		{"科目不存在", dto.CreateTaskRequest{SubjectID: "missing", Title: "x", ScheduledDate: "2024-01-03", DurationMinutes: 30}, ErrSubjectNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, "user-1", &tt.req); !errors.Is(err, tt.want) {
				t.Errorf("期望 %v，实际: %v", tt.want, err)
			}
		})
	}
}

func TestTaskService_CompleteIsIdempotent(t *testing.T) {
	svc, mocks, subject := setupTestTaskService()
	ctx := context.Background()
	task, _ := svc.Create(ctx, "user-1", &dto.CreateTaskRequest{
		SubjectID: subject.SubjectID, Title: "x", ScheduledDate: "2024-01-01", DurationMinutes: 30,
	})

	for i := 0; i < 2; i++ {
		resp, err := svc.Complete(ctx, "user-1", task.ID)
		if err != nil {
			t.Fatalf("Complete 应成功: %v", err)
		}
		if !resp.Completed || resp.CompletedAt == nil {
			t.Errorf("完成后应带完成时间: %+v", resp)
		}
	}
	if got := mocks.subject.subjects[subject.SubjectID].CompletedItems; got != 1 {
		t.Errorf("重复完成只应累加一次，期望 1，实际 %d", got)
	}

	for i := 0; i < 2; i++ {
		resp, err := svc.Uncomplete(ctx, "user-1", task.ID)
		if err != nil {
			t.Fatalf("Uncomplete 应成功: %v", err)
		}
		if resp.Completed {
			t.Error("撤销后应为未完成")
		}
	}
	if got := mocks.subject.subjects[subject.SubjectID].CompletedItems; got != 0 {
		t.Errorf("撤销后期望 0，实际 %d", got)
	}
}

func TestTaskService_Complete_NotFound(t *testing.T) {
	svc, _, _ := setupTestTaskService()

	if _, err := svc.Complete(context.Background(), "user-1", "missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("期望 ErrTaskNotFound，实际: %v", err)
	}
}

func TestTaskService_Reschedule(t *testing.T) {
	svc, mocks, subject := setupTestTaskService()
	ctx := context.Background()
	task, _ := svc.Create(ctx, "user-1", &dto.CreateTaskRequest{
		SubjectID: subject.SubjectID, Title: "x", ScheduledDate: "2023-12-28", DurationMinutes: 30,
	})

	if _, err := svc.Reschedule(ctx, "user-1", task.ID, &dto.RescheduleTaskRequest{ScheduledDate: "2023-12-31"}); !errors.Is(err, ErrTaskDateInPast) {
		t.Errorf("期望 ErrTaskDateInPast，实际: %v", err)
	}

	resp, err := svc.Reschedule(ctx, "user-1", task.ID, &dto.RescheduleTaskRequest{ScheduledDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("改期到今天应成功: %v", err)
	}
	if resp.ScheduledDate != "2024-01-01" {
		t.Errorf("期望新日期 2024-01-01，实际 %s", resp.ScheduledDate)
	}
	if !mocks.task.tasks[task.ID].ScheduledDate.Equal(date(2024, 1, 1)) {
		t.Error("新日期应写回仓储")
	}
}

func TestTaskService_Backlog(t *testing.T) {
	svc, mocks, subject := setupTestTaskService()
	ctx := context.Background()
	_ = mocks.task.Create(ctx, &model.Task{UserID: "user-1", SubjectID: subject.SubjectID, Title: "missed", ScheduledDate: date(2023, 12, 30), DurationMinutes: 30})
	_ = mocks.task.Create(ctx, &model.Task{UserID: "user-1", SubjectID: subject.SubjectID, Title: "done", ScheduledDate: date(2023, 12, 30), DurationMinutes: 30, Completed: true})
	_ = mocks.task.Create(ctx, &model.Task{UserID: "user-1", SubjectID: subject.SubjectID, Title: "today", ScheduledDate: date(2024, 1, 1), DurationMinutes: 30})

	backlog, err := svc.Backlog(ctx, "user-1")
	if err != nil {
		t.Fatalf("Backlog 应成功: %v", err)
	}
	if len(backlog) != 1 || backlog[0].Title != "missed" {
		t.Errorf("积压任务只应包含今天之前未完成的任务，实际 %+v", backlog)
	}
}

func TestTaskService_Week(t *testing.T) {
	svc, mocks, subject := setupTestTaskService()
	ctx := context.Background()
	// 2024-01-10 为周三，所在周为 01-08 ~ 01-14
	for _, d := range []int{7, 8, 14, 15} {
		_ = mocks.task.Create(ctx, &model.Task{UserID: "user-1", SubjectID: subject.SubjectID, Title: "t", ScheduledDate: date(2024, 1, d), DurationMinutes: 30})
	}

	week, err := svc.Week(ctx, "user-1", "2024-01-10")
	if err != nil {
		t.Fatalf("Week 应成功: %v", err)
	}
	if len(week) != 2 || week[0].ScheduledDate != "2024-01-08" || week[1].ScheduledDate != "2024-01-14" {
		t.Errorf("期望周一与周日的 2 个任务，实际 %+v", week)
	}

	if _, err := svc.Week(ctx, "user-1", "next week"); !errors.Is(err, ErrTaskDateInvalid) {
		t.Errorf("期望 ErrTaskDateInvalid，实际: %v", err)
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		day, monday, sunday int
	}{
		{1, 1, 7},   // 周一
		{7, 1, 7},   // 周日
		{10, 8, 14}, // 周三
	}
	for _, tt := range tests {
		from, to := weekRange(date(2024, 1, tt.day))
		if !from.Equal(date(2024, 1, tt.monday)) || !to.Equal(date(2024, 1, tt.sunday)) {
			t.Errorf("01-%02d: 期望 %d~%d，实际 %v~%v", tt.day, tt.monday, tt.sunday, from, to)
		}
	}
}

func TestTaskService_MonthCounts(t *testing.T) {
	svc, mocks, subject := setupTestTaskService()
	ctx := context.Background()
	_ = mocks.task.Create(ctx, &model.Task{UserID: "user-1", SubjectID: subject.SubjectID, Title: "a", ScheduledDate: date(2024, 2, 1), DurationMinutes: 30, Completed: true})
	_ = mocks.task.Create(ctx, &model.Task{UserID: "user-1", SubjectID: subject.SubjectID, Title: "b", ScheduledDate: date(2024, 2, 1), DurationMinutes: 30})
	_ = mocks.task.Create(ctx, &model.Task{UserID: "user-1", SubjectID: subject.SubjectID, Title: "c", ScheduledDate: date(2024, 2, 29), DurationMinutes: 30})
	_ = mocks.task.Create(ctx, &model.Task{UserID: "user-1", SubjectID: subject.SubjectID, Title: "d", ScheduledDate: date(2024, 3, 1), DurationMinutes: 30})

	counts, err := svc.MonthCounts(ctx, "user-1", "2024-02")
	if err != nil {
		t.Fatalf("MonthCounts 应成功: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("期望 2 个有任务的日期，实际 %+v", counts)
	}
	if counts[0].Date != "2024-02-01" || counts[0].Total != 2 || counts[0].Completed != 1 {
		t.Errorf("02-01 统计不符: %+v", counts[0])
	}
	if counts[1].Date != "2024-02-29" {
		t.Errorf("闰年二月应包含 29 日，实际 %+v", counts[1])
	}

	if _, err := svc.MonthCounts(ctx, "user-1", "2024/02"); !errors.Is(err, ErrMonthInvalid) {
		t.Errorf("期望 ErrMonthInvalid，实际: %v", err)
	}
}
