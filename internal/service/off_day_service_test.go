package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/praveensharma0809/planner-app/internal/dto"
	"github.com/praveensharma0809/planner-app/internal/model"
)

func icsFixture(lines ...string) string {
	all := append([]string{"BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:-//test//EN"}, lines...)
	all = append(all, "END:VCALENDAR")
	return strings.Join(all, "\r\n") + "\r\n"
}

func TestOffDayService_AddAndDuplicate(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewOffDayService(repo, zap.NewNop())
	ctx := context.Background()

	offDay, err := svc.Add(ctx, "user-1", &dto.CreateOffDayRequest{Date: "2024-01-10", Reason: " trip "})
	if err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}
	if offDay.Date != "2024-01-10" || offDay.Reason != "trip" {
		t.Errorf("休息日内容不符: %+v", offDay)
	}

	if _, err := svc.Add(ctx, "user-1", &dto.CreateOffDayRequest{Date: "2024-01-10"}); !errors.Is(err, ErrOffDayExists) {
		t.Errorf("期望 ErrOffDayExists，实际: %v", err)
	}
	if _, err := svc.Add(ctx, "user-1", &dto.CreateOffDayRequest{Date: "10-01-2024"}); !errors.Is(err, ErrOffDayDateInvalid) {
		t.Errorf("期望 ErrOffDayDateInvalid，实际: %v", err)
	}
}

func TestOffDayService_ListAndDelete(t *testing.T) {
	repo, mocks := newMockRepository()
	svc := NewOffDayService(repo, zap.NewNop())
	ctx := context.Background()

	_ = mocks.offDay.Create(ctx, &model.OffDay{UserID: "user-1", Date: date(2024, 1, 20)})
	_ = mocks.offDay.Create(ctx, &model.OffDay{UserID: "user-1", Date: date(2024, 1, 5)})
	_ = mocks.offDay.Create(ctx, &model.OffDay{UserID: "user-2", Date: date(2024, 1, 6)})

	list, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 2 || list[0].Date != "2024-01-05" {
		t.Fatalf("期望按日期升序的 2 个休息日，实际 %+v", list)
	}

	if err := svc.Delete(ctx, "user-2", list[0].ID); !errors.Is(err, ErrOffDayNotFound) {
		t.Errorf("删除他人休息日应返回 ErrOffDayNotFound，实际: %v", err)
	}
	if err := svc.Delete(ctx, "user-1", list[0].ID); err != nil {
		t.Errorf("Delete 应成功: %v", err)
	}
}

func TestOffDayService_ImportICS(t *testing.T) {
	repo, mocks := newMockRepository()
	svc := NewOffDayService(repo, zap.NewNop())
	ctx := context.Background()
	_ = mocks.offDay.Create(ctx, &model.OffDay{UserID: "user-1", Date: date(2024, 1, 11)})

	content := icsFixture(
		"BEGIN:VEVENT",
		"UID:trip@test",
		"DTSTAMP:20231201T000000Z",
		"SUMMARY:Family trip",
		"DTSTART;VALUE=DATE:20240110",
		"DTEND;VALUE=DATE:20240112",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:swim@test",
		"DTSTAMP:20231201T000000Z",
		"SUMMARY:Swimming",
		"DTSTART:20240105T090000Z",
		"DTEND:20240105T100000Z",
		"RRULE:FREQ=WEEKLY;COUNT=3",
		"EXDATE:20240112T090000Z",
		"END:VEVENT",
	)

	result, err := svc.ImportICS(ctx, "user-1", strings.NewReader(content))
	if err != nil {
		t.Fatalf("ImportICS 应成功: %v", err)
	}
	// 候选日期：01-05、01-10、01-11(已存在)、01-19
	if result.Created != 3 || result.Skipped != 1 {
		t.Errorf("期望 created=3 skipped=1，实际 %+v", result)
	}

	list, _ := svc.List(ctx, "user-1")
	var got []string
	for _, o := range list {
		got = append(got, o.Date)
	}
	want := "2024-01-05,2024-01-10,2024-01-11,2024-01-19"
	if strings.Join(got, ",") != want {
		t.Errorf("期望休息日 %s，实际 %s", want, strings.Join(got, ","))
	}
}

func TestOffDayService_ImportICS_Invalid(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewOffDayService(repo, zap.NewNop())

	_, err := svc.ImportICS(context.Background(), "user-1", strings.NewReader("not a calendar"))
	if !errors.Is(err, ErrICSInvalid) {
		t.Errorf("期望 ErrICSInvalid，实际: %v", err)
	}
}

func TestOffDayService_ImportICS_DateBudget(t *testing.T) {
	daily := func(uid, start, end string, count int) []string {
		return []string{
			"BEGIN:VEVENT",
			"UID:" + uid,
			"DTSTAMP:20231201T000000Z",
			"DTSTART;VALUE=DATE:" + start,
			"DTEND;VALUE=DATE:" + end,
			fmt.Sprintf("RRULE:FREQ=DAILY;COUNT=%d", count),
			"END:VEVENT",
		}
	}

	var overlapping []string
	for i := 0; i < 11; i++ {
		overlapping = append(overlapping, daily(fmt.Sprintf("dup-%d@test", i), "20240101", "20240102", 700)...)
	}

	tests := []struct {
		name        string
		content     string
		wantErr     error
		wantCreated int
	}{
		{
			name:    "跨三十年的重复事件",
			content: icsFixture(daily("long@test", "20000101", "20300101", 730)...),
			wantErr: ErrICSTooManyDates,
		},
		{
			name:    "重叠事件展开次数超限",
			content: icsFixture(overlapping...),
			wantErr: ErrICSTooManyDates,
		},
		{
			name:        "恰好达到上限",
			content:     icsFixture(daily("exact@test", "20240101", "20240102", icsMaxDates)...),
			wantCreated: icsMaxDates,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _ := newMockRepository()
			svc := NewOffDayService(repo, zap.NewNop())
			ctx := context.Background()

			result, err := svc.ImportICS(ctx, "user-1", strings.NewReader(tt.content))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("期望 %v，实际: %v", tt.wantErr, err)
				}
				if list, _ := svc.List(ctx, "user-1"); len(list) != 0 {
					t.Errorf("拒绝导入时不应写入休息日，实际 %d 条", len(list))
				}
				return
			}
			if err != nil {
				t.Fatalf("ImportICS 应成功: %v", err)
			}
			if result.Created != tt.wantCreated {
				t.Errorf("期望 created=%d，实际 %d", tt.wantCreated, result.Created)
			}
		})
	}
}

func TestParseRRule(t *testing.T) {
	r := parseRRule("FREQ=DAILY;INTERVAL=2;UNTIL=20240107")
	if r.freq != "DAILY" || r.interval != 2 {
		t.Fatalf("解析结果不符: %+v", r)
	}

	occ := expandRRule(r, date(2024, 1, 1))
	if len(occ) != 4 {
		t.Errorf("期望 01-01/03/05/07 共 4 次，实际 %d", len(occ))
	}
}

func TestExpandRRule_UnboundedCappedToOneYear(t *testing.T) {
	occ := expandRRule(parseRRule("FREQ=WEEKLY"), date(2024, 1, 1))
	if len(occ) != 53 {
		t.Errorf("无终止条件的每周事件应展开一年（53 次），实际 %d", len(occ))
	}
}
