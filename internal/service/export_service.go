package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/praveensharma0809/planner-app/internal/model"
	"github.com/praveensharma0809/planner-app/internal/planner"
	"github.com/praveensharma0809/planner-app/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoTasks      = errors.New("今天之后暂无学习任务")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
// 两种格式都只包含今天及以后的任务。
type ExportService interface {
	// ExportPlan 导出为 Excel：任务明细 + 每日汇总
	ExportPlan(ctx context.Context, userID string) (*bytes.Buffer, string, error)
	// ExportCalendar 导出为 iCalendar，每个任务一个全天事件
	ExportCalendar(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	cal    calendar
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, cal calendar, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, cal: cal, logger: logger}
}

const (
	taskSheet    = "Tasks"
	summarySheet = "Daily Totals"
)

// ═══════════════════════════════════════════════════════════
// ExportPlan 导出学习计划为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Tasks"：日期 | 科目 | 标题 | 分钟 | 完成
//   - Sheet "Daily Totals"：日期 | 任务数 | 总分钟 | 已完成

func (s *exportService) ExportPlan(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	today := s.cal.today()
	tasks, err := s.upcomingTasks(ctx, userID, today)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(taskSheet)
	f.SetActiveSheet(idx)
	f.NewSheet(summarySheet)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── 任务明细 ──
	f.SetColWidth(taskSheet, "A", "A", 12)
	f.SetColWidth(taskSheet, "B", "B", 24)
	f.SetColWidth(taskSheet, "C", "C", 28)
	f.SetColWidth(taskSheet, "D", "E", 10)
	for i, h := range []string{"Date", "Subject", "Title", "Minutes", "Done"} {
		f.SetCellValue(taskSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(taskSheet, "A1", "E1", headerStyle)

	type dayTotal struct {
		count, minutes, done int
	}
	var days []string
	totals := make(map[string]*dayTotal)

	for i, task := range tasks {
		row := i + 2
		date := planner.FormatDate(task.ScheduledDate)
		subjectName := ""
		if task.Subject != nil {
			subjectName = task.Subject.Name
		}
		done := "no"
		if task.Completed {
			done = "yes"
		}
		f.SetCellValue(taskSheet, cell("A", row), date)
		f.SetCellValue(taskSheet, cell("B", row), subjectName)
		f.SetCellValue(taskSheet, cell("C", row), task.Title)
		f.SetCellValue(taskSheet, cell("D", row), task.DurationMinutes)
		f.SetCellValue(taskSheet, cell("E", row), done)

		t, ok := totals[date]
		if !ok {
			t = &dayTotal{}
			totals[date] = t
			days = append(days, date) // tasks 已按日期升序
		}
		t.count++
		t.minutes += task.DurationMinutes
		if task.Completed {
			t.done++
		}
	}

	// ── 每日汇总 ──
	f.SetColWidth(summarySheet, "A", "A", 12)
	f.SetColWidth(summarySheet, "B", "D", 12)
	for i, h := range []string{"Date", "Tasks", "Minutes", "Completed"} {
		f.SetCellValue(summarySheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(summarySheet, "A1", "D1", headerStyle)
	for i, date := range days {
		row := i + 2
		t := totals[date]
		f.SetCellValue(summarySheet, cell("A", row), date)
		f.SetCellValue(summarySheet, cell("B", row), t.count)
		f.SetCellValue(summarySheet, cell("C", row), t.minutes)
		f.SetCellValue(summarySheet, cell("D", row), t.done)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("study-plan_%s.xlsx", planner.FormatDate(today))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportCalendar 导出学习计划为 iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportCalendar(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	today := s.cal.today()
	tasks, err := s.upcomingTasks(ctx, userID, today)
	if err != nil {
		return nil, "", err
	}

	stamp := s.cal.now().UTC()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//planner-app//study plan//EN")

	for _, task := range tasks {
		event := cal.AddEvent(task.TaskID + "@planner-app")
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(task.ScheduledDate)
		event.SetAllDayEndAt(planner.AddDays(task.ScheduledDate, 1))
		event.SetSummary(task.Title)
		desc := fmt.Sprintf("%d min", task.DurationMinutes)
		if task.Subject != nil {
			desc = fmt.Sprintf("%s · %s", task.Subject.Name, desc)
		}
		event.SetDescription(desc)
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("study-plan_%s.ics", planner.FormatDate(today))
	return buf, filename, nil
}

// ── 辅助函数 ──

func (s *exportService) upcomingTasks(ctx context.Context, userID string, today time.Time) ([]model.Task, error) {
	tasks, err := s.repo.Task.ListFrom(ctx, userID, today)
	if err != nil {
		s.logger.Error("查询任务失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, ErrExportNoTasks
	}
	return tasks, nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
