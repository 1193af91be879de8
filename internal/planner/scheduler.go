package planner

import (
	"fmt"
	"sort"
	"time"
)

// scheduledSubject 排程中的科目状态（remainingItems 随排程递减）
type scheduledSubject struct {
	workload
	urgencyScore float64
}

// Schedule 贪心装箱排程：把剩余条目逐日分配到今天起的可用日期。
//
// 规则：
//   - 科目顺序：必修优先 → 有效截止日期升序 → 紧迫度降序；排程开始前确定，全程不变
//   - 逐日扫描至最晚有效截止日期；休息日不排任何任务
//   - 每天容量 = dailyAvailableMinutes，单科连续排到条目耗尽、容量不足或超出其截止日期
//
// 容量不足时部分科目会排不完，排程本身不报告缺口（由 AnalyzeFeasibility 负责）。
func Schedule(subjects []Subject, dailyAvailableMinutes int, today time.Time, opts Options) []ScheduledTask {
	today = DateOf(today, nil)
	active := prepare(subjects, today, opts)
	if len(active) == 0 {
		return []ScheduledTask{}
	}

	horizon := today
	for _, s := range active {
		if s.effectiveDeadline.After(horizon) {
			horizon = s.effectiveDeadline
		}
	}

	tasks := make([]ScheduledTask, 0)
	for day := today; !day.After(horizon) && hasRemaining(active); day = AddDays(day, 1) {
		if opts.OffDays.Has(day) {
			continue
		}

		capacity := dailyAvailableMinutes
		isoDay := FormatDate(day)
		for _, s := range active {
			duration := s.subject.AvgDurationMinutes
			for s.remainingItems > 0 && capacity >= duration && !day.After(s.effectiveDeadline) {
				tasks = append(tasks, ScheduledTask{
					SubjectID:       s.subject.ID,
					ScheduledDate:   isoDay,
					DurationMinutes: duration,
					Title:           taskTitle(s.subject.Priority),
					Priority:        s.subject.Priority,
				})
				s.remainingItems--
				capacity -= duration
			}
		}
	}

	return tasks
}

// prepare 计算派生负载与紧迫度，并按固定规则稳定排序
func prepare(subjects []Subject, today time.Time, opts Options) []*scheduledSubject {
	workloads := activeWorkloads(subjects, today, opts)

	active := make([]*scheduledSubject, 0, len(workloads))
	for _, w := range workloads {
		daysLeft := DaysBetween(today, w.effectiveDeadline)
		if daysLeft < 1 {
			daysLeft = 1
		}
		active = append(active, &scheduledSubject{
			workload:     w,
			urgencyScore: float64(w.remainingMinutes) / float64(daysLeft) * float64(w.subject.Priority),
		})
	}

	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]
		if a.subject.Mandatory != b.subject.Mandatory {
			return a.subject.Mandatory
		}
		if !a.effectiveDeadline.Equal(b.effectiveDeadline) {
			return a.effectiveDeadline.Before(b.effectiveDeadline)
		}
		return a.urgencyScore > b.urgencyScore
	})

	return active
}

func hasRemaining(active []*scheduledSubject) bool {
	for _, s := range active {
		if s.remainingItems > 0 {
			return true
		}
	}
	return false
}

// taskTitle 任务标题只由优先级生成，不含科目名称
func taskTitle(priority int) string {
	return fmt.Sprintf("%d Priority Study", priority)
}
