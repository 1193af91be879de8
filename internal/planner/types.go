// Package planner 学习计划核心：可行性分析 + 贪心排程 + 计划编排。
//
// 本包为纯函数实现：不做 I/O、不持久化、不感知用户与会话。
// 所有"今天"、考试日期、休息日均由调用方显式传入，同样的输入永远得到同样的输出。
package planner

import "time"

// Subject 科目输入（调用方持有，本包只读）
type Subject struct {
	ID                 string
	Name               string
	TotalItems         int
	CompletedItems     int
	AvgDurationMinutes int
	Deadline           string // ISO 日期
	Priority           int    // 1-5，1 最高
	Mandatory          bool
}

// Options 可选的全局输入
type Options struct {
	// ExamDate 全局截止日期；为空或无法解析时不生效
	ExamDate string
	OffDays  OffDays
	// BoostAutoCapacity auto 模式且过载时，排程按建议容量执行
	BoostAutoCapacity bool
}

// ── 可行性状态 ──

// FeasibilityStatus 单科可行性分级
type FeasibilityStatus string

const (
	StatusSafe       FeasibilityStatus = "safe"
	StatusTight      FeasibilityStatus = "tight"
	StatusAtRisk     FeasibilityStatus = "at_risk"
	StatusImpossible FeasibilityStatus = "impossible"
)

// OverallStatus 整体可行性
type OverallStatus string

const (
	OverallFeasible   OverallStatus = "feasible"
	OverallOverloaded OverallStatus = "overloaded"
)

// Suggestions 纠偏建议；各项独立计算，不适用时为 nil
type Suggestions struct {
	ExtendDeadlineDays     *int
	ReduceItemsBy          *int
	IncreaseDailyMinutesBy *int
}

// FeasibilityReport 单科可行性报告
type FeasibilityReport struct {
	SubjectID                string
	Name                     string
	EffectiveDeadline        string
	AvailableDays            int
	TotalRemainingMinutes    int
	RequiredMinutesPerDay    float64 // 可用天数为 0 时为 +Inf
	CapacityGapMinutesPerDay float64
	Status                   FeasibilityStatus
	Suggestions              Suggestions
}

// OverloadResult 可行性分析汇总
type OverloadResult struct {
	Overload               bool
	BurnRate               float64
	CurrentCapacity        int
	SuggestedCapacity      int
	Subjects               []FeasibilityReport
	TotalRequiredMinPerDay float64
	AvailableMinPerDay     int
	CapacityGapMinPerDay   float64
	OverallStatus          OverallStatus
}

// ScheduledTask 排程产出的单个学习任务（值对象，不持久化）
type ScheduledTask struct {
	SubjectID       string
	ScheduledDate   string
	DurationMinutes int
	Title           string
	Priority        int
}

// workload 单科派生负载（每次调用重新计算）
type workload struct {
	subject           Subject
	remainingItems    int
	remainingMinutes  int
	effectiveDeadline time.Time
}

// deriveWorkload 计算剩余量与有效截止日期。
// 截止日期无法解析时按 today 处理；考试日期早于截止日期时取考试日期。
func deriveWorkload(s Subject, today time.Time, exam *time.Time) workload {
	remaining := s.TotalItems - s.CompletedItems
	if remaining < 0 {
		remaining = 0
	}

	deadline, ok := ParseDate(s.Deadline)
	if !ok {
		deadline = today
	}
	if exam != nil && exam.Before(deadline) {
		deadline = *exam
	}

	return workload{
		subject:           s,
		remainingItems:    remaining,
		remainingMinutes:  remaining * s.AvgDurationMinutes,
		effectiveDeadline: deadline,
	}
}

// activeWorkloads 过滤掉已完成科目
func activeWorkloads(subjects []Subject, today time.Time, opts Options) []workload {
	exam := parseExamDate(opts.ExamDate)
	active := make([]workload, 0, len(subjects))
	for _, s := range subjects {
		w := deriveWorkload(s, today, exam)
		if w.remainingItems > 0 {
			active = append(active, w)
		}
	}
	return active
}

func parseExamDate(s string) *time.Time {
	t, ok := ParseDate(s)
	if !ok {
		return nil
	}
	return &t
}
