package planner

import "time"

// Adjustment 一次假设性调整，只有 ExtendDeadline / ReduceItems / IncreaseDailyMinutes 三种
type Adjustment interface {
	apply(subjects []Subject, daily int) ([]Subject, int)
}

// ExtendDeadline 修改某科截止日期
type ExtendDeadline struct {
	SubjectID   string
	NewDeadline string
}

// ReduceItems 修改某科总条目数（下限 0）
type ReduceItems struct {
	SubjectID     string
	NewTotalItems int
}

// IncreaseDailyMinutes 调整每日可用分钟（结果下限 0，delta 可为负）
type IncreaseDailyMinutes struct {
	DeltaMinutes int
}

func (a ExtendDeadline) apply(subjects []Subject, daily int) ([]Subject, int) {
	for i := range subjects {
		if subjects[i].ID == a.SubjectID {
			subjects[i].Deadline = a.NewDeadline
		}
	}
	return subjects, daily
}

func (a ReduceItems) apply(subjects []Subject, daily int) ([]Subject, int) {
	total := a.NewTotalItems
	if total < 0 {
		total = 0
	}
	for i := range subjects {
		if subjects[i].ID == a.SubjectID {
			subjects[i].TotalItems = total
		}
	}
	return subjects, daily
}

func (a IncreaseDailyMinutes) apply(subjects []Subject, daily int) ([]Subject, int) {
	daily += a.DeltaMinutes
	if daily < 0 {
		daily = 0
	}
	return subjects, daily
}

// ApplyAdjustment 在副本上应用调整，调用方的科目切片不会被修改。
// adj 为 nil 时原样返回（仍为副本）。
func ApplyAdjustment(subjects []Subject, dailyAvailableMinutes int, adj Adjustment) ([]Subject, int) {
	copied := make([]Subject, len(subjects))
	copy(copied, subjects)
	if adj == nil {
		return copied, dailyAvailableMinutes
	}
	return adj.apply(copied, dailyAvailableMinutes)
}

// ResolveOverload 应用一次调整后重新执行 AnalyzePlan，不产生任何副作用
func ResolveOverload(subjects []Subject, dailyAvailableMinutes int, today time.Time, mode Mode, adj Adjustment, opts Options) PlanStatus {
	adjusted, daily := ApplyAdjustment(subjects, dailyAvailableMinutes, adj)
	return AnalyzePlan(adjusted, daily, today, mode, opts)
}
