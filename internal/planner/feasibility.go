package planner

import (
	"math"
	"time"
)

// 分级阈值：所需分钟 / 每日可用分钟
const (
	safeRatio   = 1.0
	tightRatio  = 1.1
	atRiskRatio = 1.25
)

// ceilEpsilon 抵消浮点累加误差，避免 480.0000000001 被向上取整为 481
const ceilEpsilon = 1e-9

// AnalyzeFeasibility 计算各科及整体的日均需求与可行性分级，并给出纠偏建议。
// 对单科的脏数据不报错：截止日期无法解析按今天处理，剩余量为负按 0 处理。
func AnalyzeFeasibility(subjects []Subject, dailyAvailableMinutes int, today time.Time, opts Options) OverloadResult {
	today = DateOf(today, nil)
	active := activeWorkloads(subjects, today, opts)

	result := OverloadResult{
		CurrentCapacity:    dailyAvailableMinutes,
		SuggestedCapacity:  dailyAvailableMinutes,
		AvailableMinPerDay: dailyAvailableMinutes,
		Subjects:           make([]FeasibilityReport, 0, len(active)),
		OverallStatus:      OverallFeasible,
	}
	if len(active) == 0 {
		return result
	}

	anyImpossible := false
	for _, w := range active {
		report := analyzeSubject(w, dailyAvailableMinutes, today, opts.OffDays)
		if !math.IsInf(report.RequiredMinutesPerDay, 0) {
			result.TotalRequiredMinPerDay += report.RequiredMinutesPerDay
		}
		if report.Status == StatusImpossible {
			anyImpossible = true
		}
		result.Subjects = append(result.Subjects, report)
	}

	result.CapacityGapMinPerDay = math.Max(0, result.TotalRequiredMinPerDay-float64(dailyAvailableMinutes))
	result.BurnRate = result.TotalRequiredMinPerDay
	result.Overload = result.CapacityGapMinPerDay > 0 || anyImpossible
	if result.Overload {
		result.OverallStatus = OverallOverloaded
	}

	if suggested := ceilInt(result.TotalRequiredMinPerDay); suggested > dailyAvailableMinutes {
		result.SuggestedCapacity = suggested
	}

	return result
}

// analyzeSubject 单科分析
func analyzeSubject(w workload, daily int, today time.Time, offDays OffDays) FeasibilityReport {
	end := w.effectiveDeadline
	if end.Before(today) {
		end = today
	}
	availableDays := countAvailableDays(today, end, offDays)

	required := math.Inf(1)
	if availableDays > 0 {
		required = float64(w.remainingMinutes) / float64(availableDays)
	}
	gap := math.Max(0, required-float64(daily))

	return FeasibilityReport{
		SubjectID:                w.subject.ID,
		Name:                     w.subject.Name,
		EffectiveDeadline:        FormatDate(w.effectiveDeadline),
		AvailableDays:            availableDays,
		TotalRemainingMinutes:    w.remainingMinutes,
		RequiredMinutesPerDay:    required,
		CapacityGapMinutesPerDay: gap,
		Status:                   classify(required, daily),
		Suggestions:              suggest(w, daily, availableDays, gap),
	}
}

// classify 按需求/容量比值分级
func classify(required float64, daily int) FeasibilityStatus {
	if daily <= 0 || math.IsInf(required, 0) {
		return StatusImpossible
	}
	ratio := required / float64(daily)
	switch {
	case ratio <= safeRatio:
		return StatusSafe
	case ratio <= tightRatio:
		return StatusTight
	case ratio <= atRiskRatio:
		return StatusAtRisk
	default:
		return StatusImpossible
	}
}

// suggest 计算三项独立的纠偏建议
func suggest(w workload, daily, availableDays int, gap float64) Suggestions {
	var s Suggestions

	if daily > 0 {
		neededDays := ceilDiv(w.remainingMinutes, daily)
		if extend := neededDays - availableDays; extend > 0 {
			s.ExtendDeadlineDays = intPtr(extend)
		}
	}

	if w.subject.AvgDurationMinutes > 0 && availableDays > 0 && gap > 0 {
		// gap × availableDays = remainingMinutes − daily × availableDays，整数运算避免误差
		excessMinutes := w.remainingMinutes - daily*availableDays
		if excessMinutes > 0 {
			s.ReduceItemsBy = intPtr(ceilDiv(excessMinutes, w.subject.AvgDurationMinutes))
		}
	}

	if gap > 0 && !math.IsInf(gap, 0) {
		s.IncreaseDailyMinutesBy = intPtr(ceilInt(gap))
	}

	return s
}

// ── 辅助函数 ──

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}

func ceilInt(x float64) int {
	return int(math.Ceil(x - ceilEpsilon))
}

func intPtr(v int) *int {
	return &v
}
