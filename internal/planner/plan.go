package planner

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidMode 非法的排程模式
var ErrInvalidMode = errors.New("planner: invalid mode")

// Mode 过载时的处理策略
type Mode string

const (
	// ModeStrict 过载即阻断排程
	ModeStrict Mode = "strict"
	// ModeAuto 过载仍排程，分析结果作为警告附带返回
	ModeAuto Mode = "auto"
)

// ParseMode 解析模式字符串（忽略大小写，空串视为 strict）
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeStrict:
		return ModeStrict, nil
	case ModeAuto:
		return ModeAuto, nil
	default:
		return "", ErrInvalidMode
	}
}

// ── 计划状态（封闭的和类型） ──

// PlanStatusKind 状态标签
type PlanStatusKind string

const (
	KindNoSubjects PlanStatusKind = "NO_SUBJECTS"
	KindOverload   PlanStatusKind = "OVERLOAD"
	KindReady      PlanStatusKind = "READY"
)

// PlanStatus AnalyzePlan 的结果，只有 NoSubjects / Overloaded / Ready 三种实现
type PlanStatus interface {
	Kind() PlanStatusKind
	sealed()
}

// NoSubjects 输入科目列表为空
type NoSubjects struct{}

// Overloaded strict 模式下过载，排程被阻断
type Overloaded struct {
	Result OverloadResult
}

// Ready 排程已生成；Overload 无论模式都会附带
type Ready struct {
	Tasks     []ScheduledTask
	TaskCount int
	Overload  OverloadResult
	// EffectiveCapacity 排程实际使用的每日容量
	EffectiveCapacity int
}

func (NoSubjects) Kind() PlanStatusKind { return KindNoSubjects }
func (Overloaded) Kind() PlanStatusKind { return KindOverload }
func (Ready) Kind() PlanStatusKind      { return KindReady }

func (NoSubjects) sealed() {}
func (Overloaded) sealed() {}
func (Ready) sealed()      {}

// AnalyzePlan 组合可行性分析与排程。
//
//   - 输入科目列表为空 → NoSubjects（只看原始列表，全部完成的科目仍会走完整流程）
//   - strict 且过载 → Overloaded，不排程
//   - 其他 → Ready；默认按原始每日容量排程，
//     仅当 opts.BoostAutoCapacity 且 auto 模式过载时按建议容量排程
func AnalyzePlan(subjects []Subject, dailyAvailableMinutes int, today time.Time, mode Mode, opts Options) PlanStatus {
	if len(subjects) == 0 {
		return NoSubjects{}
	}

	overload := AnalyzeFeasibility(subjects, dailyAvailableMinutes, today, opts)
	if overload.Overload && mode == ModeStrict {
		return Overloaded{Result: overload}
	}

	capacity := dailyAvailableMinutes
	if overload.Overload && mode == ModeAuto && opts.BoostAutoCapacity {
		capacity = overload.SuggestedCapacity
	}

	tasks := Schedule(subjects, capacity, today, opts)
	return Ready{
		Tasks:             tasks,
		TaskCount:         len(tasks),
		Overload:          overload,
		EffectiveCapacity: capacity,
	}
}
