package planner

import (
	"strings"
	"time"
)

// DateLayout ISO 日期格式（YYYY-MM-DD）
const DateLayout = "2006-01-02"

// ParseDate 解析 ISO 日期，返回 UTC 零点。
// 只接受 YYYY-MM-DD 与 RFC3339 时间戳（仅保留其日历日期部分），带多余后缀的字符串视为无效。
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// FormatDate 将日期格式化为 ISO 字符串
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOf 取 t 在 loc 时区下的日历日期，归一化为 UTC 零点。
// loc 为 nil 时直接使用 t 自带的时区。
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween 返回 from → to 相差的日历天数（to 早于 from 时为负）
func DaysBetween(from, to time.Time) int {
	from = DateOf(from, nil)
	to = DateOf(to, nil)
	return int(to.Sub(from).Hours() / 24)
}

// AddDays 日历意义上的加天数（不受夏令时影响）
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// ── 休息日集合 ──

// OffDays 休息日集合，key 为 ISO 日期
type OffDays map[string]struct{}

// NewOffDays 由 ISO 日期列表构造休息日集合，无法解析的日期被忽略
func NewOffDays(dates ...string) OffDays {
	set := make(OffDays, len(dates))
	for _, d := range dates {
		if t, ok := ParseDate(d); ok {
			set[FormatDate(t)] = struct{}{}
		}
	}
	return set
}

// Has 判断某日是否为休息日（nil 集合视为空）
func (o OffDays) Has(day time.Time) bool {
	if len(o) == 0 {
		return false
	}
	_, ok := o[FormatDate(day)]
	return ok
}

// countAvailableDays 统计 [from, to] 闭区间内的非休息日天数
func countAvailableDays(from, to time.Time, offDays OffDays) int {
	n := 0
	for d := from; !d.After(to); d = AddDays(d, 1) {
		if !offDays.Has(d) {
			n++
		}
	}
	return n
}
