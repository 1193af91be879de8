package service

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/praveensharma0809/planner-app/internal/planner"
)

// ── ICS 解析 ──────────────────────────────────────────────
//
// 将 iCalendar (RFC 5545) 中每个 VEVENT 覆盖的日历日期展开为休息日：
//   - DTSTART..DTEND 覆盖的每一天（全天事件 DTEND 为开区间）
//   - RRULE 仅支持 FREQ=DAILY / WEEKLY，配合 INTERVAL、COUNT、UNTIL
//   - EXDATE 指定的日期被排除
//
// 整个文件共用一份展开额度：去重后的日期不超过 icsMaxDates，
// 展开过程中访问的日期（含重复）不超过 icsMaxExpandedDates，超出即拒绝整个文件
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize = 2 * 1024 * 1024 // 2MB
	// icsMaxOccurrences 单个重复事件最多展开的次数
	icsMaxOccurrences = 730
	// icsMaxDates 单次导入最多产生的休息日数
	icsMaxDates = 730
	// icsMaxExpandedDates 单次导入最多展开的日期数（含重叠事件产生的重复日期）
	icsMaxExpandedDates = 10 * icsMaxDates
)

// ErrICSTooManyDates 日历展开后的日期超过单次导入上限
var ErrICSTooManyDates = fmt.Errorf("日历文件包含的日期过多（上限 %d 天）", icsMaxDates)

// offDayCandidate 从日历中解析出的休息日
type offDayCandidate struct {
	Date   time.Time
	Reason string
}

// ParseOffDaysICS 解析 ICS 内容，返回按日期升序去重后的休息日
func ParseOffDaysICS(reader io.Reader, loc *time.Location) ([]offDayCandidate, error) {
	cal, err := ics.ParseCalendar(io.LimitReader(reader, icsMaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("ICS 格式解析失败: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}

	seen := make(map[string]offDayCandidate)
	expanded := 0
	for _, evt := range cal.Events() {
		reason := eventSummary(evt)
		ok := expandEventDates(evt, loc, func(d time.Time) bool {
			expanded++
			if expanded > icsMaxExpandedDates {
				return false
			}
			key := planner.FormatDate(d)
			if _, dup := seen[key]; dup {
				return true
			}
			if len(seen) >= icsMaxDates {
				return false
			}
			seen[key] = offDayCandidate{Date: d, Reason: reason}
			return true
		})
		if !ok {
			return nil, ErrICSTooManyDates
		}
	}

	result := make([]offDayCandidate, 0, len(seen))
	for _, c := range seen {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// expandEventDates 依次把单个 VEVENT 覆盖的日历日期（UTC 零点）交给 add；
// add 返回 false 时立即停止并返回 false
func expandEventDates(evt *ics.VEvent, loc *time.Location, add func(time.Time) bool) bool {
	start, allDay, err := parseICSDateTime(evt, ics.ComponentPropertyDtStart, loc)
	if err != nil {
		return true
	}
	end, _, err := parseICSDateTime(evt, ics.ComponentPropertyDtEnd, loc)
	if err != nil || !end.After(start) {
		end = start
	}

	// 单次发生所覆盖的天数
	spanDays := planner.DaysBetween(planner.DateOf(start, loc), planner.DateOf(end, loc))
	if allDay && spanDays > 0 {
		spanDays-- // 全天事件 DTEND 为开区间
	}
	if spanDays < 0 {
		spanDays = 0
	}
	if spanDays > icsMaxDates {
		spanDays = icsMaxDates
	}

	exDates := parseExDates(evt, loc)
	var occurrences []time.Time
	if prop := evt.GetProperty(ics.ComponentPropertyRrule); prop != nil {
		occurrences = expandRRule(parseRRule(prop.Value), start)
	} else {
		occurrences = []time.Time{start}
	}

	for _, occ := range occurrences {
		first := planner.DateOf(occ, loc)
		if exDates[planner.FormatDate(first)] {
			continue
		}
		for i := 0; i <= spanDays; i++ {
			if !add(planner.AddDays(first, i)) {
				return false
			}
		}
	}
	return true
}

// rruleParams RRULE 解析结果
type rruleParams struct {
	freq     string
	interval int
	count    int
	until    time.Time
}

// parseRRule 解析 RRULE 字符串（如 FREQ=WEEKLY;COUNT=16;INTERVAL=1）
func parseRRule(value string) rruleParams {
	r := rruleParams{interval: 1}
	for _, part := range strings.Split(value, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToUpper(kv[0]) {
		case "FREQ":
			r.freq = strings.ToUpper(kv[1])
		case "INTERVAL":
			fmt.Sscanf(kv[1], "%d", &r.interval)
		case "COUNT":
			fmt.Sscanf(kv[1], "%d", &r.count)
		case "UNTIL":
			t, err := time.Parse("20060102T150405Z", kv[1])
			if err != nil {
				t, _ = time.Parse("20060102", kv[1])
				if !t.IsZero() {
					t = t.Add(24*time.Hour - time.Second) // 仅日期时包含当天
				}
			}
			r.until = t
		}
	}
	if r.interval < 1 {
		r.interval = 1
	}
	return r
}

// expandRRule 生成重复事件的每次发生时间；不支持的 FREQ 视为单次事件
func expandRRule(rule rruleParams, start time.Time) []time.Time {
	var step func(time.Time) time.Time
	switch rule.freq {
	case "DAILY":
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, rule.interval) }
	case "WEEKLY":
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 7*rule.interval) }
	default:
		return []time.Time{start}
	}

	limit := icsMaxOccurrences
	if rule.count > 0 && rule.count < limit {
		limit = rule.count
	}
	if rule.count == 0 && rule.until.IsZero() {
		// 无终止条件的重复事件只展开一年
		rule.until = start.AddDate(1, 0, 0)
	}

	var result []time.Time
	for current := start; len(result) < limit; current = step(current) {
		if !rule.until.IsZero() && current.After(rule.until) {
			break
		}
		result = append(result, current)
	}
	return result
}

// parseExDates 解析事件中所有 EXDATE（key 为 ISO 日期）
func parseExDates(evt *ics.VEvent, loc *time.Location) map[string]bool {
	exDates := make(map[string]bool)
	for _, prop := range evt.Properties {
		if prop.IANAToken != string(ics.ComponentPropertyExdate) {
			continue
		}
		for _, raw := range strings.Split(prop.Value, ",") {
			if t, _, err := parseICSValue(raw, "", loc); err == nil {
				exDates[planner.FormatDate(planner.DateOf(t, loc))] = true
			}
		}
	}
	return exDates
}

// parseICSDateTime 从 VEVENT 中解析日期时间属性，allDay 表示值只有日期部分
func parseICSDateTime(evt *ics.VEvent, propName ics.ComponentProperty, loc *time.Location) (time.Time, bool, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, false, fmt.Errorf("missing property %s", propName)
	}

	tzid := ""
	for k, v := range prop.ICalParameters {
		if strings.ToUpper(k) == "TZID" && len(v) > 0 {
			tzid = v[0]
		}
	}
	return parseICSValue(prop.Value, tzid, loc)
}

func parseICSValue(val, tzid string, loc *time.Location) (time.Time, bool, error) {
	val = strings.TrimSpace(val)
	if t, err := time.Parse("20060102T150405Z", val); err == nil {
		return t.In(loc), false, nil
	}
	if t, err := time.Parse("20060102T150405", val); err == nil {
		zone := loc
		if tzid != "" {
			if tzLoc, err := time.LoadLocation(tzid); err == nil {
				zone = tzLoc
			}
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, zone).In(loc), false, nil
	}
	if t, err := time.Parse("20060102", val); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true, nil
	}
	return time.Time{}, false, fmt.Errorf("无法解析日期: %s", val)
}

func eventSummary(evt *ics.VEvent) string {
	summary := evt.GetProperty(ics.ComponentPropertySummary)
	if summary == nil {
		return ""
	}
	reason := strings.TrimSpace(summary.Value)
	if len([]rune(reason)) > 200 {
		reason = string([]rune(reason)[:200])
	}
	return reason
}
