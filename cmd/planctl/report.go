package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/praveensharma0809/planner-app/internal/planner"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	statusColors = map[string]lipgloss.Color{
		string(planner.StatusSafe):        "#4CAF50",
		string(planner.StatusTight):       "#FFC107",
		string(planner.StatusAtRisk):      "#FF9800",
		string(planner.StatusImpossible):  "#FF6B6B",
		string(planner.KindReady):         "#4CAF50",
		string(planner.KindOverload):      "#FF6B6B",
		string(planner.KindNoSubjects):    "#888888",
		string(planner.OverallFeasible):   "#4CAF50",
		string(planner.OverallOverloaded): "#FF6B6B",
	}
)

func badge(s string) string {
	color, ok := statusColors[s]
	if !ok {
		color = "#AAAAAA"
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(s)
}

func formatRate(v float64) string {
	if math.IsInf(v, 0) {
		return "∞"
	}
	return fmt.Sprintf("%.1f", v)
}

// renderReport 渲染一次分析的完整报告
func renderReport(in *planInput, status planner.PlanStatus, maxDays int) string {
	var b strings.Builder

	header := fmt.Sprintf("%s  %s  mode=%s  today=%s  daily=%dmin",
		titleStyle.Render("Study plan"),
		badge(string(status.Kind())),
		in.mode,
		planner.FormatDate(in.today),
		in.daily,
	)
	b.WriteString(header)
	b.WriteString("\n")

	switch st := status.(type) {
	case planner.NoSubjects:
		b.WriteString(mutedStyle.Render("No subjects to plan."))
		b.WriteString("\n")
	case planner.Overloaded:
		b.WriteString(renderOverload(st.Result))
		b.WriteString(mutedStyle.Render("Scheduling blocked in strict mode. Apply a suggestion or rerun with -mode auto."))
		b.WriteString("\n")
	case planner.Ready:
		b.WriteString(renderOverload(st.Overload))
		b.WriteString(renderTasks(st, maxDays))
	}
	return b.String()
}

func renderOverload(r planner.OverloadResult) string {
	lines := []string{
		fmt.Sprintf("overall %s  burn rate %.2f  need %s/day of %d (gap %s)",
			badge(string(r.OverallStatus)),
			r.BurnRate,
			formatRate(r.TotalRequiredMinPerDay),
			r.AvailableMinPerDay,
			formatRate(r.CapacityGapMinPerDay),
		),
	}
	if r.SuggestedCapacity > r.CurrentCapacity {
		lines = append(lines, fmt.Sprintf("suggested capacity %d min/day", r.SuggestedCapacity))
	}
	for _, s := range r.Subjects {
		line := fmt.Sprintf("%-20s %-12s due %s  %3dd  %s min/day",
			s.Name, badge(string(s.Status)), s.EffectiveDeadline, s.AvailableDays, formatRate(s.RequiredMinutesPerDay))
		if hint := suggestionHint(s.Suggestions); hint != "" {
			line += "  " + mutedStyle.Render(hint)
		}
		lines = append(lines, line)
	}
	return boxStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func suggestionHint(s planner.Suggestions) string {
	var parts []string
	if s.ExtendDeadlineDays != nil {
		parts = append(parts, fmt.Sprintf("+%dd deadline", *s.ExtendDeadlineDays))
	}
	if s.ReduceItemsBy != nil {
		parts = append(parts, fmt.Sprintf("-%d items", *s.ReduceItemsBy))
	}
	if s.IncreaseDailyMinutesBy != nil {
		parts = append(parts, fmt.Sprintf("+%d min/day", *s.IncreaseDailyMinutesBy))
	}
	return strings.Join(parts, ", ")
}

// renderTasks 按日期分组输出任务；maxDays<=0 时不截断
func renderTasks(r planner.Ready, maxDays int) string {
	if r.TaskCount == 0 {
		return mutedStyle.Render("Nothing left to schedule.") + "\n"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s (%d tasks, capacity %d min/day)\n",
		titleStyle.Render("Schedule"), r.TaskCount, r.EffectiveCapacity))

	days, current, total := 0, "", 0
	for _, task := range r.Tasks {
		if task.ScheduledDate != current {
			if current != "" {
				b.WriteString(mutedStyle.Render(fmt.Sprintf("    total %d min", total)) + "\n")
			}
			days++
			if maxDays > 0 && days > maxDays {
				b.WriteString(mutedStyle.Render("  ...") + "\n")
				return b.String()
			}
			current, total = task.ScheduledDate, 0
			b.WriteString(current + "\n")
		}
		total += task.DurationMinutes
		b.WriteString(fmt.Sprintf("  %-28s %3d min\n", task.Title, task.DurationMinutes))
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("    total %d min", total)) + "\n")
	return b.String()
}
