package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/praveensharma0809/planner-app/internal/planner"
)

// planFile planctl 的 YAML 输入
type planFile struct {
	Today        string        `yaml:"today"`
	DailyMinutes int           `yaml:"daily_minutes"`
	ExamDate     string        `yaml:"exam_date"`
	Mode         string        `yaml:"mode"`
	Boost        bool          `yaml:"boost"`
	OffDays      []string      `yaml:"off_days"`
	Subjects     []subjectFile `yaml:"subjects"`
}

type subjectFile struct {
	ID                 string `yaml:"id"`
	Name               string `yaml:"name"`
	TotalItems         int    `yaml:"total_items"`
	CompletedItems     int    `yaml:"completed_items"`
	AvgDurationMinutes int    `yaml:"avg_duration_minutes"`
	Deadline           string `yaml:"deadline"`
	Priority           int    `yaml:"priority"`
	Mandatory          bool   `yaml:"mandatory"`
}

// planInput 解析后的排程输入
type planInput struct {
	subjects []planner.Subject
	daily    int
	today    time.Time
	mode     planner.Mode
	opts     planner.Options
}

func loadPlanFile(path string) (*planFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("plan file %s is empty", path)
	}
	var pf planFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse plan file %s: %w", path, err)
	}
	return &pf, nil
}

// toInput 校验并转换为核心输入；modeOverride 非空时覆盖文件中的 mode
func (pf *planFile) toInput(modeOverride string, now time.Time) (*planInput, error) {
	if pf.DailyMinutes < 0 {
		return nil, errors.New("daily_minutes must not be negative")
	}

	modeStr := pf.Mode
	if modeOverride != "" {
		modeStr = modeOverride
	}
	mode, err := planner.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("mode %q: %w", modeStr, err)
	}

	today := planner.DateOf(now, time.Local)
	if pf.Today != "" {
		t, ok := planner.ParseDate(pf.Today)
		if !ok {
			return nil, fmt.Errorf("today %q is not a valid date", pf.Today)
		}
		today = t
	}

	if pf.ExamDate != "" {
		if _, ok := planner.ParseDate(pf.ExamDate); !ok {
			return nil, fmt.Errorf("exam_date %q is not a valid date", pf.ExamDate)
		}
	}

	subjects := make([]planner.Subject, 0, len(pf.Subjects))
	for i, s := range pf.Subjects {
		id := s.ID
		if id == "" {
			id = fmt.Sprintf("subject-%d", i+1)
		}
		name := s.Name
		if name == "" {
			name = id
		}
		priority := s.Priority
		if priority == 0 {
			priority = 3
		}
		subjects = append(subjects, planner.Subject{
			ID:                 id,
			Name:               name,
			TotalItems:         s.TotalItems,
			CompletedItems:     s.CompletedItems,
			AvgDurationMinutes: s.AvgDurationMinutes,
			Deadline:           s.Deadline,
			Priority:           priority,
			Mandatory:          s.Mandatory,
		})
	}

	return &planInput{
		subjects: subjects,
		daily:    pf.DailyMinutes,
		today:    today,
		mode:     mode,
		opts: planner.Options{
			ExamDate:          pf.ExamDate,
			OffDays:           planner.NewOffDays(pf.OffDays...),
			BoostAutoCapacity: pf.Boost,
		},
	}, nil
}
