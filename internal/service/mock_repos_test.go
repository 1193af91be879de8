package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/praveensharma0809/planner-app/internal/model"
	"github.com/praveensharma0809/planner-app/internal/repository"
	pkgerrors "github.com/praveensharma0809/planner-app/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return pkgerrors.ErrDuplicateKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.UserID] = user
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
	order    []string
	seq      int
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.SubjectID == "" {
		m.seq++
		subject.SubjectID = fmt.Sprintf("subject-%d", m.seq)
	}
	m.subjects[subject.SubjectID] = subject
	m.order = append(m.order, subject.SubjectID)
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, userID, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok && s.UserID == userID {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) ListByUser(_ context.Context, userID string, includeArchived bool) ([]model.Subject, error) {
	var result []model.Subject
	for _, id := range m.order {
		s, ok := m.subjects[id]
		if !ok || s.UserID != userID {
			continue
		}
		if s.Archived && !includeArchived {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSubjectRepo) CountOwned(_ context.Context, userID string, ids []string) (int64, error) {
	var count int64
	for _, id := range ids {
		if s, ok := m.subjects[id]; ok && s.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	stored, ok := m.subjects[subject.SubjectID]
	if !ok || stored.UserID != subject.UserID || stored.Version != subject.Version {
		return pkgerrors.ErrOptimisticLock
	}
	cp := *subject
	cp.Version++
	m.subjects[subject.SubjectID] = &cp
	subject.Version = cp.Version
	return nil
}

func (m *mockSubjectRepo) SetArchived(_ context.Context, userID, id string, archived bool) error {
	s, ok := m.subjects[id]
	if !ok || s.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	s.Archived = archived
	s.Version++
	return nil
}

func (m *mockSubjectRepo) AdjustCompleted(_ context.Context, userID, id string, delta int) error {
	s, ok := m.subjects[id]
	if !ok || s.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	s.CompletedItems += delta
	if s.CompletedItems < 0 {
		s.CompletedItems = 0
	}
	s.Version++
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, userID, id string) error {
	s, ok := m.subjects[id]
	if !ok || s.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(m.subjects, id)
	return nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks    map[string]*model.Task
	subjects *mockSubjectRepo // 用于模拟 Preload("Subject")
	seq      int
}

func newMockTaskRepo(subjects *mockSubjectRepo) *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task), subjects: subjects}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.TaskID == "" {
		m.seq++
		task.TaskID = fmt.Sprintf("task-%d", m.seq)
	}
	cp := *task
	m.tasks[task.TaskID] = &cp
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, userID, id string) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok && t.UserID == userID {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) SetCompleted(_ context.Context, task *model.Task, completed bool, at *time.Time) (bool, error) {
	stored, ok := m.tasks[task.TaskID]
	if !ok || stored.UserID != task.UserID || stored.Completed == completed {
		return false, nil
	}
	stored.Completed = completed
	stored.CompletedAt = at
	task.Completed = completed
	task.CompletedAt = at
	return true, nil
}

func (m *mockTaskRepo) Reschedule(_ context.Context, userID, id string, date time.Time) error {
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	t.ScheduledDate = date
	return nil
}

func (m *mockTaskRepo) DeleteBySubject(_ context.Context, userID, subjectID string) (int64, error) {
	var n int64
	for id, t := range m.tasks {
		if t.UserID == userID && t.SubjectID == subjectID {
			delete(m.tasks, id)
			n++
		}
	}
	return n, nil
}

func (m *mockTaskRepo) ReplacePlanGenerated(ctx context.Context, userID string, from time.Time, tasks []model.Task) (int64, error) {
	var deleted int64
	for id, t := range m.tasks {
		if t.UserID == userID && t.IsPlanGenerated && !t.ScheduledDate.Before(from) {
			delete(m.tasks, id)
			deleted++
		}
	}
	for i := range tasks {
		_ = m.Create(ctx, &tasks[i])
	}
	return deleted, nil
}

func (m *mockTaskRepo) ListByDateRange(_ context.Context, userID string, from, to time.Time) ([]model.Task, error) {
	return m.filter(func(t *model.Task) bool {
		return t.UserID == userID && !t.ScheduledDate.Before(from) && !t.ScheduledDate.After(to)
	}), nil
}

func (m *mockTaskRepo) ListFrom(_ context.Context, userID string, from time.Time) ([]model.Task, error) {
	return m.filter(func(t *model.Task) bool {
		return t.UserID == userID && !t.ScheduledDate.Before(from)
	}), nil
}

func (m *mockTaskRepo) ListBacklog(_ context.Context, userID string, before time.Time) ([]model.Task, error) {
	return m.filter(func(t *model.Task) bool {
		return t.UserID == userID && !t.Completed && t.ScheduledDate.Before(before)
	}), nil
}

func (m *mockTaskRepo) CountByDay(_ context.Context, userID string, from, to time.Time) ([]repository.DayCount, error) {
	byDay := make(map[time.Time]*repository.DayCount)
	for _, t := range m.filter(func(t *model.Task) bool {
		return t.UserID == userID && !t.ScheduledDate.Before(from) && !t.ScheduledDate.After(to)
	}) {
		c, ok := byDay[t.ScheduledDate]
		if !ok {
			c = &repository.DayCount{Date: t.ScheduledDate}
			byDay[t.ScheduledDate] = c
		}
		c.Total++
		if t.Completed {
			c.Completed++
		}
	}
	result := make([]repository.DayCount, 0, len(byDay))
	for _, c := range byDay {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// filter 按日期、优先级、ID 排序并填充 Subject 关联
func (m *mockTaskRepo) filter(keep func(*model.Task) bool) []model.Task {
	var result []model.Task
	for _, t := range m.tasks {
		if !keep(t) {
			continue
		}
		cp := *t
		if s, ok := m.subjects.subjects[cp.SubjectID]; ok {
			cp.Subject = s
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].ScheduledDate.Equal(result[j].ScheduledDate) {
			return result[i].ScheduledDate.Before(result[j].ScheduledDate)
		}
		if result[i].Priority != result[j].Priority {
			return result[i].Priority < result[j].Priority
		}
		return result[i].TaskID < result[j].TaskID
	})
	return result
}

// ── Mock OffDayRepository ──

type mockOffDayRepo struct {
	offDays map[string]*model.OffDay
	seq     int
}

func newMockOffDayRepo() *mockOffDayRepo {
	return &mockOffDayRepo{offDays: make(map[string]*model.OffDay)}
}

func (m *mockOffDayRepo) Create(_ context.Context, offDay *model.OffDay) error {
	for _, o := range m.offDays {
		if o.UserID == offDay.UserID && o.Date.Equal(offDay.Date) {
			return pkgerrors.ErrDuplicateKey
		}
	}
	m.seq++
	offDay.OffDayID = fmt.Sprintf("off-%d", m.seq)
	cp := *offDay
	m.offDays[offDay.OffDayID] = &cp
	return nil
}

func (m *mockOffDayRepo) ListByUser(_ context.Context, userID string) ([]model.OffDay, error) {
	var result []model.OffDay
	for _, o := range m.offDays {
		if o.UserID == userID {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockOffDayRepo) Delete(_ context.Context, userID, id string) error {
	o, ok := m.offDays[id]
	if !ok || o.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(m.offDays, id)
	return nil
}

// ── Mock PlanEventRepository ──

type mockPlanEventRepo struct {
	events []model.PlanEvent
}

func newMockPlanEventRepo() *mockPlanEventRepo {
	return &mockPlanEventRepo{}
}

func (m *mockPlanEventRepo) Create(_ context.Context, event *model.PlanEvent) error {
	event.PlanEventID = fmt.Sprintf("event-%d", len(m.events)+1)
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Date(2024, 1, 1, 0, 0, len(m.events), 0, time.UTC)
	}
	m.events = append(m.events, *event)
	return nil
}

func (m *mockPlanEventRepo) ListRecent(_ context.Context, userID string, limit int) ([]model.PlanEvent, error) {
	var result []model.PlanEvent
	for i := len(m.events) - 1; i >= 0 && len(result) < limit; i-- {
		if m.events[i].UserID == userID {
			result = append(result, m.events[i])
		}
	}
	return result, nil
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	revoked map[string]time.Duration
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{revoked: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.revoked[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := m.revoked[jti]
	return ok, nil
}

// ── 测试辅助 ──

// testToday 所有服务测试使用的"今天"
var testToday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type mockRepos struct {
	user      *mockUserRepo
	subject   *mockSubjectRepo
	task      *mockTaskRepo
	offDay    *mockOffDayRepo
	planEvent *mockPlanEventRepo
}

// newMockRepository 创建未绑定数据库的聚合，Transaction 直接在 mock 上执行
func newMockRepository() (*repository.Repository, *mockRepos) {
	subjects := newMockSubjectRepo()
	m := &mockRepos{
		user:      newMockUserRepo(),
		subject:   subjects,
		task:      newMockTaskRepo(subjects),
		offDay:    newMockOffDayRepo(),
		planEvent: newMockPlanEventRepo(),
	}
	repo := &repository.Repository{
		User:      m.user,
		Subject:   m.subject,
		Task:      m.task,
		OffDay:    m.offDay,
		PlanEvent: m.planEvent,
	}
	return repo, m
}

// newTestCalendar 固定在 testToday 中午的 UTC 日历
func newTestCalendar() calendar {
	return calendar{
		now: func() time.Time { return testToday.Add(12 * time.Hour) },
		loc: time.UTC,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedUser 写入一个档案完整的用户
func seedUser(m *mockRepos, daily int) *model.User {
	user := &model.User{
		UserID:                "user-1",
		Email:                 "student@example.com",
		FullName:              "Test Student",
		PrimaryExam:           "NEET",
		DailyAvailableMinutes: daily,
	}
	m.user.users[user.UserID] = user
	return user
}

// seedSubject 写入科目；未指定 ID 时自动生成
func seedSubject(m *mockRepos, s model.Subject) *model.Subject {
	if s.UserID == "" {
		s.UserID = "user-1"
	}
	if s.Priority == 0 {
		s.Priority = 3
	}
	if s.Version == 0 {
		s.Version = 1
	}
	_ = m.subject.Create(context.Background(), &s)
	return m.subject.subjects[s.SubjectID]
}
