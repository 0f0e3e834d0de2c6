package services_test

import (
	"context"
	"strings"
	"time"

	"github.com/realmquest/engine/internal/core/domain"
)

func ptr[T any](v T) *T {
	return &v
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// fixedClock pins "today" so streak branches are deterministic.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type mockProfileRepo struct {
	store         map[string]*domain.Profile
	simulateError error
	updateCalls   int
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{store: make(map[string]*domain.Profile)}
}

func (m *mockProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *p
	m.store[p.ID] = &clone
	return nil
}

func (m *mockProfileRepo) GetByID(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	p, ok := m.store[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[p.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	m.updateCalls++
	clone := *p
	m.store[p.ID] = &clone
	return nil
}

func (m *mockProfileRepo) Search(ctx context.Context, query string, limit int) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, p := range m.store {
		if strings.Contains(strings.ToLower(p.Username), strings.ToLower(query)) {
			clone := *p
			out = append(out, &clone)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *mockProfileRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, id := range ids {
		if p, ok := m.store[id]; ok {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

type mockHabitRepo struct {
	store         map[string]*domain.Habit
	simulateError error
}

func newMockHabitRepo() *mockHabitRepo {
	return &mockHabitRepo{store: make(map[string]*domain.Habit)}
}

func (m *mockHabitRepo) Create(ctx context.Context, h *domain.Habit) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *h
	m.store[h.ID] = &clone
	return nil
}

func (m *mockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	h, ok := m.store[id]
	if !ok || h.DeletedAt != nil {
		return nil, domain.ErrHabitNotFound
	}
	clone := *h
	return &clone, nil
}

func (m *mockHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var out []*domain.Habit
	for _, h := range m.store {
		if h.UserID == userID && h.DeletedAt == nil {
			clone := *h
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *mockHabitRepo) Update(ctx context.Context, h *domain.Habit) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[h.ID]; !ok {
		return domain.ErrHabitNotFound
	}
	h.Version++
	clone := *h
	m.store[h.ID] = &clone
	return nil
}

func (m *mockHabitRepo) Delete(ctx context.Context, id string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	h, ok := m.store[id]
	if !ok {
		return domain.ErrHabitNotFound
	}
	now := time.Now().UTC()
	h.DeletedAt = &now
	return nil
}

type mockAreaRepo struct {
	store map[string]*domain.Area
}

func newMockAreaRepo() *mockAreaRepo {
	return &mockAreaRepo{store: make(map[string]*domain.Area)}
}

func (m *mockAreaRepo) Create(ctx context.Context, a *domain.Area) error {
	clone := *a
	m.store[a.ID] = &clone
	return nil
}

func (m *mockAreaRepo) GetByID(ctx context.Context, id string) (*domain.Area, error) {
	a, ok := m.store[id]
	if !ok {
		return nil, domain.ErrAreaNotFound
	}
	clone := *a
	return &clone, nil
}

func (m *mockAreaRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Area, error) {
	var out []*domain.Area
	for _, a := range m.store {
		if a.UserID == userID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *mockAreaRepo) Update(ctx context.Context, a *domain.Area) error {
	if _, ok := m.store[a.ID]; !ok {
		return domain.ErrAreaNotFound
	}
	clone := *a
	m.store[a.ID] = &clone
	return nil
}

func (m *mockAreaRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.store[id]; !ok {
		return domain.ErrAreaNotFound
	}
	delete(m.store, id)
	return nil
}

type mockProjectRepo struct {
	store         map[string]*domain.Project
	simulateError error
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{store: make(map[string]*domain.Project)}
}

func (m *mockProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *p
	clone.Milestones = append([]domain.Milestone(nil), p.Milestones...)
	m.store[p.ID] = &clone
	return nil
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	clone.Milestones = append([]domain.Milestone(nil), p.Milestones...)
	return &clone, nil
}

func (m *mockProjectRepo) ListActiveByUserID(ctx context.Context, userID string) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range m.store {
		if p.UserID == userID && !p.IsCompleted {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *mockProjectRepo) MarkCompleted(ctx context.Context, id string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	p, ok := m.store[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	p.IsCompleted = true
	return nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.store[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockProjectRepo) GetMilestone(ctx context.Context, milestoneID string) (*domain.Milestone, error) {
	for _, p := range m.store {
		for i := range p.Milestones {
			if p.Milestones[i].ID == milestoneID {
				clone := p.Milestones[i]
				return &clone, nil
			}
		}
	}
	return nil, domain.ErrMilestoneNotFound
}

func (m *mockProjectRepo) SetMilestoneDone(ctx context.Context, milestoneID string, done bool) (*domain.Milestone, error) {
	for _, p := range m.store {
		for i := range p.Milestones {
			if p.Milestones[i].ID == milestoneID {
				p.Milestones[i].IsDone = done
				clone := p.Milestones[i]
				return &clone, nil
			}
		}
	}
	return nil, domain.ErrMilestoneNotFound
}

type mockArchiveRepo struct {
	entries       []*domain.ArchiveEntry
	simulateError error
}

func newMockArchiveRepo() *mockArchiveRepo {
	return &mockArchiveRepo{}
}

func (m *mockArchiveRepo) Append(ctx context.Context, e *domain.ArchiveEntry) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *e
	m.entries = append(m.entries, &clone)
	return nil
}

func (m *mockArchiveRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.ArchiveEntry, error) {
	var out []*domain.ArchiveEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockUserRepo struct {
	store map[string]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{store: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range m.store {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	clone := *u
	m.store[u.ID] = &clone
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type mockFriendshipRepo struct {
	store map[string]*domain.Friendship
}

func newMockFriendshipRepo() *mockFriendshipRepo {
	return &mockFriendshipRepo{store: make(map[string]*domain.Friendship)}
}

func (m *mockFriendshipRepo) Create(ctx context.Context, f *domain.Friendship) error {
	clone := *f
	m.store[f.ID] = &clone
	return nil
}

func (m *mockFriendshipRepo) GetByID(ctx context.Context, id string) (*domain.Friendship, error) {
	f, ok := m.store[id]
	if !ok {
		return nil, domain.ErrFriendshipNotFound
	}
	clone := *f
	return &clone, nil
}

func (m *mockFriendshipRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Friendship, error) {
	var out []*domain.Friendship
	for _, f := range m.store {
		if f.UserID == userID || f.FriendID == userID {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *mockFriendshipRepo) Update(ctx context.Context, f *domain.Friendship) error {
	if _, ok := m.store[f.ID]; !ok {
		return domain.ErrFriendshipNotFound
	}
	clone := *f
	m.store[f.ID] = &clone
	return nil
}

func (m *mockFriendshipRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.store[id]; !ok {
		return domain.ErrFriendshipNotFound
	}
	delete(m.store, id)
	return nil
}

type mockNotificationRepo struct {
	store map[string]*domain.Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{store: make(map[string]*domain.Notification)}
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	clone := *n
	m.store[n.ID] = &clone
	return nil
}

func (m *mockNotificationRepo) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	n, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	clone := *n
	return &clone, nil
}

func (m *mockNotificationRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range m.store {
		if n.UserID == userID {
			clone := *n
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotificationNotFound
	}
	delete(m.store, id)
	return nil
}
