package http_test

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	adapterHTTP "github.com/realmquest/engine/internal/adapters/handler/http"
	"github.com/realmquest/engine/internal/adapters/handler/http/middleware"
	"github.com/realmquest/engine/internal/core/domain"
	"github.com/realmquest/engine/internal/core/services"
)

// testUserMiddleware stands in for the JWT middleware: the user id travels in
// a plain header so tests do not have to mint tokens.
func testUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-User-ID")
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user"})
			return
		}
		c.Set(middleware.ContextUserIDKey, id)
		c.Next()
	}
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type memStores struct {
	users         map[string]*domain.User
	profiles      map[string]*domain.Profile
	habits        map[string]*domain.Habit
	projects      map[string]*domain.Project
	areas         map[string]*domain.Area
	archive       []*domain.ArchiveEntry
	resources     map[string]*domain.Resource
	friendships   map[string]*domain.Friendship
	notifications map[string]*domain.Notification
}

func newMemStores() *memStores {
	return &memStores{
		users:         make(map[string]*domain.User),
		profiles:      make(map[string]*domain.Profile),
		habits:        make(map[string]*domain.Habit),
		projects:      make(map[string]*domain.Project),
		areas:         make(map[string]*domain.Area),
		resources:     make(map[string]*domain.Resource),
		friendships:   make(map[string]*domain.Friendship),
		notifications: make(map[string]*domain.Notification),
	}
}

type memUserRepo struct{ s *memStores }

func (r memUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = u
	return nil
}

func (r memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type memProfileRepo struct{ s *memStores }

func (r memProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	r.s.profiles[p.ID] = p
	return nil
}

func (r memProfileRepo) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (r memProfileRepo) Update(_ context.Context, p *domain.Profile) error {
	if _, ok := r.s.profiles[p.ID]; !ok {
		return domain.ErrProfileNotFound
	}
	r.s.profiles[p.ID] = p
	return nil
}

func (r memProfileRepo) Search(_ context.Context, query string, limit int) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, p := range r.s.profiles {
		if strings.Contains(strings.ToLower(p.Username), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memProfileRepo) ListByIDs(_ context.Context, ids []string) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, id := range ids {
		if p, ok := r.s.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type memHabitRepo struct{ s *memStores }

func (r memHabitRepo) Create(_ context.Context, h *domain.Habit) error {
	r.s.habits[h.ID] = h
	return nil
}

func (r memHabitRepo) GetByID(_ context.Context, id string) (*domain.Habit, error) {
	h, ok := r.s.habits[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return h, nil
}

func (r memHabitRepo) ListByUserID(_ context.Context, userID string) ([]*domain.Habit, error) {
	var out []*domain.Habit
	for _, h := range r.s.habits {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r memHabitRepo) Update(_ context.Context, h *domain.Habit) error {
	if _, ok := r.s.habits[h.ID]; !ok {
		return domain.ErrHabitNotFound
	}
	r.s.habits[h.ID] = h
	return nil
}

func (r memHabitRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.habits[id]; !ok {
		return domain.ErrHabitNotFound
	}
	delete(r.s.habits, id)
	return nil
}

type memProjectRepo struct{ s *memStores }

func (r memProjectRepo) Create(_ context.Context, p *domain.Project) error {
	r.s.projects[p.ID] = p
	return nil
}

func (r memProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	clone.Milestones = append([]domain.Milestone(nil), p.Milestones...)
	return &clone, nil
}

func (r memProjectRepo) ListActiveByUserID(_ context.Context, userID string) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range r.s.projects {
		if p.UserID == userID && !p.IsCompleted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r memProjectRepo) MarkCompleted(_ context.Context, id string) error {
	p, ok := r.s.projects[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	if p.IsCompleted {
		return domain.ErrProjectAlreadyCompleted
	}
	p.IsCompleted = true
	return nil
}

func (r memProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.s.projects, id)
	return nil
}

func (r memProjectRepo) GetMilestone(_ context.Context, milestoneID string) (*domain.Milestone, error) {
	for _, p := range r.s.projects {
		for i := range p.Milestones {
			if p.Milestones[i].ID == milestoneID {
				m := p.Milestones[i]
				return &m, nil
			}
		}
	}
	return nil, domain.ErrMilestoneNotFound
}

func (r memProjectRepo) SetMilestoneDone(_ context.Context, milestoneID string, done bool) (*domain.Milestone, error) {
	for _, p := range r.s.projects {
		for i := range p.Milestones {
			if p.Milestones[i].ID == milestoneID {
				p.Milestones[i].IsDone = done
				m := p.Milestones[i]
				return &m, nil
			}
		}
	}
	return nil, domain.ErrMilestoneNotFound
}

type memAreaRepo struct{ s *memStores }

func (r memAreaRepo) Create(_ context.Context, a *domain.Area) error {
	r.s.areas[a.ID] = a
	return nil
}

func (r memAreaRepo) GetByID(_ context.Context, id string) (*domain.Area, error) {
	a, ok := r.s.areas[id]
	if !ok {
		return nil, domain.ErrAreaNotFound
	}
	return a, nil
}

func (r memAreaRepo) ListByUserID(_ context.Context, userID string) ([]*domain.Area, error) {
	var out []*domain.Area
	for _, a := range r.s.areas {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAreaRepo) Update(_ context.Context, a *domain.Area) error {
	if _, ok := r.s.areas[a.ID]; !ok {
		return domain.ErrAreaNotFound
	}
	r.s.areas[a.ID] = a
	return nil
}

func (r memAreaRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.areas[id]; !ok {
		return domain.ErrAreaNotFound
	}
	delete(r.s.areas, id)
	return nil
}

type memArchiveRepo struct{ s *memStores }

func (r *memArchiveRepo) Append(_ context.Context, e *domain.ArchiveEntry) error {
	r.s.archive = append(r.s.archive, e)
	return nil
}

func (r *memArchiveRepo) ListByUserID(_ context.Context, userID string) ([]*domain.ArchiveEntry, error) {
	var out []*domain.ArchiveEntry
	for _, e := range r.s.archive {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memResourceRepo struct{ s *memStores }

func (r memResourceRepo) Create(_ context.Context, res *domain.Resource) error {
	r.s.resources[res.ID] = res
	return nil
}

func (r memResourceRepo) GetByID(_ context.Context, id string) (*domain.Resource, error) {
	res, ok := r.s.resources[id]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}
	return res, nil
}

func (r memResourceRepo) ListByUserID(_ context.Context, userID string) ([]*domain.Resource, error) {
	var out []*domain.Resource
	for _, res := range r.s.resources {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r memResourceRepo) Update(_ context.Context, res *domain.Resource) error {
	if _, ok := r.s.resources[res.ID]; !ok {
		return domain.ErrResourceNotFound
	}
	r.s.resources[res.ID] = res
	return nil
}

func (r memResourceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.resources[id]; !ok {
		return domain.ErrResourceNotFound
	}
	delete(r.s.resources, id)
	return nil
}

type memFriendshipRepo struct{ s *memStores }

func (r memFriendshipRepo) Create(_ context.Context, f *domain.Friendship) error {
	r.s.friendships[f.ID] = f
	return nil
}

func (r memFriendshipRepo) GetByID(_ context.Context, id string) (*domain.Friendship, error) {
	f, ok := r.s.friendships[id]
	if !ok {
		return nil, domain.ErrFriendshipNotFound
	}
	return f, nil
}

func (r memFriendshipRepo) ListByUserID(_ context.Context, userID string) ([]*domain.Friendship, error) {
	var out []*domain.Friendship
	for _, f := range r.s.friendships {
		if f.UserID == userID || f.FriendID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r memFriendshipRepo) Update(_ context.Context, f *domain.Friendship) error {
	if _, ok := r.s.friendships[f.ID]; !ok {
		return domain.ErrFriendshipNotFound
	}
	r.s.friendships[f.ID] = f
	return nil
}

func (r memFriendshipRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.friendships[id]; !ok {
		return domain.ErrFriendshipNotFound
	}
	delete(r.s.friendships, id)
	return nil
}

type memNotificationRepo struct{ s *memStores }

func (r memNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.s.notifications[n.ID] = n
	return nil
}

func (r memNotificationRepo) GetByID(_ context.Context, id string) (*domain.Notification, error) {
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, domain.ErrNotificationNotFound
	}
	return n, nil
}

func (r memNotificationRepo) ListByUserID(_ context.Context, userID string) ([]*domain.Notification, error) {
	out := []*domain.Notification{}
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r memNotificationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.notifications[id]; !ok {
		return domain.ErrNotificationNotFound
	}
	delete(r.s.notifications, id)
	return nil
}

// appFixture wires the whole service graph over the in-memory stores, so
// handler tests exercise real services end to end.
type appFixture struct {
	stores *memStores

	profiles  *services.ProfileService
	habits    *services.HabitService
	quests    *services.QuestService
	areas     *services.AreaService
	resources *services.ResourceService
	archives  *services.ArchiveService
	social    *services.SocialService
}

func newAppFixture(today string) *appFixture {
	s := newMemStores()

	profiles := services.NewProfileService(memProfileRepo{s}, memAreaRepo{s}, memUserRepo{s})
	habits := services.NewHabitService(memHabitRepo{s}, memAreaRepo{s}, profiles, fixedClock{now: day(today)})
	quests := services.NewQuestService(memProjectRepo{s}, memAreaRepo{s}, &memArchiveRepo{s}, profiles)
	areas := services.NewAreaService(memAreaRepo{s})
	resources := services.NewResourceService(memResourceRepo{s}, &memArchiveRepo{s})
	archives := services.NewArchiveService(&memArchiveRepo{s})
	social := services.NewSocialService(memFriendshipRepo{s}, memNotificationRepo{s}, memProfileRepo{s}, habits)

	return &appFixture{
		stores:    s,
		profiles:  profiles,
		habits:    habits,
		quests:    quests,
		areas:     areas,
		resources: resources,
		archives:  archives,
		social:    social,
	}
}

func (f *appFixture) seedProfile(userID, username string) *domain.Profile {
	p, err := domain.NewProfile(userID, username)
	if err != nil {
		panic(err)
	}
	f.stores.profiles[p.ID] = p
	return p
}

func (f *appFixture) router() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	group := r.Group("/api/v1")
	group.Use(testUserMiddleware())

	adapterHTTP.NewProfileHandler(f.profiles, nil).RegisterRoutes(group)
	adapterHTTP.NewHabitHandler(f.habits).RegisterRoutes(group)
	adapterHTTP.NewQuestHandler(f.quests).RegisterRoutes(group)
	adapterHTTP.NewAreaHandler(f.areas).RegisterRoutes(group)
	adapterHTTP.NewResourceHandler(f.resources).RegisterRoutes(group)
	adapterHTTP.NewArchiveHandler(f.archives).RegisterRoutes(group)
	adapterHTTP.NewSocialHandler(f.social).RegisterRoutes(group)

	return r
}
