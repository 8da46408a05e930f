package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"skillpath/internal/domain/event"
	"skillpath/internal/domain/professional"
	"skillpath/internal/domain/progress"
	"skillpath/internal/domain/roadmap"
	"skillpath/internal/domain/trend"
	"skillpath/internal/domain/user"
	"skillpath/internal/generation"

	"github.com/google/uuid"
)

// memStore backs the in-memory repositories below.
type memStore struct {
	mu           sync.Mutex
	users        map[uuid.UUID]user.User
	profiles     map[uuid.UUID]user.Profile
	paths        []roadmap.GrowthPath
	trackers     []progress.Tracker
	professional map[uuid.UUID]professional.Profile
	trends       []trend.Snapshot

	appendErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[uuid.UUID]user.User{},
		profiles:     map[uuid.UUID]user.Profile{},
		professional: map[uuid.UUID]professional.Profile{},
	}
}

func (s *memStore) addUser(name string) user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user.User{ID: uuid.New(), Email: name + "@example.com", Name: name, CreatedAt: time.Now().UTC()}
	s.users[u.ID] = u
	return u
}

func (s *memStore) addTracker(userID uuid.UUID, itemID string, t roadmap.ItemType, status progress.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tr := progress.Tracker{ID: uuid.New(), UserID: userID, ItemID: itemID, ItemType: t, ItemName: itemID, Status: status, CreatedAt: time.Now().UTC()}
	if status == progress.StatusCompleted {
		ts := time.Now().UTC()
		tr.CompletionDate = &ts
	}
	s.trackers = append(s.trackers, tr)
}

func (s *memStore) activePaths(userID uuid.UUID) []roadmap.GrowthPath {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []roadmap.GrowthPath
	for _, gp := range s.paths {
		if gp.UserID == userID && gp.IsActive {
			out = append(out, gp)
		}
	}
	return out
}

func (s *memStore) userTrackers(userID uuid.UUID) []progress.Tracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []progress.Tracker
	for _, t := range s.trackers {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}

// insertTrackersLocked skips item ids already tracked for the user.
func (s *memStore) insertTrackersLocked(userID uuid.UUID, rows []roadmap.NewTrackerRow) int {
	n := 0
	for _, r := range rows {
		dup := false
		for _, t := range s.trackers {
			if t.UserID == userID && t.ItemID == r.ItemID {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		s.trackers = append(s.trackers, progress.Tracker{
			ID: r.ID, UserID: userID, ItemID: r.ItemID, ItemType: r.ItemType, ItemName: r.ItemName,
			Status: progress.StatusNotStarted, CreatedAt: time.Now().UTC(),
		})
		n++
	}
	return n
}

func clonePath(gp roadmap.GrowthPath) roadmap.GrowthPath {
	gp.Roadmap.Phases = append([]roadmap.Phase(nil), gp.Roadmap.Phases...)
	return gp
}

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}
	u.CreatedAt = time.Now().UTC()
	r.users[u.ID] = u
	return u, nil
}

func (r memUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.NormalizeEmail(email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r memUsers) MarkOnboarded(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.OnboardingComplete = true
	r.users[id] = u
	return nil
}

type memStudentProfiles struct{ *memStore }

func (r memStudentProfiles) GetByUserID(_ context.Context, userID uuid.UUID) (user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return user.Profile{}, user.ErrProfileNotFound
	}
	return p, nil
}

func (r memStudentProfiles) Upsert(_ context.Context, p user.Profile) (user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.profiles[p.UserID]; ok {
		p.ID = existing.ID
	}
	p.UpdatedAt = time.Now().UTC()
	r.profiles[p.UserID] = p
	return p, nil
}

type memPaths struct{ *memStore }

func (r memPaths) GetActive(_ context.Context, userID uuid.UUID) (roadmap.GrowthPath, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, gp := range r.paths {
		if gp.UserID == userID && gp.IsActive {
			return clonePath(gp), nil
		}
	}
	return roadmap.GrowthPath{}, roadmap.ErrNoActivePath
}

func (r memPaths) CreateActive(_ context.Context, gp roadmap.GrowthPath, rows []roadmap.NewTrackerRow) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.paths {
		if r.paths[i].UserID == gp.UserID {
			r.paths[i].IsActive = false
		}
	}
	gp.IsActive = true
	r.paths = append(r.paths, clonePath(gp))
	return r.insertTrackersLocked(gp.UserID, rows), nil
}

func (r memPaths) AppendPhase(_ context.Context, gp roadmap.GrowthPath, expectedPhase int, rows []roadmap.NewTrackerRow) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return 0, r.appendErr
	}
	for i := range r.paths {
		p := r.paths[i]
		if p.ID == gp.ID && p.UserID == gp.UserID && p.IsActive {
			if p.Phase != expectedPhase {
				return 0, roadmap.ErrPhaseConflict
			}
			r.paths[i] = clonePath(gp)
			return r.insertTrackersLocked(gp.UserID, rows), nil
		}
	}
	return 0, roadmap.ErrPhaseConflict
}

type memTrackers struct{ *memStore }

func (r memTrackers) ListByUser(_ context.Context, userID uuid.UUID) ([]progress.Tracker, error) {
	return r.userTrackers(userID), nil
}

func (r memTrackers) GetByItem(_ context.Context, userID uuid.UUID, itemID string) (progress.Tracker, error) {
	for _, t := range r.userTrackers(userID) {
		if t.ItemID == itemID {
			return t, nil
		}
	}
	return progress.Tracker{}, progress.ErrNotFound
}

func (r memTrackers) Update(_ context.Context, t progress.Tracker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.trackers {
		if r.trackers[i].ID == t.ID {
			r.trackers[i] = t
			return nil
		}
	}
	return progress.ErrNotFound
}

type memProfessional struct{ *memStore }

func (r memProfessional) GetByUserID(_ context.Context, userID uuid.UUID) (professional.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.professional[userID]
	if !ok {
		return professional.Profile{}, professional.ErrNotFound
	}
	return p, nil
}

func (r memProfessional) Upsert(_ context.Context, p professional.Profile) (professional.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.professional[p.UserID] = p
	return p, nil
}

type memTrends struct{ *memStore }

func (r memTrends) Create(_ context.Context, s trend.Snapshot) (trend.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.Industry = trend.NormalizeIndustry(s.Industry)
	r.trends = append(r.trends, s)
	return s, nil
}

func (r memTrends) Latest(_ context.Context, industry string) (trend.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := trend.NormalizeIndustry(industry)
	for i := len(r.trends) - 1; i >= 0; i-- {
		if r.trends[i].Industry == key {
			return r.trends[i], nil
		}
	}
	return trend.Snapshot{}, trend.ErrNotFound
}

// fakeGen returns canned values. An error field makes the matching method
// return its fallback payload and that error, as generation.Service does.
type fakeGen struct {
	unavailable bool

	analysis    user.Analysis
	roadmap     roadmap.Roadmap
	phase       roadmap.Phase
	phaseErr    error
	bullets     []string
	bulletsErr  error
	message     string
	linkedIn    professional.LinkedIn
	linkedInErr error

	roadmapIn      generation.RoadmapInput
	extensionIn    generation.ExtensionInput
	encouragements []generation.EncouragementInput
	calls          map[string]int
}

func (g *fakeGen) called(name string) {
	if g.calls == nil {
		g.calls = map[string]int{}
	}
	g.calls[name]++
}

func (g *fakeGen) Available() bool { return !g.unavailable }

func (g *fakeGen) AnalyzeProfile(context.Context, generation.AnalysisInput) (user.Analysis, error) {
	g.called("analyze")
	return g.analysis, nil
}

func (g *fakeGen) GenerateRoadmap(_ context.Context, in generation.RoadmapInput) (roadmap.Roadmap, error) {
	g.called("roadmap")
	g.roadmapIn = in
	return g.roadmap, nil
}

func (g *fakeGen) ExtendRoadmap(_ context.Context, in generation.ExtensionInput) (roadmap.Phase, error) {
	g.called("extend")
	g.extensionIn = in
	if g.phaseErr != nil {
		return generation.FallbackPhase(in.Phase), g.phaseErr
	}
	return g.phase, nil
}

func (g *fakeGen) ResumeBullets(_ context.Context, in generation.BulletsInput) ([]string, error) {
	g.called("bullets")
	if g.bulletsErr != nil {
		return generation.FallbackBullets(in), g.bulletsErr
	}
	return g.bullets, nil
}

func (g *fakeGen) Encouragement(_ context.Context, in generation.EncouragementInput) (string, error) {
	g.called("encouragement")
	g.encouragements = append(g.encouragements, in)
	return g.message, nil
}

func (g *fakeGen) LinkedInContent(_ context.Context, in generation.LinkedInInput) (professional.LinkedIn, error) {
	g.called("linkedin")
	if g.linkedInErr != nil {
		return generation.FallbackLinkedIn(in), g.linkedInErr
	}
	return g.linkedIn, nil
}

type failingModel struct{ err error }

func (m failingModel) Generate(context.Context, string, generation.Options) (string, error) {
	return "", m.err
}

type fakeLocker struct {
	mu   sync.Mutex
	held map[string]string
	err  error
}

func (l *fakeLocker) TryLock(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return "", false, l.err
	}
	if l.held == nil {
		l.held = map[string]string{}
	}
	if _, ok := l.held[key]; ok {
		return "", false, nil
	}
	token := uuid.NewString()
	l.held[key] = token
	return token, true, nil
}

func (l *fakeLocker) Unlock(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == token {
		delete(l.held, key)
	}
	return nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c.data == nil {
		c.data = map[string][]byte{}
	}
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

type recordedEvents struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recordedEvents) Publish(_ context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordedEvents) types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
