package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/snapsite/snapsite-backend/internal/domain/entity"
	repo "github.com/snapsite/snapsite-backend/internal/domain/repository"
)

// In-memory repository implementations for service tests. A shared clock
// hands out strictly increasing timestamps so ordering assertions are stable.

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) tick() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

type memUsers struct {
	mu    sync.Mutex
	clock *fakeClock
	users map[string]*entity.User
}

func newMemUsers(clock *fakeClock) *memUsers {
	return &memUsers{clock: clock, users: map[string]*entity.User{}}
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.users {
		if e.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
		if e.Username == u.Username {
			return repo.ErrDuplicateUsername
		}
	}
	u.ID = uuid.NewString()
	now := m.clock.tick()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) GetByEmailOrUsername(_ context.Context, email, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email || u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

type memWishlist struct {
	mu      sync.Mutex
	clock   *fakeClock
	entries map[string]*entity.WishlistEntry
}

func newMemWishlist(clock *fakeClock) *memWishlist {
	return &memWishlist{clock: clock, entries: map[string]*entity.WishlistEntry{}}
}

func (m *memWishlist) Create(_ context.Context, e *entity.WishlistEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.entries {
		if x.UserID == e.UserID && x.TemplateSlug == e.TemplateSlug {
			return repo.ErrDuplicateWishlist
		}
	}
	e.ID = uuid.NewString()
	now := m.clock.tick()
	e.CreatedAt, e.UpdatedAt = now, now
	cp := *e
	m.entries[e.ID] = &cp
	return nil
}

func (m *memWishlist) DeleteBySlug(_ context.Context, userID, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, x := range m.entries {
		if x.UserID == userID && x.TemplateSlug == slug {
			delete(m.entries, id)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (m *memWishlist) ListByUser(_ context.Context, userID string) ([]entity.WishlistEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.WishlistEntry
	for _, x := range m.entries {
		if x.UserID == userID {
			out = append(out, *x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memWishlist) Exists(_ context.Context, userID, slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.entries {
		if x.UserID == userID && x.TemplateSlug == slug {
			return true, nil
		}
	}
	return false, nil
}

type memTemplates struct {
	mu        sync.Mutex
	clock     *fakeClock
	users     *memUsers
	templates map[string]*entity.SavedTemplate
}

func newMemTemplates(clock *fakeClock, users *memUsers) *memTemplates {
	return &memTemplates{clock: clock, users: users, templates: map[string]*entity.SavedTemplate{}}
}

func (m *memTemplates) owner(userID string) *entity.UserSummary {
	if m.users == nil {
		return nil
	}
	u, err := m.users.GetByID(context.Background(), userID)
	if err != nil {
		return nil
	}
	s := u.Summary()
	return &s
}

func (m *memTemplates) Create(_ context.Context, t *entity.SavedTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = uuid.NewString()
	now := m.clock.tick()
	t.CreatedAt, t.UpdatedAt = now, now
	cp := *t
	m.templates[t.ID] = &cp
	return nil
}

func (m *memTemplates) ListByUser(_ context.Context, userID string) ([]entity.SavedTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.SavedTemplate
	for _, t := range m.templates {
		if t.UserID == userID {
			cp := *t
			cp.Owner = m.owner(t.UserID)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *memTemplates) ListPublic(_ context.Context, limit int) ([]entity.SavedTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.SavedTemplate
	for _, t := range m.templates {
		if t.IsPublic {
			cp := *t
			cp.Owner = m.owner(t.UserID)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memTemplates) GetVisible(_ context.Context, id, viewerID string) (*entity.SavedTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if !t.IsPublic && (viewerID == "" || t.UserID != viewerID) {
		return nil, repo.ErrNotFound
	}
	cp := *t
	cp.Owner = m.owner(t.UserID)
	return &cp, nil
}

func (m *memTemplates) Update(_ context.Context, id, userID string, patch repo.TemplatePatch) (*entity.SavedTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok || t.UserID != userID {
		return nil, repo.ErrNotFound
	}
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Layout != nil {
		t.Layout = patch.Layout
	}
	if patch.Thumbnail != nil {
		t.Thumbnail = *patch.Thumbnail
	}
	if patch.IsPublic != nil {
		t.IsPublic = *patch.IsPublic
	}
	t.UpdatedAt = m.clock.tick()
	cp := *t
	cp.Owner = m.owner(t.UserID)
	return &cp, nil
}

func (m *memTemplates) Delete(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok || t.UserID != userID {
		return repo.ErrNotFound
	}
	delete(m.templates, id)
	return nil
}

type memExports struct {
	mu      sync.Mutex
	clock   *fakeClock
	exports map[string]*entity.ExportedTemplate
}

func newMemExports(clock *fakeClock) *memExports {
	return &memExports{clock: clock, exports: map[string]*entity.ExportedTemplate{}}
}

func (m *memExports) Create(_ context.Context, e *entity.ExportedTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = uuid.NewString()
	now := m.clock.tick()
	e.CreatedAt, e.UpdatedAt = now, now
	cp := *e
	m.exports[e.ID] = &cp
	return nil
}

func (m *memExports) ListByUser(_ context.Context, userID string) ([]entity.ExportedTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.ExportedTemplate
	for _, e := range m.exports {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memExports) Delete(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.exports[id]
	if !ok || e.UserID != userID {
		return repo.ErrNotFound
	}
	delete(m.exports, id)
	return nil
}
