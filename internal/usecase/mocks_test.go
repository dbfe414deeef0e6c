package usecase_test

import (
	"context"
	"sync"
	"time"

	"devhire-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

var (
	developer = domain.Identity{UserID: "0d4c5a52-7d0f-4c55-9f77-6a1f3a7f0001", Role: domain.RoleDeveloper}
	recruiter = domain.Identity{UserID: "0d4c5a52-7d0f-4c55-9f77-6a1f3a7f0002", Role: domain.RoleRecruiter}
	otherDev  = "0d4c5a52-7d0f-4c55-9f77-6a1f3a7f0003"
)

func strPtr(s string) *string { return &s }

// memProfileRepo is an in-memory ProfileRepository with the same copy
// semantics as the postgres one.
type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.DeveloperProfile
	nextID   int64
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[string]*domain.DeveloperProfile{}}
}

func (r *memProfileRepo) getOrCreateLocked(userID string) (*domain.DeveloperProfile, bool) {
	p, ok := r.profiles[userID]
	if !ok {
		r.nextID++
		p = domain.NewDeveloperProfile(userID)
		p.ID = r.nextID
		p.CreatedAt = time.Now()
		p.UpdatedAt = p.CreatedAt
		r.profiles[userID] = p
	}
	return p, !ok
}

func (r *memProfileRepo) GetOrCreate(ctx context.Context, userID string) (*domain.DeveloperProfile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, created := r.getOrCreateLocked(userID)
	return p.Clone(), created, nil
}

func (r *memProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.DeveloperProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *memProfileRepo) Mutate(ctx context.Context, userID string, createIfMissing bool, fn domain.ProfileMutation) (*domain.DeveloperProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var current *domain.DeveloperProfile
	if createIfMissing {
		current, _ = r.getOrCreateLocked(userID)
	} else {
		p, ok := r.profiles[userID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		current = p
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now()
	r.profiles[userID] = next
	return next.Clone(), nil
}

func (r *memProfileRepo) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.DeveloperProfile, int64, error) {
	panic("not used")
}

func (r *memProfileRepo) Stats(ctx context.Context) (*domain.SearchStats, error) {
	panic("not used")
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetOrCreate(ctx context.Context, userID string) (*domain.DeveloperProfile, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.DeveloperProfile), args.Bool(1), args.Error(2)
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.DeveloperProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeveloperProfile), args.Error(1)
}

func (m *MockProfileRepo) Mutate(ctx context.Context, userID string, createIfMissing bool, fn domain.ProfileMutation) (*domain.DeveloperProfile, error) {
	args := m.Called(ctx, userID, createIfMissing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	p := args.Get(0).(*domain.DeveloperProfile).Clone()
	if err := fn(p); err != nil {
		return nil, err
	}
	return p, args.Error(1)
}

func (m *MockProfileRepo) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.DeveloperProfile, int64, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.DeveloperProfile), args.Get(1).(int64), args.Error(2)
}

func (m *MockProfileRepo) Stats(ctx context.Context) (*domain.SearchStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchStats), args.Error(1)
}

type MockSearchCache struct {
	mock.Mock
}

func (m *MockSearchCache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	args := m.Called(ctx, key, out)
	return args.Bool(0), args.Error(1)
}

func (m *MockSearchCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockSearchCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSearchCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// noopCache is a permanently empty cache.
type noopCache struct{}

func (noopCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (noopCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (noopCache) Generation(context.Context) (int64, error) { return 0, nil }
func (noopCache) Invalidate(context.Context) error { return nil }

type MockShortlistRepo struct {
	mock.Mock
}

func (m *MockShortlistRepo) Create(ctx context.Context, entry *domain.ShortlistEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockShortlistRepo) Delete(ctx context.Context, recruiterID, developerID string) error {
	return m.Called(ctx, recruiterID, developerID).Error(0)
}

func (m *MockShortlistRepo) Exists(ctx context.Context, recruiterID, developerID string) (bool, error) {
	args := m.Called(ctx, recruiterID, developerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockShortlistRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]domain.ShortlistView, error) {
	args := m.Called(ctx, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShortlistView), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
