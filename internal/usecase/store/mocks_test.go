package store

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/goofitre/carcare-api/internal/audit"
	"github.com/goofitre/carcare-api/internal/models"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) store(args mock.Arguments) (*models.Store, error) {
	if s, ok := args.Get(0).(*models.Store); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*models.Store, error) {
	return m.store(m.Called(ctx, id))
}

func (m *mockRepo) GetByOwner(ctx context.Context, userID string) (*models.Store, error) {
	return m.store(m.Called(ctx, userID))
}

func (m *mockRepo) GetDetail(ctx context.Context, id string, reviews int) (*models.Store, error) {
	return m.store(m.Called(ctx, id, reviews))
}

func (m *mockRepo) List(ctx context.Context) ([]models.Store, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Store), args.Error(1)
}

func (m *mockRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, s *models.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockRepo) Update(ctx context.Context, s *models.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockRepo) SetOpen(ctx context.Context, id string, open bool) error {
	return m.Called(ctx, id, open).Error(0)
}

func (m *mockRepo) SetImage(ctx context.Context, id string, url string) error {
	return m.Called(ctx, id, url).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) TopReviewed(ctx context.Context, limit int) ([]models.Store, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Store), args.Error(1)
}

func (m *mockRepo) RecomputeAllRatings(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type spyInvalidator struct {
	mu  sync.Mutex
	ids []string
}

func (s *spyInvalidator) InvalidateStore(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, id)
	return nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string]any
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string]any{}} }

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	*(dest.(*models.Store)) = *(v.(*models.Store))
	return true, nil
}

func (c *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type nopSink struct{}

func (nopSink) Log(context.Context, audit.Event) error { return nil }

func newAudit() *audit.Dispatcher { return audit.NewDispatcher(nopSink{}) }
