package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
)

type fakeWidgetRepo struct {
	mu      sync.Mutex
	widgets []models.DashboardWidget
	saved   []models.DashboardWidget
	listErr error
	saveErr map[string]error
}

func (f *fakeWidgetRepo) ListByOwner(ctx context.Context, clientID, userID string) ([]models.DashboardWidget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.widgets, f.listErr
}

func (f *fakeWidgetRepo) Save(ctx context.Context, w *models.DashboardWidget) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.saveErr[w.WidgetID]; ok {
		return err
	}
	f.saved = append(f.saved, *w)
	return nil
}

type memoryCacheRepo struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: make(map[string][]byte)}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = data
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.entries {
		if key == pattern {
			delete(m.entries, key)
		}
	}
	return nil
}

func TestWidgetServiceListCachesResult(t *testing.T) {
	repo := &fakeWidgetRepo{widgets: []models.DashboardWidget{widgetFixture("a", 1, false)}}
	cacheRepo := newMemoryCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewWidgetService(repo, cache, time.Minute, nil)

	first, err := svc.List(context.Background(), "client-1", "user-1")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A repo failure after warm-up proves the second read is served from cache.
	repo.mu.Lock()
	repo.listErr = errors.New("db down")
	repo.mu.Unlock()

	second, err := svc.List(context.Background(), "client-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestWidgetServiceSavePersistsReconciledLayout(t *testing.T) {
	repo := &fakeWidgetRepo{}
	cache := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil, true)
	svc := NewWidgetService(repo, cache, time.Minute, nil)

	req := SaveWidgetsRequest{
		Widgets: []models.DashboardWidget{
			widgetFixture("a", 1, false),
			widgetFixture("b", 2, false),
			widgetFixture("x", 3, true),
		},
		OrderedIDs: []string{"b", "a"},
	}

	got, err := svc.Save(context.Background(), "client-1", "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "x"}, widgetIDs(got))
	assert.Len(t, repo.saved, 3)
	for _, w := range repo.saved {
		assert.Equal(t, "client-1", w.ClientID)
		assert.Equal(t, "user-1", w.UserID)
	}
}

func TestWidgetServiceSaveReportsFirstErrorWithoutRollback(t *testing.T) {
	repo := &fakeWidgetRepo{saveErr: map[string]error{"b": errors.New("constraint violation")}}
	cache := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil, true)
	svc := NewWidgetService(repo, cache, time.Minute, nil)

	req := SaveWidgetsRequest{
		Widgets: []models.DashboardWidget{
			widgetFixture("a", 1, false),
			widgetFixture("b", 2, false),
			widgetFixture("c", 3, false),
		},
		OrderedIDs: []string{"a", "b", "c"},
	}

	_, err := svc.Save(context.Background(), "client-1", "user-1", req)
	require.Error(t, err)
	assert.Len(t, repo.saved, 2)
}

func TestWidgetServiceSaveInvalidatesCache(t *testing.T) {
	repo := &fakeWidgetRepo{widgets: []models.DashboardWidget{widgetFixture("a", 1, false)}}
	cacheRepo := newMemoryCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, nil, true)
	svc := NewWidgetService(repo, cache, time.Minute, nil)

	_, err := svc.List(context.Background(), "client-1", "user-1")
	require.NoError(t, err)
	require.Contains(t, cacheRepo.entries, "widgets:client-1:user-1")

	_, err = svc.Save(context.Background(), "client-1", "user-1", SaveWidgetsRequest{
		Widgets:    []models.DashboardWidget{widgetFixture("a", 1, false)},
		OrderedIDs: []string{"a"},
	})
	require.NoError(t, err)
	assert.NotContains(t, cacheRepo.entries, "widgets:client-1:user-1")
}
