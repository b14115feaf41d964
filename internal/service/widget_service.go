package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
)

type widgetRepository interface {
	ListByOwner(ctx context.Context, clientID, userID string) ([]models.DashboardWidget, error)
	Save(ctx context.Context, w *models.DashboardWidget) error
}

// SaveWidgetsRequest carries the client's submitted dashboard layout.
type SaveWidgetsRequest struct {
	Widgets       []models.DashboardWidget `json:"widgets" validate:"required"`
	OrderedIDs    []string                 `json:"orderedWidgetIDs"`
	RemoveDeleted bool                     `json:"removeDeleted"`
}

// WidgetService manages per-user dashboard widget layouts.
type WidgetService struct {
	repo     widgetRepository
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewWidgetService constructs a widget service.
func NewWidgetService(repo widgetRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *WidgetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WidgetService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func widgetCacheKey(clientID, userID string) string {
	return fmt.Sprintf("widgets:%s:%s", clientID, userID)
}

// List returns the user's widgets ordered by position, served from Redis
// when a fresh copy exists.
func (s *WidgetService) List(ctx context.Context, clientID, userID string) ([]models.DashboardWidget, error) {
	key := widgetCacheKey(clientID, userID)

	var cached []models.DashboardWidget
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	widgets, err := s.repo.ListByOwner(ctx, clientID, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list widgets")
	}

	if err := s.cache.Set(ctx, key, widgets, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache widget list", zap.String("key", key), zap.Error(err))
	}
	return widgets, nil
}

// Save reconciles the submitted layout against the reorder rules and
// persists each widget concurrently. Persistence is best-effort per widget:
// a failed upsert does not roll back the ones that succeeded, the first
// error is reported.
func (s *WidgetService) Save(ctx context.Context, clientID, userID string, req SaveWidgetsRequest) ([]models.DashboardWidget, error) {
	for i := range req.Widgets {
		req.Widgets[i].ClientID = clientID
		req.Widgets[i].UserID = userID
	}

	reconciled := ReorderWidgets(req.Widgets, req.OrderedIDs, req.RemoveDeleted)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i := range reconciled {
		wg.Add(1)
		go func(w *models.DashboardWidget) {
			defer wg.Done()
			if err := s.repo.Save(ctx, w); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				s.logger.Error("failed to save widget",
					zap.String("widget_id", w.WidgetID),
					zap.Error(err))
			}
		}(&reconciled[i])
	}
	wg.Wait()

	if err := s.cache.Invalidate(ctx, widgetCacheKey(clientID, userID)); err != nil {
		s.logger.Warn("failed to invalidate widget cache", zap.Error(err))
	}

	if firstErr != nil {
		return reconciled, appErrors.Wrap(firstErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save one or more widgets")
	}
	return reconciled, nil
}
