package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	appErrors "github.com/rentall-dev/fleet-admin-api/pkg/errors"
)

type columnRepository interface {
	ListByType(ctx context.Context, clientID, userID string, listType models.ColumnListType) ([]models.ColumnHeaderSetting, error)
	SaveSettings(ctx context.Context, update models.ColumnSettingsUpdate) error
}

// ColumnService manages per-user column header settings for the search
// screens.
type ColumnService struct {
	repo   columnRepository
	logger *zap.Logger
}

// NewColumnService constructs a column settings service.
func NewColumnService(repo columnRepository, logger *zap.Logger) *ColumnService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ColumnService{repo: repo, logger: logger}
}

// List returns the column header settings of the given search screen.
func (s *ColumnService) List(ctx context.Context, clientID, userID string, listType models.ColumnListType) ([]models.ColumnHeaderSetting, error) {
	if !listType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown column list type")
	}
	settings, err := s.repo.ListByType(ctx, clientID, userID, listType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list column settings")
	}
	return settings, nil
}

// Save persists the visible set and the full ordering derived from the
// screen's current column layout.
func (s *ColumnService) Save(ctx context.Context, clientID, userID string, listType models.ColumnListType, settings []models.ColumnHeaderSetting, accessorKeys []string) (*models.ColumnSettingsUpdate, error) {
	if !listType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown column list type")
	}

	update := models.ColumnSettingsUpdate{
		ClientID:                   clientID,
		UserID:                     userID,
		Type:                       listType,
		TypeName:                   listType.String(),
		HeaderSettingIDList:        joinSettingIDs(visibleSettingIDs(settings)),
		OrderedHeaderSettingIDList: joinSettingIDs(orderColumnSettings(settings, accessorKeys)),
	}

	if err := s.repo.SaveSettings(ctx, update); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save column settings")
	}
	return &update, nil
}

// visibleSettingIDs returns the ids of the selected columns in their
// original order.
func visibleSettingIDs(settings []models.ColumnHeaderSetting) []int {
	ids := make([]int, 0, len(settings))
	for _, setting := range settings {
		if setting.IsSelected {
			ids = append(ids, setting.ColumnHeaderSettingID)
		}
	}
	return ids
}

// orderColumnSettings derives the full column ordering: columns whose header
// appears in accessorKeys come first, in accessorKeys order, with misses
// skipped; every remaining column follows in its original order.
func orderColumnSettings(settings []models.ColumnHeaderSetting, accessorKeys []string) []int {
	byHeader := make(map[string]models.ColumnHeaderSetting, len(settings))
	for _, setting := range settings {
		if _, ok := byHeader[setting.ColumnHeader]; !ok {
			byHeader[setting.ColumnHeader] = setting
		}
	}

	front := make([]int, 0, len(accessorKeys))
	placed := make(map[int]struct{}, len(accessorKeys))
	for _, key := range accessorKeys {
		setting, ok := byHeader[key]
		if !ok {
			continue
		}
		if _, dup := placed[setting.ColumnHeaderSettingID]; dup {
			continue
		}
		placed[setting.ColumnHeaderSettingID] = struct{}{}
		front = append(front, setting.ColumnHeaderSettingID)
	}

	out := front
	for _, setting := range settings {
		if _, ok := placed[setting.ColumnHeaderSettingID]; ok {
			continue
		}
		placed[setting.ColumnHeaderSettingID] = struct{}{}
		out = append(out, setting.ColumnHeaderSettingID)
	}
	return out
}

func joinSettingIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
