package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

// ColumnRepository provides database access for search screen column settings.
type ColumnRepository struct {
	db *sqlx.DB
}

// NewColumnRepository creates a new instance of ColumnRepository.
func NewColumnRepository(db *sqlx.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

// ListByType returns the column settings of a search screen for a user,
// in their persisted order.
func (r *ColumnRepository) ListByType(ctx context.Context, clientID, userID string, listType models.ColumnListType) ([]models.ColumnHeaderSetting, error) {
	const query = `SELECT column_header_setting_id, column_header, column_header_desc, is_selected, order_index
		FROM column_header_settings WHERE client_id = $1 AND user_id = $2 AND list_type = $3 ORDER BY order_index ASC`
	columns := make([]models.ColumnHeaderSetting, 0)
	if err := r.db.SelectContext(ctx, &columns, query, clientID, userID, int(listType)); err != nil {
		return nil, fmt.Errorf("list column settings: %w", err)
	}
	return columns, nil
}

// SaveSettings persists the comma-joined visibility and ordering lists for
// a search screen.
func (r *ColumnRepository) SaveSettings(ctx context.Context, update models.ColumnSettingsUpdate) error {
	const query = `INSERT INTO column_header_preferences (client_id, user_id, list_type, header_setting_id_list, ordered_header_setting_id_list, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (client_id, user_id, list_type)
		DO UPDATE SET header_setting_id_list = $4, ordered_header_setting_id_list = $5, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query,
		update.ClientID, update.UserID, int(update.Type), update.HeaderSettingIDList, update.OrderedHeaderSettingIDList,
	); err != nil {
		return fmt.Errorf("save column settings: %w", err)
	}
	return nil
}
