package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

// WidgetRepository provides database access for dashboard widgets.
type WidgetRepository struct {
	db *sqlx.DB
}

// NewWidgetRepository creates a new instance of WidgetRepository.
func NewWidgetRepository(db *sqlx.DB) *WidgetRepository {
	return &WidgetRepository{db: db}
}

const widgetColumns = `widget_id, client_id, user_id, widget_name, widget_scale, widget_user_position, is_editable, is_deleted, updated_at`

// ListByOwner returns all widgets of a (client, user) scope ordered by
// their persisted position. Soft-deleted widgets are included; callers
// decide whether to filter them.
func (r *WidgetRepository) ListByOwner(ctx context.Context, clientID, userID string) ([]models.DashboardWidget, error) {
	query := `SELECT ` + widgetColumns + ` FROM dashboard_widgets WHERE client_id = $1 AND user_id = $2 ORDER BY widget_user_position ASC`
	widgets := make([]models.DashboardWidget, 0)
	if err := r.db.SelectContext(ctx, &widgets, query, clientID, userID); err != nil {
		return nil, fmt.Errorf("list widgets: %w", err)
	}
	return widgets, nil
}

// Save upserts a single widget row keyed by (client, user, widget).
func (r *WidgetRepository) Save(ctx context.Context, w *models.DashboardWidget) error {
	const query = `INSERT INTO dashboard_widgets (widget_id, client_id, user_id, widget_name, widget_scale, widget_user_position, is_editable, is_deleted, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (client_id, user_id, widget_id)
		DO UPDATE SET widget_name = $4, widget_scale = $5, widget_user_position = $6, is_editable = $7, is_deleted = $8, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query,
		w.WidgetID, w.ClientID, w.UserID, w.WidgetName, w.WidgetScale, w.WidgetUserPosition, w.IsEditable, w.IsDeleted,
	); err != nil {
		return fmt.Errorf("save widget %s: %w", w.WidgetID, err)
	}
	return nil
}
