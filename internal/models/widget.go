package models

import "time"

// DashboardWidget is a draggable dashboard tile with a persisted user-chosen
// position and a soft-delete flag. Positions are 1-based dense integers
// within a (client, user) scope; widget IDs are unique within that scope.
type DashboardWidget struct {
	WidgetID           string    `db:"widget_id" json:"widgetID"`
	ClientID           string    `db:"client_id" json:"clientID"`
	UserID             string    `db:"user_id" json:"userID"`
	WidgetName         string    `db:"widget_name" json:"widgetName"`
	WidgetScale        string    `db:"widget_scale" json:"widgetScale"`
	WidgetUserPosition int       `db:"widget_user_position" json:"widgetUserPosition"`
	IsEditable         bool      `db:"is_editable" json:"isEditable"`
	IsDeleted          bool      `db:"is_deleted" json:"isDeleted"`
	UpdatedAt          time.Time `db:"updated_at" json:"updatedAt"`
}
