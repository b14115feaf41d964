package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	// Registered under the postgres name so Rebind keeps dollar bindvars.
	sqlxdb := sqlx.NewDb(db, "postgres")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestWidgetListByOwner(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewWidgetRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"widget_id", "client_id", "user_id", "widget_name", "widget_scale", "widget_user_position", "is_editable", "is_deleted", "updated_at"}).
		AddRow("SalesStatus", "client-1", "user-1", "Sales status", "half", 1, true, false, now).
		AddRow("VehicleStatus", "client-1", "user-1", "Vehicle status", "full", 2, true, true, now)
	mock.ExpectQuery(`SELECT .+ FROM dashboard_widgets WHERE client_id = \$1 AND user_id = \$2 ORDER BY widget_user_position ASC`).
		WithArgs("client-1", "user-1").
		WillReturnRows(rows)

	widgets, err := repo.ListByOwner(context.Background(), "client-1", "user-1")
	require.NoError(t, err)
	require.Len(t, widgets, 2)
	assert.Equal(t, "SalesStatus", widgets[0].WidgetID)
	assert.True(t, widgets[1].IsDeleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWidgetSaveUpserts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewWidgetRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO dashboard_widgets")).
		WithArgs("SalesStatus", "client-1", "user-1", "Sales status", "half", 3, true, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), &models.DashboardWidget{
		WidgetID:           "SalesStatus",
		ClientID:           "client-1",
		UserID:             "user-1",
		WidgetName:         "Sales status",
		WidgetScale:        "half",
		WidgetUserPosition: 3,
		IsEditable:         true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
