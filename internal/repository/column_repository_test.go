package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

func TestColumnListByType(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewColumnRepository(db)

	rows := sqlmock.NewRows([]string{"column_header_setting_id", "column_header", "column_header_desc", "is_selected", "order_index"}).
		AddRow(1, "AgreementNumber", "Agreement No.", true, 1).
		AddRow(2, "CustomerName", "Customer", true, 2).
		AddRow(3, "BalanceDue", "Balance", false, 3)
	mock.ExpectQuery(`SELECT .+ FROM column_header_settings WHERE client_id = \$1 AND user_id = \$2 AND list_type = \$3`).
		WithArgs("client-1", "user-1", int(models.ColumnListAgreement)).
		WillReturnRows(rows)

	columns, err := repo.ListByType(context.Background(), "client-1", "user-1", models.ColumnListAgreement)
	require.NoError(t, err)
	require.Len(t, columns, 3)
	assert.Equal(t, "CustomerName", columns[1].ColumnHeader)
	assert.False(t, columns[2].IsSelected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestColumnSaveSettings(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewColumnRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO column_header_preferences")).
		WithArgs("client-1", "user-1", int(models.ColumnListCustomer), "1,2", "2,1,3").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveSettings(context.Background(), models.ColumnSettingsUpdate{
		ClientID:                   "client-1",
		UserID:                     "user-1",
		Type:                       models.ColumnListCustomer,
		TypeName:                   models.ColumnListCustomer.String(),
		HeaderSettingIDList:        "1,2",
		OrderedHeaderSettingIDList: "2,1,3",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
