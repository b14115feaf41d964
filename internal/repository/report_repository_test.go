package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

func TestReportGetDetailParsesFieldTypes(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db, 100)

	reportRows := sqlmock.NewRows([]string{"report_id", "name", "title", "query"}).
		AddRow("rep-1", "DailyBusiness", "", "SELECT * FROM agreements WHERE client_id = :clientid")
	mock.ExpectQuery(`SELECT report_id, name, COALESCE\(title, ''\) AS title, query FROM reports WHERE client_id = \$1 AND report_id = \$2 LIMIT 1`).
		WithArgs("client-1", "rep-1").
		WillReturnRows(reportRows)

	criteriaRows := sqlmock.NewRows([]string{"report_id", "name", "display_name", "field_type", "default_value"}).
		AddRow("rep-1", "startdate", "Start Date", "Date", "ThisMonth").
		AddRow("rep-1", "vehicletype", "Vehicle Type", "DropDown", nil).
		AddRow("rep-1", "flag", "Flag", "SomethingNew", nil)
	mock.ExpectQuery(`SELECT report_id, name, display_name, field_type, default_value\s+FROM report_search_criteria WHERE report_id = \$1`).
		WithArgs("rep-1").
		WillReturnRows(criteriaRows)

	fieldRows := sqlmock.NewRows([]string{"report_id", "name", "data_type"}).
		AddRow("rep-1", "total", "decimal")
	mock.ExpectQuery(`SELECT report_id, name, data_type FROM report_output_fields WHERE report_id = \$1`).
		WithArgs("rep-1").
		WillReturnRows(fieldRows)

	detail, err := repo.GetDetail(context.Background(), "client-1", "rep-1")
	require.NoError(t, err)
	require.Len(t, detail.SearchCriteria, 3)
	assert.Equal(t, models.FieldTypeDate, detail.SearchCriteria[0].FieldType)
	assert.Equal(t, models.FieldTypeDropDown, detail.SearchCriteria[1].FieldType)
	// Unknown tags degrade to text entry rather than failing the load.
	assert.Equal(t, models.FieldTypeTextBox, detail.SearchCriteria[2].FieldType)
	require.Len(t, detail.OutputFields, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportExecuteBindsCriteriaAndDecodesBytes(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db, 100)

	detail := &models.ReportDetail{
		ReportID: "rep-1",
		Query:    "SELECT agreement_number, total_amount FROM agreements WHERE client_id = :clientid",
	}

	rows := sqlmock.NewRows([]string{"agreement_number", "total_amount"}).
		AddRow([]byte("AGR-1001"), 199.5)
	mock.ExpectQuery(`SELECT agreement_number, total_amount FROM agreements WHERE client_id = \$1`).
		WithArgs("client-1").
		WillReturnRows(rows)

	result, err := repo.Execute(context.Background(), detail, []models.CriterionValue{{Name: "clientid", Value: "client-1"}})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "AGR-1001", result[0]["agreement_number"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportExecuteCapsRowCount(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db, 2)

	detail := &models.ReportDetail{ReportID: "rep-1", Query: "SELECT n FROM counters"}

	rows := sqlmock.NewRows([]string{"n"}).AddRow(1).AddRow(2).AddRow(3)
	mock.ExpectQuery(`SELECT n FROM counters`).WillReturnRows(rows)

	result, err := repo.Execute(context.Background(), detail, nil)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}
