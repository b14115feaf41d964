package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

func agreementRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "client_id", "agreement_number", "customer_id", "customer_name", "vehicle_id", "vehicle_no", "status",
		"checkout_date", "checkin_date", "checkout_location", "checkin_location", "total_amount", "balance_due", "created_at", "updated_at",
	}).AddRow("agr-1", "client-1", "AGR-1001", "cus-1", "Jane Smith", "veh-1", "V-17", string(models.AgreementStatusOpen),
		now, nil, "Downtown", nil, 300.0, 120.0, now, now)
}

func TestAgreementListAppliesFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAgreementRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM agreements WHERE client_id = \$1 AND status = ANY\(\$2\) AND \(LOWER\(customer_name\) LIKE \$3 OR LOWER\(agreement_number\) LIKE \$3\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .+ FROM agreements WHERE client_id = \$1 AND status = ANY\(\$2\) AND .+ ORDER BY checkout_date DESC LIMIT 10 OFFSET 0`).
		WillReturnRows(agreementRows(time.Now()))

	agreements, total, err := repo.List(context.Background(), models.AgreementFilter{
		ClientID: "client-1",
		Statuses: []models.AgreementStatus{models.AgreementStatusOpen},
		Keyword:  "smith",
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, agreements, 1)
	assert.Equal(t, "AGR-1001", agreements[0].AgreementNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgreementFindByIDScopesClient(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAgreementRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM agreements WHERE client_id = \$1 AND id = \$2 LIMIT 1`).
		WithArgs("client-1", "agr-1").
		WillReturnRows(agreementRows(time.Now()))

	agreement, err := repo.FindByID(context.Background(), "client-1", "agr-1")
	require.NoError(t, err)
	assert.Equal(t, models.AgreementStatusOpen, agreement.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
