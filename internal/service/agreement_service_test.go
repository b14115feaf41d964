package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	"github.com/rentall-dev/fleet-admin-api/internal/search"
)

type fakeAgreementRepo struct {
	lastFilter models.AgreementFilter
	items      []models.Agreement
	total      int
}

func (f *fakeAgreementRepo) List(ctx context.Context, filter models.AgreementFilter) ([]models.Agreement, int, error) {
	f.lastFilter = filter
	return f.items, f.total, nil
}

func (f *fakeAgreementRepo) FindByID(ctx context.Context, clientID, id string) (*models.Agreement, error) {
	return &models.Agreement{ID: id, ClientID: clientID}, nil
}

func (f *fakeAgreementRepo) Create(ctx context.Context, a *models.Agreement) error { return nil }
func (f *fakeAgreementRepo) Update(ctx context.Context, a *models.Agreement) error { return nil }
func (f *fakeAgreementRepo) UpdateStatus(ctx context.Context, clientID, id string, status models.AgreementStatus) error {
	return nil
}

func TestAgreementServiceListMapsNormalizedFilters(t *testing.T) {
	repo := &fakeAgreementRepo{total: 25}
	svc := NewAgreementService(repo, 10, nil, nil)

	_, meta, err := svc.List(context.Background(), "client-1", search.Query{
		Page: 2,
		Size: 0,
		Filters: map[string]interface{}{
			"Statuses":   "open, closed",
			"CustomerId": "cust-9",
			"VehicleNo":  "",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "client-1", repo.lastFilter.ClientID)
	assert.Equal(t, []models.AgreementStatus{models.AgreementStatusOpen, models.AgreementStatusClosed}, repo.lastFilter.Statuses)
	assert.Equal(t, "cust-9", repo.lastFilter.CustomerID)
	assert.Empty(t, repo.lastFilter.VehicleNo)
	assert.Equal(t, 2, repo.lastFilter.Page)
	assert.Equal(t, 10, repo.lastFilter.PageSize)

	require.NotNil(t, meta)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 10, meta.PageSize)
	assert.Equal(t, 25, meta.TotalCount)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestAgreementServiceUpdateStatusRejectsUnknown(t *testing.T) {
	svc := NewAgreementService(&fakeAgreementRepo{}, 10, nil, nil)

	err := svc.UpdateStatus(context.Background(), "client-1", "agr-1", models.AgreementStatus("LOST"))
	require.Error(t, err)
}
