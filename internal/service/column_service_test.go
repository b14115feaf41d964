package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

type fakeColumnRepo struct {
	settings []models.ColumnHeaderSetting
	saved    *models.ColumnSettingsUpdate
	err      error
}

func (f *fakeColumnRepo) ListByType(ctx context.Context, clientID, userID string, listType models.ColumnListType) ([]models.ColumnHeaderSetting, error) {
	return f.settings, f.err
}

func (f *fakeColumnRepo) SaveSettings(ctx context.Context, update models.ColumnSettingsUpdate) error {
	f.saved = &update
	return f.err
}

func columnFixtures() []models.ColumnHeaderSetting {
	return []models.ColumnHeaderSetting{
		{ColumnHeaderSettingID: 1, ColumnHeader: "AgreementNumber", IsSelected: true},
		{ColumnHeaderSettingID: 2, ColumnHeader: "CustomerName", IsSelected: true},
		{ColumnHeaderSettingID: 3, ColumnHeader: "VehicleNo", IsSelected: false},
	}
}

func TestColumnServiceSaveDerivesOrdering(t *testing.T) {
	repo := &fakeColumnRepo{}
	svc := NewColumnService(repo, nil)

	update, err := svc.Save(context.Background(), "client-1", "user-1",
		models.ColumnListAgreement, columnFixtures(), []string{"CustomerName", "AgreementNumber"})

	require.NoError(t, err)
	require.NotNil(t, repo.saved)
	assert.Equal(t, "1,2", update.HeaderSettingIDList)
	assert.Equal(t, "2,1,3", update.OrderedHeaderSettingIDList)
	assert.Equal(t, "Agreement", update.TypeName)
	assert.Equal(t, *repo.saved, *update)
}

func TestColumnServiceSaveRejectsUnknownListType(t *testing.T) {
	svc := NewColumnService(&fakeColumnRepo{}, nil)

	_, err := svc.Save(context.Background(), "client-1", "user-1",
		models.ColumnListType(9), columnFixtures(), nil)

	require.Error(t, err)
}

func TestOrderColumnSettings(t *testing.T) {
	tests := []struct {
		name         string
		accessorKeys []string
		want         []int
	}{
		{"no accessor keys keeps original order", nil, []int{1, 2, 3}},
		{"front group in key order", []string{"VehicleNo", "CustomerName"}, []int{3, 2, 1}},
		{"unknown keys skipped", []string{"Nope", "CustomerName"}, []int{2, 1, 3}},
		{"duplicate keys collapse", []string{"CustomerName", "CustomerName"}, []int{2, 1, 3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, orderColumnSettings(columnFixtures(), tc.accessorKeys))
		})
	}
}
