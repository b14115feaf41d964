package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
	"github.com/rentall-dev/fleet-admin-api/internal/service"
)

type fakeColumnStore struct {
	settings []models.ColumnHeaderSetting
	saved    *models.ColumnSettingsUpdate
}

func (f *fakeColumnStore) ListByType(ctx context.Context, clientID, userID string, listType models.ColumnListType) ([]models.ColumnHeaderSetting, error) {
	return f.settings, nil
}

func (f *fakeColumnStore) SaveSettings(ctx context.Context, update models.ColumnSettingsUpdate) error {
	f.saved = &update
	return nil
}

func TestColumnHandlerListRequiresType(t *testing.T) {
	handler := NewColumnHandler(service.NewColumnService(&fakeColumnStore{}, nil))

	c, rec := testContextWithClaims(t, http.MethodGet, "/columns", "")

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestColumnHandlerSavePersistsOrdering(t *testing.T) {
	store := &fakeColumnStore{}
	handler := NewColumnHandler(service.NewColumnService(store, nil))

	body := `{
		"type": 1,
		"settings": [
			{"columnHeaderSettingID": 1, "columnHeader": "AgreementNumber", "isSelected": true},
			{"columnHeaderSettingID": 2, "columnHeader": "CustomerName", "isSelected": true},
			{"columnHeaderSettingID": 3, "columnHeader": "VehicleNo", "isSelected": false}
		],
		"accessorKeys": ["CustomerName", "AgreementNumber"]
	}`
	c, rec := testContextWithClaims(t, http.MethodPut, "/columns", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Save(c)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, store.saved)
	assert.Equal(t, "1,2", store.saved.HeaderSettingIDList)
	assert.Equal(t, "2,1,3", store.saved.OrderedHeaderSettingIDList)

	var envelope struct {
		Data models.ColumnSettingsUpdate `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "2,1,3", envelope.Data.OrderedHeaderSettingIDList)
}
