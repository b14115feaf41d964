package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

func strPtr(s string) *string { return &s }

func TestResolveDateKeyword(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		keyword string
		want    string
	}{
		{"Today", "2024-03-15"},
		{"DayBefore", "2024-03-14"},
		{"NextDay", "2024-03-16"},
		{"WeekBefore", "2024-03-08"},
		{"ThisMonth", "2024-03-01"},
		{"LastDateMonth", "2024-03-31"},
		{"ThisYearFirstMonth", "2024-01-01"},
		{"LastDateYear", "2024-12-31"},
		{"2023-07-04", "2023-07-04"},
	}

	for _, tc := range tests {
		t.Run(tc.keyword, func(t *testing.T) {
			assert.Equal(t, tc.want, resolveDateKeyword(tc.keyword, now))
		})
	}
}

func TestResolveDateKeywordMonthBoundaries(t *testing.T) {
	leapFeb := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-02-29", resolveDateKeyword("LastDateMonth", leapFeb))

	december := time.Date(2023, time.December, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2023-12-31", resolveDateKeyword("LastDateMonth", december))
}

func TestMakeInitialCriteria(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	detail := &models.ReportDetail{
		ReportID: "rpt-1",
		SearchCriteria: []models.SearchCriterion{
			{Name: "startDate", FieldType: models.FieldTypeDate, DefaultValue: strPtr("ThisMonth")},
			{Name: "endDate", FieldType: models.FieldTypeDate, DefaultValue: strPtr("Today")},
			{Name: "location", FieldType: models.FieldTypeDropDown, DefaultValue: strPtr("ALL")},
			{Name: "includeVoid", FieldType: models.FieldTypeCheckBox, DefaultValue: strPtr("true")},
			{Name: "onlyOpen", FieldType: models.FieldTypeCheckBox, DefaultValue: strPtr("1")},
			{Name: "keyword", FieldType: models.FieldTypeTextBox, DefaultValue: nil},
		},
	}

	got := MakeInitialCriteria(detail, now)

	require.Len(t, got, 6)
	assert.Equal(t, models.CriterionValue{Name: "startDate", Value: "2024-03-01"}, got[0])
	assert.Equal(t, models.CriterionValue{Name: "endDate", Value: "2024-03-15"}, got[1])
	assert.Equal(t, models.CriterionValue{Name: "location", Value: "ALL"}, got[2])
	assert.Equal(t, models.CriterionValue{Name: "includeVoid", Value: "0"}, got[3])
	assert.Equal(t, models.CriterionValue{Name: "onlyOpen", Value: "1"}, got[4])
	assert.Equal(t, models.CriterionValue{Name: "keyword", Value: ""}, got[5])
}

func TestMakeInitialCriteriaExcludesSessionCriteria(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	detail := &models.ReportDetail{
		ReportID: "rpt-2",
		SearchCriteria: []models.SearchCriterion{
			{Name: "clientFilter", FieldType: models.FieldTypeTextBox, DefaultValue: strPtr("ClientId")},
			{Name: "userFilter", FieldType: models.FieldTypeTextBox, DefaultValue: strPtr("userid")},
			{Name: "CustomerId", FieldType: models.FieldTypeTextBox, DefaultValue: nil},
			{Name: "status", FieldType: models.FieldTypeDropDown, DefaultValue: strPtr("OPEN")},
		},
	}

	got := MakeInitialCriteria(detail, now)

	require.Len(t, got, 1)
	assert.Equal(t, "status", got[0].Name)
}

func TestFormatReportValue(t *testing.T) {
	when := time.Date(2024, time.March, 15, 9, 45, 30, 0, time.UTC)

	tests := []struct {
		name     string
		dataType string
		raw      interface{}
		want     string
	}{
		{"nil", "string", nil, ""},
		{"date from time", "date", when, "2024-03-15"},
		{"datetime from time", "datetime", when, "2024-03-15 09:45:30"},
		{"date from string", "Date", "2024-03-15 09:45:30", "2024-03-15"},
		{"decimal", "decimal", "12.5", "12.50"},
		{"decimal from float", "decimal", 3.14159, "3.14"},
		{"decimal unparsable", "decimal", "n/a", "n/a"},
		{"plain string", "string", "hello", "hello"},
		{"unknown type passthrough", "uuid", 42, "42"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatReportValue(tc.dataType, tc.raw))
		})
	}
}
