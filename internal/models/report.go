package models

import "time"

// FieldType tags a report search criterion with the filter control it renders.
type FieldType int

const (
	FieldTypeTextBox FieldType = iota
	FieldTypeDropDown
	FieldTypeDate
	FieldTypeListBox
	FieldTypeCheckBox
)

// String returns the wire representation of the field type.
func (t FieldType) String() string {
	switch t {
	case FieldTypeDropDown:
		return "DropDown"
	case FieldTypeDate:
		return "Date"
	case FieldTypeListBox:
		return "ListBox"
	case FieldTypeCheckBox:
		return "CheckBox"
	default:
		return "TextBox"
	}
}

// ParseFieldType maps a field type tag to its enum value. Unknown tags fall
// back to TextBox so new server-side tags degrade to raw text entry.
func ParseFieldType(raw string) FieldType {
	switch raw {
	case "DropDown":
		return FieldTypeDropDown
	case "Date":
		return FieldTypeDate
	case "ListBox":
		return FieldTypeListBox
	case "CheckBox":
		return FieldTypeCheckBox
	default:
		return FieldTypeTextBox
	}
}

// MarshalJSON encodes the field type as its string tag.
func (t FieldType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes a string tag into the enum.
func (t *FieldType) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(raw) >= 2 && raw[0] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	*t = ParseFieldType(raw)
	return nil
}

// SearchCriterion is a server-described filter field parameterizing a report.
type SearchCriterion struct {
	ReportID     string    `db:"report_id" json:"-"`
	Name         string    `db:"name" json:"name"`
	DisplayName  string    `db:"display_name" json:"displayName"`
	FieldTypeTag string    `db:"field_type" json:"-"`
	DefaultValue *string   `db:"default_value" json:"defaultValue"`
	FieldType    FieldType `db:"-" json:"fieldType"`
}

// ReportSummary is a catalog entry without criteria.
type ReportSummary struct {
	ReportID string `db:"report_id" json:"reportId"`
	Name     string `db:"name" json:"name"`
	Title    string `db:"title" json:"title,omitempty"`
}

// ReportDetail is the full report definition. Immutable once fetched; the
// runner session owns a derived criteria map, never this struct.
type ReportDetail struct {
	ReportID       string            `db:"report_id" json:"reportId"`
	Name           string            `db:"name" json:"name"`
	Title          string            `db:"title" json:"title,omitempty"`
	Query          string            `db:"query" json:"-"`
	SearchCriteria []SearchCriterion `json:"searchCriteria"`
	OutputFields   []ReportField     `json:"outputFields,omitempty"`
}

// ReportField describes an output column and how to format its values.
type ReportField struct {
	ReportID string `db:"report_id" json:"-"`
	Name     string `db:"name" json:"name"`
	DataType string `db:"data_type" json:"dataType"`
}

// CriterionValue is one serialized {name, value} pair sent on a report run.
type CriterionValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ReportRow is one flat record of a report result set.
type ReportRow map[string]interface{}

// RunStatus captures the report runner life cycle states.
type RunStatus string

const (
	RunStatusIdle      RunStatus = "IDLE"
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusSucceeded RunStatus = "SUCCEEDED"
	RunStatusFailed    RunStatus = "FAILED"
)

// RunResult is the tagged result of the last report run. Rows is only set
// for SUCCEEDED, Message only for FAILED.
type RunResult struct {
	Status     RunStatus   `json:"status"`
	Rows       []ReportRow `json:"rows,omitempty"`
	Message    string      `json:"message,omitempty"`
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt time.Time   `json:"finishedAt"`
}
