package models

// ColumnListType identifies the search screen a set of column header settings
// belongs to. The numeric values are persisted and part of the API contract.
type ColumnListType int

const (
	ColumnListAgreement   ColumnListType = 1
	ColumnListCustomer    ColumnListType = 2
	ColumnListVehicle     ColumnListType = 3
	ColumnListReservation ColumnListType = 4
)

// String returns the screen name for the list type.
func (t ColumnListType) String() string {
	switch t {
	case ColumnListAgreement:
		return "Agreement"
	case ColumnListCustomer:
		return "Customer"
	case ColumnListVehicle:
		return "Vehicle"
	case ColumnListReservation:
		return "Reservation"
	default:
		return "Unknown"
	}
}

// Valid reports whether the list type is one of the supported screens.
func (t ColumnListType) Valid() bool {
	switch t {
	case ColumnListAgreement, ColumnListCustomer, ColumnListVehicle, ColumnListReservation:
		return true
	default:
		return false
	}
}

// ColumnHeaderSetting is one configurable table column of a search screen.
type ColumnHeaderSetting struct {
	ColumnHeaderSettingID int    `db:"column_header_setting_id" json:"columnHeaderSettingID"`
	ColumnHeader          string `db:"column_header" json:"columnHeader"`
	ColumnHeaderDesc      string `db:"column_header_desc" json:"columnHeaderDescription"`
	IsSelected            bool   `db:"is_selected" json:"isSelected"`
	OrderIndex            int    `db:"order_index" json:"orderIndex"`
}

// ColumnSettingsUpdate is the persisted projection of a save operation:
// comma-joined visible ids and comma-joined full ordering.
type ColumnSettingsUpdate struct {
	ClientID                   string         `json:"clientID"`
	UserID                     string         `json:"userID"`
	Type                       ColumnListType `json:"type"`
	TypeName                   string         `json:"typeName"`
	HeaderSettingIDList        string         `json:"headerSettingIDList"`
	OrderedHeaderSettingIDList string         `json:"orderdHeaderSettingIDList"`
}
