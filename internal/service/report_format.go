package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatReportValue renders a raw result cell according to the output
// field's declared data type. Values that do not parse are returned as-is so
// a bad row never breaks the whole report.
func FormatReportValue(dataType string, raw interface{}) string {
	if raw == nil {
		return ""
	}
	s := fmt.Sprintf("%v", raw)

	switch strings.ToLower(dataType) {
	case "date":
		if t, ok := parseReportTime(raw, s); ok {
			return t.Format("2006-01-02")
		}
		return s
	case "datetime":
		if t, ok := parseReportTime(raw, s); ok {
			return t.Format("2006-01-02 15:04:05")
		}
		return s
	case "decimal":
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return strconv.FormatFloat(f, 'f', 2, 64)
		}
		return s
	default:
		return s
	}
}

func parseReportTime(raw interface{}, s string) (time.Time, bool) {
	if t, ok := raw.(time.Time); ok {
		return t, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
