package service

import (
	"strings"
	"time"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

const criterionDateLayout = "2006-01-02"

// resolveDateKeyword maps the symbolic default values used by date criteria
// to a concrete date anchored on now. Unrecognized values pass through
// unchanged so literal dates stored as defaults keep working.
func resolveDateKeyword(keyword string, now time.Time) string {
	switch keyword {
	case "Today":
		return now.Format(criterionDateLayout)
	case "DayBefore":
		return now.AddDate(0, 0, -1).Format(criterionDateLayout)
	case "NextDay":
		return now.AddDate(0, 0, 1).Format(criterionDateLayout)
	case "WeekBefore":
		return now.AddDate(0, 0, -7).Format(criterionDateLayout)
	case "ThisMonth":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(criterionDateLayout)
	case "LastDateMonth":
		firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
		return firstOfNext.AddDate(0, 0, -1).Format(criterionDateLayout)
	case "ThisYearFirstMonth":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()).Format(criterionDateLayout)
	case "LastDateYear":
		return time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location()).Format(criterionDateLayout)
	default:
		return keyword
	}
}

// isHiddenCriterion reports whether a criterion is resolved from the caller's
// session rather than shown to the user. The legacy catalog marks these
// either through the default value (clientid, userid) or the criterion name
// (customerid).
func isHiddenCriterion(c models.SearchCriterion) bool {
	def := ""
	if c.DefaultValue != nil {
		def = strings.ToLower(strings.TrimSpace(*c.DefaultValue))
	}
	if def == "clientid" || def == "userid" {
		return true
	}
	return strings.EqualFold(c.Name, "customerid")
}

// seedCriterionValue computes the initial value for a visible criterion.
func seedCriterionValue(c models.SearchCriterion, now time.Time) string {
	def := ""
	if c.DefaultValue != nil {
		def = *c.DefaultValue
	}

	switch c.FieldType {
	case models.FieldTypeDate:
		if def == "" {
			return ""
		}
		return resolveDateKeyword(def, now)
	case models.FieldTypeCheckBox:
		if def == "1" {
			return "1"
		}
		return "0"
	default:
		return def
	}
}

// MakeInitialCriteria builds the criterion value set a fresh report session
// starts from. Hidden session-bound criteria are excluded here; the runner
// injects them from the caller's claims at execution time.
func MakeInitialCriteria(detail *models.ReportDetail, now time.Time) []models.CriterionValue {
	values := make([]models.CriterionValue, 0, len(detail.SearchCriteria))
	for _, c := range detail.SearchCriteria {
		if isHiddenCriterion(c) {
			continue
		}
		values = append(values, models.CriterionValue{
			Name:  c.Name,
			Value: seedCriterionValue(c, now),
		})
	}
	return values
}
