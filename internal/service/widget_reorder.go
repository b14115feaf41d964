package service

import (
	"sort"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

// splitDeletedWidgets partitions widgets into live and deleted groups,
// preserving the relative order inside each group.
func splitDeletedWidgets(widgets []models.DashboardWidget) (live, deleted []models.DashboardWidget) {
	for _, w := range widgets {
		if w.IsDeleted {
			deleted = append(deleted, w)
		} else {
			live = append(live, w)
		}
	}
	return live, deleted
}

// sortWidgetsByPosition returns a copy of widgets stably sorted by their
// stored user position. Equal positions keep their incoming order.
func sortWidgetsByPosition(widgets []models.DashboardWidget) []models.DashboardWidget {
	out := make([]models.DashboardWidget, len(widgets))
	copy(out, widgets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WidgetUserPosition < out[j].WidgetUserPosition
	})
	return out
}

// dedupeWidgets drops widgets whose ID was already seen, keeping the first
// occurrence.
func dedupeWidgets(widgets []models.DashboardWidget) []models.DashboardWidget {
	seen := make(map[string]struct{}, len(widgets))
	out := make([]models.DashboardWidget, 0, len(widgets))
	for _, w := range widgets {
		if _, ok := seen[w.WidgetID]; ok {
			continue
		}
		seen[w.WidgetID] = struct{}{}
		out = append(out, w)
	}
	return out
}

// applyWidgetOrder rebuilds the slice in the order given by orderedIDs and
// renumbers positions contiguously from 1. IDs not present in widgets are
// skipped; widgets not named in orderedIDs are appended after the named ones
// in their incoming order.
func applyWidgetOrder(widgets []models.DashboardWidget, orderedIDs []string) []models.DashboardWidget {
	byID := make(map[string]models.DashboardWidget, len(widgets))
	for _, w := range widgets {
		if _, ok := byID[w.WidgetID]; !ok {
			byID[w.WidgetID] = w
		}
	}

	out := make([]models.DashboardWidget, 0, len(widgets))
	placed := make(map[string]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		w, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := placed[id]; dup {
			continue
		}
		placed[id] = struct{}{}
		out = append(out, w)
	}
	for _, w := range widgets {
		if _, ok := placed[w.WidgetID]; ok {
			continue
		}
		placed[w.WidgetID] = struct{}{}
		out = append(out, w)
	}

	for i := range out {
		out[i].WidgetUserPosition = i + 1
	}
	return out
}

// renumberWidgets assigns contiguous positions starting at 1 without changing
// the order of the slice.
func renumberWidgets(widgets []models.DashboardWidget) []models.DashboardWidget {
	out := make([]models.DashboardWidget, len(widgets))
	copy(out, widgets)
	for i := range out {
		out[i].WidgetUserPosition = i + 1
	}
	return out
}

// ReorderWidgets reconciles the stored widget set against the order the
// client submitted. With removeDeleted set, soft-deleted widgets are pulled
// out of the reordering pool and appended after the live ones with
// continuing positions; without it the whole set, deleted included, is one
// pool and every widget can be repositioned by id.
//
// When orderedIDs does not cover exactly the pool (after deduplication),
// the submitted order is ignored and the baseline ordering, stored positions
// stably sorted, is returned instead. The result always carries contiguous
// positions from 1, so reconciling twice with the same inputs is a no-op.
func ReorderWidgets(widgets []models.DashboardWidget, orderedIDs []string, removeDeleted bool) []models.DashboardWidget {
	pool := dedupeWidgets(widgets)

	var deferred []models.DashboardWidget
	if removeDeleted {
		pool, deferred = splitDeletedWidgets(pool)
	}
	pool = sortWidgetsByPosition(pool)

	if len(orderedIDs) == len(pool) {
		pool = applyWidgetOrder(pool, orderedIDs)
	}
	return renumberWidgets(append(pool, deferred...))
}
