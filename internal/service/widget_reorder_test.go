package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentall-dev/fleet-admin-api/internal/models"
)

func widgetFixture(id string, position int, deleted bool) models.DashboardWidget {
	return models.DashboardWidget{
		WidgetID:           id,
		ClientID:           "client-1",
		UserID:             "user-1",
		WidgetName:         "widget " + id,
		WidgetUserPosition: position,
		IsDeleted:          deleted,
	}
}

func widgetIDs(widgets []models.DashboardWidget) []string {
	ids := make([]string, 0, len(widgets))
	for _, w := range widgets {
		ids = append(ids, w.WidgetID)
	}
	return ids
}

func TestReorderWidgetsAppliesSubmittedOrder(t *testing.T) {
	widgets := []models.DashboardWidget{
		widgetFixture("a", 1, false),
		widgetFixture("b", 2, false),
		widgetFixture("c", 3, false),
	}

	got := ReorderWidgets(widgets, []string{"c", "a", "b"}, false)

	assert.Equal(t, []string{"c", "a", "b"}, widgetIDs(got))
	for i, w := range got {
		assert.Equal(t, i+1, w.WidgetUserPosition)
	}
}

func TestReorderWidgetsLengthMismatchKeepsBaseline(t *testing.T) {
	widgets := []models.DashboardWidget{
		widgetFixture("b", 2, false),
		widgetFixture("a", 1, false),
		widgetFixture("c", 3, false),
	}

	got := ReorderWidgets(widgets, []string{"c", "a"}, false)

	assert.Equal(t, []string{"a", "b", "c"}, widgetIDs(got))
	assert.Equal(t, 1, got[0].WidgetUserPosition)
	assert.Equal(t, 3, got[2].WidgetUserPosition)
}

func TestReorderWidgetsRemoveDeletedAppendsAfterLive(t *testing.T) {
	widgets := []models.DashboardWidget{
		widgetFixture("a", 1, false),
		widgetFixture("x", 2, true),
		widgetFixture("b", 3, false),
	}

	got := ReorderWidgets(widgets, []string{"b", "a"}, true)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"b", "a", "x"}, widgetIDs(got))
	assert.Equal(t, 3, got[2].WidgetUserPosition)
	assert.True(t, got[2].IsDeleted)
}

func TestReorderWidgetsDeletedStayInPoolByDefault(t *testing.T) {
	widgets := []models.DashboardWidget{
		widgetFixture("a", 1, false),
		widgetFixture("x", 2, true),
		widgetFixture("b", 3, false),
	}

	got := ReorderWidgets(widgets, []string{"b", "x", "a"}, false)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"b", "x", "a"}, widgetIDs(got))
	for i, w := range got {
		assert.Equal(t, i+1, w.WidgetUserPosition)
	}
	assert.True(t, got[1].IsDeleted)
}

func TestReorderWidgetsDeletedCountTowardGuard(t *testing.T) {
	widgets := []models.DashboardWidget{
		widgetFixture("a", 1, false),
		widgetFixture("x", 2, true),
		widgetFixture("b", 3, false),
	}

	// Two ids against a pool of three: stale request, baseline kept.
	got := ReorderWidgets(widgets, []string{"b", "a"}, false)

	assert.Equal(t, []string{"a", "x", "b"}, widgetIDs(got))
}

func TestReorderWidgetsDeduplicatesFirstWins(t *testing.T) {
	first := widgetFixture("a", 1, false)
	first.WidgetName = "kept"
	dup := widgetFixture("a", 5, false)
	dup.WidgetName = "discarded"

	widgets := []models.DashboardWidget{first, dup, widgetFixture("b", 2, false)}

	got := ReorderWidgets(widgets, []string{"b", "a"}, false)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"b", "a"}, widgetIDs(got))
	assert.Equal(t, "kept", got[1].WidgetName)
}

func TestReorderWidgetsIdempotent(t *testing.T) {
	widgets := []models.DashboardWidget{
		widgetFixture("c", 7, false),
		widgetFixture("a", 2, false),
		widgetFixture("x", 4, true),
		widgetFixture("b", 9, false),
	}

	once := ReorderWidgets(widgets, []string{"b", "c", "a", "x"}, false)
	twice := ReorderWidgets(once, []string{"b", "c", "a", "x"}, false)

	assert.Equal(t, once, twice)
}

func TestSortWidgetsByPositionIsStable(t *testing.T) {
	widgets := []models.DashboardWidget{
		widgetFixture("a", 1, false),
		widgetFixture("b", 1, false),
		widgetFixture("c", 1, false),
	}

	got := sortWidgetsByPosition(widgets)

	assert.Equal(t, []string{"a", "b", "c"}, widgetIDs(got))
}
