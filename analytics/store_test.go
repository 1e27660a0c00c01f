// ABOUTME: Tests for the dashboard widget store
// ABOUTME: Covers seeding, add/remove semantics, id uniqueness and sample data
package analytics

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/socialpulse/models"
)

func widgetIDs(d models.Dashboard) []string {
	ids := make([]string, len(d.Widgets))
	for i, w := range d.Widgets {
		ids[i] = w.ID
	}
	return ids
}

func TestNewStoreSeedsMainDashboard(t *testing.T) {
	s := NewStore()
	d, ok := s.Dashboard(DefaultDashboardID)
	require.True(t, ok)
	assert.Equal(t, "Main Dashboard", d.Name)
	assert.Equal(t, []string{"w1", "w2", "w3"}, widgetIDs(d))
	assert.Equal(t, 24891.0, d.Widgets[0].Data[0].Value)
	assert.Len(t, d.Widgets[2].Data, 4)
}

func TestAddWidgetAppends(t *testing.T) {
	s := NewStore(WithRand(rand.New(rand.NewSource(1))))

	w, ok := s.AddWidget(DefaultDashboardID, WidgetSpec{Type: models.WidgetLine, Title: "Reach", Size: models.SizeLarge})
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(w.ID, WidgetPrefix))
	assert.Equal(t, "Reach", w.Title)
	assert.Equal(t, models.SizeLarge, w.Size)
	assert.Len(t, w.Data, 5)

	d, _ := s.Dashboard(DefaultDashboardID)
	require.Len(t, d.Widgets, 4)
	assert.Equal(t, w.ID, d.Widgets[3].ID)
}

func TestAddWidgetBlankTitleIsNoop(t *testing.T) {
	s := NewStore()
	for _, title := range []string{"", "   ", "\t\n"} {
		_, ok := s.AddWidget(DefaultDashboardID, WidgetSpec{Type: models.WidgetMetric, Title: title})
		assert.False(t, ok, "title %q", title)
	}
	d, _ := s.Dashboard(DefaultDashboardID)
	assert.Len(t, d.Widgets, 3)
}

func TestAddWidgetUnknownDashboard(t *testing.T) {
	s := NewStore()
	_, ok := s.AddWidget("nope", WidgetSpec{Type: models.WidgetBar, Title: "x"})
	assert.False(t, ok)
}

func TestAddWidgetDefaultsSize(t *testing.T) {
	s := NewStore()
	w, ok := s.AddWidget(DefaultDashboardID, WidgetSpec{Type: models.WidgetPie, Title: "Share", Size: "huge"})
	require.True(t, ok)
	assert.Equal(t, models.SizeMedium, w.Size)
}

func TestAddWidgetKeepsSuppliedData(t *testing.T) {
	s := NewStore()
	data := []models.DataPoint{{Name: "x", Value: 7}}
	w, ok := s.AddWidget(DefaultDashboardID, WidgetSpec{Type: models.WidgetBar, Title: "Custom", Data: data})
	require.True(t, ok)
	assert.Equal(t, data, w.Data)
}

func TestAddRemoveRoundTrip(t *testing.T) {
	s := NewStore()
	before, _ := s.Dashboard(DefaultDashboardID)

	w, ok := s.AddWidget(DefaultDashboardID, WidgetSpec{Type: models.WidgetMetric, Title: "Temp"})
	require.True(t, ok)
	require.True(t, s.RemoveWidget(DefaultDashboardID, w.ID))

	after, _ := s.Dashboard(DefaultDashboardID)
	assert.Equal(t, widgetIDs(before), widgetIDs(after))
}

func TestRemoveWidgetMissingIsNoop(t *testing.T) {
	s := NewStore()
	assert.False(t, s.RemoveWidget(DefaultDashboardID, "w_missing"))
	assert.False(t, s.RemoveWidget("nope", "w1"))

	d, _ := s.Dashboard(DefaultDashboardID)
	assert.Len(t, d.Widgets, 3)
}

func TestRemoveWidgetKeepsOrder(t *testing.T) {
	s := NewStore()
	require.True(t, s.RemoveWidget(DefaultDashboardID, "w2"))
	d, _ := s.Dashboard(DefaultDashboardID)
	assert.Equal(t, []string{"w1", "w3"}, widgetIDs(d))
}

func TestWidgetIDsUniqueWithRepeatingGenerator(t *testing.T) {
	n := 0
	gen := func() string {
		n++
		return fmt.Sprintf("w_%d", n/2)
	}
	s := NewStore(WithIDGenerator(gen))

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		w, ok := s.AddWidget(DefaultDashboardID, WidgetSpec{Type: models.WidgetBar, Title: "t"})
		require.True(t, ok)
		assert.False(t, seen[w.ID], "duplicate id %s", w.ID)
		seen[w.ID] = true
	}
}

func TestWidgetIDsUniqueUnderBurst(t *testing.T) {
	s := NewStore()
	for i := 0; i < 500; i++ {
		_, ok := s.AddWidget(DefaultDashboardID, WidgetSpec{Type: models.WidgetMetric, Title: "m"})
		require.True(t, ok)
	}
	d, _ := s.Dashboard(DefaultDashboardID)
	seen := map[string]bool{}
	for _, id := range widgetIDs(d) {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestConcurrentAddsAreSafe(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddWidget(DefaultDashboardID, WidgetSpec{Type: models.WidgetPie, Title: "p"})
			_ = s.Dashboards()
		}()
	}
	wg.Wait()
	d, _ := s.Dashboard(DefaultDashboardID)
	assert.Len(t, d.Widgets, 23)
}

func TestDashboardReturnsCopy(t *testing.T) {
	s := NewStore()
	d, _ := s.Dashboard(DefaultDashboardID)
	d.Widgets[0].Title = "mutated"
	d.Widgets[0].Config["color"] = "red"

	again, _ := s.Dashboard(DefaultDashboardID)
	assert.Equal(t, "Total Mentions", again.Widgets[0].Title)
	assert.Equal(t, "blue", again.Widgets[0].Config["color"])
}

func TestCreateDashboard(t *testing.T) {
	s := NewStore()
	d := s.CreateDashboard("Crisis Room")
	assert.Equal(t, "2", d.ID)
	assert.Empty(t, d.Widgets)
	assert.Len(t, s.Dashboards(), 2)

	_, ok := s.AddWidget(d.ID, WidgetSpec{Type: models.WidgetMetric, Title: "Alerts"})
	assert.True(t, ok)
}

func TestWithDashboards(t *testing.T) {
	s := NewStore(WithDashboards([]models.Dashboard{{ID: "9", Name: "Loaded"}}))
	all := s.Dashboards()
	require.Len(t, all, 1)
	assert.Equal(t, "Loaded", all[0].Name)
	_, ok := s.Dashboard(DefaultDashboardID)
	assert.False(t, ok)
}

func TestSampleData(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	metric := SampleData(models.WidgetMetric, rng)
	require.Len(t, metric, 1)
	assert.GreaterOrEqual(t, metric[0].Value, 0.0)
	assert.Less(t, metric[0].Value, 10000.0)
	assert.Less(t, metric[0].Change, 20.0)

	bar := SampleData(models.WidgetBar, rng)
	require.Len(t, bar, 3)
	for _, p := range bar {
		assert.Less(t, p.Value, 100.0)
	}

	pie := SampleData(models.WidgetPie, rng)
	require.Len(t, pie, 3)
	total := 0.0
	for _, p := range pie {
		total += p.Value
		assert.NotEmpty(t, p.Color)
	}
	assert.Equal(t, 100.0, total)

	line := SampleData(models.WidgetLine, rng)
	assert.Len(t, line, 5)
	assert.Equal(t, "Jan", line[0].Name)

	assert.Empty(t, SampleData("radar", rng))
}

func TestSaveKeepsLatestSnapshot(t *testing.T) {
	s := NewStore()
	var persisted models.Dashboard

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, ok := s.AddWidget(DefaultDashboardID, WidgetSpec{Type: models.WidgetBar, Title: fmt.Sprintf("w%d", i)})
			assert.True(t, ok)
			err := s.Save(func(dashboards []models.Dashboard) error {
				persisted = dashboards[0]
				return nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	current, ok := s.Dashboard(DefaultDashboardID)
	require.True(t, ok)
	assert.Len(t, current.Widgets, 23)
	assert.Equal(t, widgetIDs(current), widgetIDs(persisted))
}

func TestSaveReturnsWriteError(t *testing.T) {
	s := NewStore()
	err := s.Save(func([]models.Dashboard) error { return fmt.Errorf("disk full") })
	assert.EqualError(t, err, "disk full")
}
