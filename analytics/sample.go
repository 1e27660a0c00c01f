// ABOUTME: Seed dashboard and per-type placeholder series for new widgets
// ABOUTME: Random values come from an injected source so tests can pin them
package analytics

import (
	"math/rand"

	"github.com/harperreed/socialpulse/models"
)

// DefaultDashboardID is the id of the seeded dashboard.
const DefaultDashboardID = "1"

// DefaultDashboard returns the seeded "Main Dashboard".
func DefaultDashboard() models.Dashboard {
	return models.Dashboard{
		ID:   DefaultDashboardID,
		Name: "Main Dashboard",
		Widgets: []models.Widget{
			{
				ID:     "w1",
				Type:   models.WidgetMetric,
				Title:  "Total Mentions",
				Size:   models.SizeSmall,
				Data:   []models.DataPoint{{Value: 24891, Change: 12.5}},
				Config: map[string]any{"color": "blue"},
			},
			{
				ID:    "w2",
				Type:  models.WidgetBar,
				Title: "Sentiment by Platform",
				Size:  models.SizeMedium,
				Data: []models.DataPoint{
					{Name: "Twitter", Positive: 45, Negative: 20, Neutral: 35},
					{Name: "Instagram", Positive: 60, Negative: 15, Neutral: 25},
					{Name: "Reddit", Positive: 30, Negative: 40, Neutral: 30},
				},
				Config: map[string]any{},
			},
			{
				ID:    "w3",
				Type:  models.WidgetPie,
				Title: "Emotion Distribution",
				Size:  models.SizeMedium,
				Data: []models.DataPoint{
					{Name: "Joy", Value: 35, Color: "#10b981"},
					{Name: "Anger", Value: 25, Color: "#ef4444"},
					{Name: "Fear", Value: 20, Color: "#f59e0b"},
					{Name: "Sadness", Value: 20, Color: "#6366f1"},
				},
				Config: map[string]any{},
			},
		},
	}
}

// SampleData builds placeholder data for a widget of the given type.
// Unknown types get an empty series.
func SampleData(widgetType string, rng *rand.Rand) []models.DataPoint {
	switch widgetType {
	case models.WidgetMetric:
		return []models.DataPoint{{
			Value:  float64(rng.Intn(10000)),
			Change: float64(rng.Intn(20)),
		}}
	case models.WidgetBar:
		return []models.DataPoint{
			{Name: "A", Value: float64(rng.Intn(100))},
			{Name: "B", Value: float64(rng.Intn(100))},
			{Name: "C", Value: float64(rng.Intn(100))},
		}
	case models.WidgetPie:
		return []models.DataPoint{
			{Name: "Category 1", Value: 40, Color: "#8b5cf6"},
			{Name: "Category 2", Value: 30, Color: "#3b82f6"},
			{Name: "Category 3", Value: 30, Color: "#10b981"},
		}
	case models.WidgetLine:
		return []models.DataPoint{
			{Name: "Jan", Value: 100},
			{Name: "Feb", Value: 120},
			{Name: "Mar", Value: 150},
			{Name: "Apr", Value: 130},
			{Name: "May", Value: 180},
		}
	default:
		return []models.DataPoint{}
	}
}
