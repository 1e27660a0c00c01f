// ABOUTME: Seed NPS responses used by demos and tests
package nps

import (
	"time"

	"github.com/harperreed/socialpulse/models"
)

func SampleResponses() []models.NPSResponse {
	date := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return []models.NPSResponse{
		{Score: 9, Feedback: "Great platform, love the AI insights!", Date: date("2024-01-15"), Source: "Email"},
		{Score: 8, Feedback: "Very useful for social monitoring", Date: date("2024-01-14"), Source: "In-app"},
		{Score: 6, Feedback: "Good but could use more features", Date: date("2024-01-13"), Source: "SMS"},
		{Score: 10, Feedback: "Excellent crisis management tools", Date: date("2024-01-12"), Source: "Email"},
	}
}
