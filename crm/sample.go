// ABOUTME: Seed contacts and opportunities for demos and tests
// ABOUTME: Opportunity contact ids point at the seeded contacts
package crm

import (
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/socialpulse/models"
)

var (
	sarahID = uuid.MustParse("3f9d5b1e-8c1a-4c9e-9b61-1a0f6f1b0001")
	mikeID  = uuid.MustParse("3f9d5b1e-8c1a-4c9e-9b61-1a0f6f1b0002")
	emilyID = uuid.MustParse("3f9d5b1e-8c1a-4c9e-9b61-1a0f6f1b0003")
)

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

// SampleContacts returns the three seed contacts.
func SampleContacts() []models.Contact {
	return []models.Contact{
		{
			ID:          sarahID,
			Name:        "Sarah Johnson",
			Email:       "sarah@techcorp.com",
			Phone:       "+1-555-0123",
			Company:     "TechCorp Inc",
			Role:        "Marketing Director",
			Status:      models.StatusHot,
			LastContact: day("2024-01-15"),
			Source:      "LinkedIn",
		},
		{
			ID:          mikeID,
			Name:        "Mike Chen",
			Email:       "mike@startupx.com",
			Phone:       "+1-555-0124",
			Company:     "StartupX",
			Role:        "CEO",
			Status:      models.StatusWarm,
			LastContact: day("2024-01-12"),
			Source:      "Referral",
		},
		{
			ID:          emilyID,
			Name:        "Emily Davis",
			Email:       "emily@bigbrand.com",
			Phone:       "+1-555-0125",
			Company:     "BigBrand Corp",
			Role:        "CMO",
			Status:      models.StatusCold,
			LastContact: day("2024-01-08"),
			Source:      "Website",
		},
	}
}

// SampleOpportunities returns the three seed opportunities.
func SampleOpportunities() []models.Opportunity {
	return []models.Opportunity{
		{
			ID:          uuid.MustParse("7b2e4c10-5d3a-4f7e-8a21-2b0f7e2c0001"),
			Title:       "Enterprise License - TechCorp",
			ContactID:   &sarahID,
			Value:       50000,
			Stage:       models.StageProposal,
			Probability: 75,
			CloseDate:   day("2024-02-15"),
		},
		{
			ID:          uuid.MustParse("7b2e4c10-5d3a-4f7e-8a21-2b0f7e2c0002"),
			Title:       "Startup Package - StartupX",
			ContactID:   &mikeID,
			Value:       15000,
			Stage:       models.StageQualification,
			Probability: 60,
			CloseDate:   day("2024-03-01"),
		},
		{
			ID:          uuid.MustParse("7b2e4c10-5d3a-4f7e-8a21-2b0f7e2c0003"),
			Title:       "Custom Solution - BigBrand",
			ContactID:   &emilyID,
			Value:       75000,
			Stage:       models.StageProspecting,
			Probability: 25,
			CloseDate:   day("2024-04-30"),
		},
	}
}
