package matching

import "talent-match-workers/internal/models"

func intPtr(v int) *int { return &v }

func perfectTalent() models.TalentRecord {
	return models.TalentRecord{
		ID:              "t-1",
		Version:         "3",
		RoleLevel:       "L3",
		CurrentLocation: "Paris, France",
		Divisions:       []string{"Watches"},
		YearsInLuxury:   intPtr(8),
		Languages:       []string{"en", "Français"},
		Preferences: models.CareerPreferences{
			TargetRoleLevels: []string{"L3"},
			Mobility:         "national",
		},
		AssessmentScores: map[string]float64{
			"leadership":             100,
			"operational_excellence": 100,
			"client_relationship":    100,
			"product_knowledge":      100,
		},
	}
}

func perfectOpportunity() models.OpportunityRecord {
	return models.OpportunityRecord{
		ID:                 "o-1",
		Version:            "7",
		Title:              "Boutique Manager",
		RoleLevel:          "L3",
		Division:           "watches",
		Location:           models.Location{City: "Paris", Country: "France"},
		MinExperienceYears: intPtr(5),
		RequiredLanguages:  []string{"English", "French"},
	}
}
