package models

// OpportunityRecord is a job listing as stored or as passed in job variables.
type OpportunityRecord struct {
	ID                 string   `json:"id"`
	Version            string   `json:"version,omitempty"`
	Title              string   `json:"title,omitempty"`
	RoleLevel          string   `json:"roleLevel,omitempty"`
	Division           string   `json:"division,omitempty"`
	Location           Location `json:"location"`
	MinExperienceYears *int     `json:"minExperienceYears,omitempty"`
	RequiredLanguages  []string `json:"requiredLanguages,omitempty"`
	Budget             Budget   `json:"budget"`
}

type Location struct {
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

type Budget struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Currency string   `json:"currency,omitempty"`
}
