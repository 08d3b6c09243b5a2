package models

// TalentRecord is a job-seeker profile as stored or as passed in job variables.
// Optional fields are pointers; the matching normalizer decides what absence means.
type TalentRecord struct {
	ID               string             `json:"id"`
	Version          string             `json:"version,omitempty"`
	RoleLevel        string             `json:"roleLevel,omitempty"`
	CurrentLocation  string             `json:"currentLocation,omitempty"`
	Divisions        []string           `json:"divisions,omitempty"`
	YearsInLuxury    *int               `json:"yearsInLuxury,omitempty"`
	Languages        []string           `json:"languages,omitempty"`
	Preferences      CareerPreferences  `json:"preferences"`
	AssessmentScores map[string]float64 `json:"assessmentScores,omitempty"`
	Compensation     *SalaryExpectation `json:"compensation,omitempty"`
}

type CareerPreferences struct {
	TargetRoleLevels []string `json:"targetRoleLevels,omitempty"`
	TargetLocations  []string `json:"targetLocations,omitempty"`
	Mobility         string   `json:"mobility,omitempty"`
}

// SalaryExpectation is what the talent expects to earn. Hidden expectations
// are treated as absent by every consumer.
type SalaryExpectation struct {
	Amount   *float64 `json:"amount,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Hidden   bool     `json:"hidden,omitempty"`
}
