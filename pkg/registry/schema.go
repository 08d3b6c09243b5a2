package registry

import (
	"fmt"
	"time"
)

// Category groups activities by the engine they front.
type Category string

const (
	CategoryMatching     Category = "matching"
	CategoryCompensation Category = "compensation"
)

// ActivityRegistry is the catalogue of job types the worker manager serves.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one zeebe task type: its contract and retry policy.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             Category               `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows,omitempty"`
	Tags                 []string               `json:"tags,omitempty"`
}

// TimeoutDuration parses Timeout. An empty value means no per-activity limit.
func (a Activity) TimeoutDuration() (time.Duration, error) {
	if a.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0, fmt.Errorf("activity %q: invalid timeout %q: %w", a.ID, a.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("activity %q: negative timeout %q", a.ID, a.Timeout)
	}
	return d, nil
}

// DeclaresError reports whether code is part of the activity's error contract.
func (a Activity) DeclaresError(code string) bool {
	for _, c := range a.ErrorCodes {
		if c == code {
			return true
		}
	}
	return false
}

func (a Activity) validate() error {
	if a.TaskType == "" {
		return fmt.Errorf("activity %q has no task type", a.ID)
	}
	switch a.Category {
	case CategoryMatching, CategoryCompensation, "":
	default:
		return fmt.Errorf("activity %q: unknown category %q", a.ID, a.Category)
	}
	if a.Retries < 0 {
		return fmt.Errorf("activity %q: negative retries", a.ID)
	}
	_, err := a.TimeoutDuration()
	return err
}
