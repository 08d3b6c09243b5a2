// Package validation checks job variables against the input schemas of the
// activity registry.
package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"talent-match-workers/internal/common/errors"
	"talent-match-workers/pkg/registry"
)

// Validator holds one compiled schema per task type.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// NewValidator compiles every input schema in reg. A schema that does not
// compile is a configuration error.
func NewValidator(reg *registry.ActivityRegistry) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(reg.Activities))}
	for _, a := range reg.Activities {
		if len(a.InputSchema) == 0 {
			continue
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(a.InputSchema))
		if err != nil {
			return nil, errors.NewInvalidConfigurationError(fmt.Sprintf("input schema for %s: %v", a.TaskType, err))
		}
		v.schemas[a.TaskType] = schema
	}
	return v, nil
}

// NewDefaultValidator uses the embedded registry.
func NewDefaultValidator() (*Validator, error) {
	reg, err := registry.Load()
	if err != nil {
		return nil, errors.NewInvalidConfigurationError(err.Error())
	}
	return NewValidator(reg)
}

// Validate checks already-decoded variables. Task types without a schema
// accept anything.
func (v *Validator) Validate(taskType string, variables map[string]interface{}) error {
	schema, ok := v.schemas[taskType]
	if !ok {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(variables))
	if err != nil {
		return errors.NewInvalidInputError(fmt.Sprintf("validation error: %v", err))
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	sort.Strings(msgs)
	return errors.NewInvalidInputError(strings.Join(msgs, "; "))
}

// ValidateJSON decodes raw job variables and validates them.
func (v *Validator) ValidateJSON(taskType, raw string) (map[string]interface{}, error) {
	variables := map[string]interface{}{}
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &variables); err != nil {
			return nil, errors.NewInvalidInputError(fmt.Sprintf("variables are not a JSON object: %v", err))
		}
	}
	if err := v.Validate(taskType, variables); err != nil {
		return nil, err
	}
	return variables, nil
}
