package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PostMortemRequest is the transient input for one document generation. It
// is built from user input, validated for presence only, rendered once and
// discarded; nothing is persisted beyond the written file.
type PostMortemRequest struct {
	IncidentName string   `json:"incident" validate:"required"`
	IncidentDate string   `json:"date" validate:"required"`
	Duration     string   `json:"duration" validate:"required"`
	Impact       string   `json:"impact" validate:"required"`
	RootCause    string   `json:"rootCause" validate:"required"`
	Timeline     string   `json:"timeline"`
	Resolution   string   `json:"resolution"`
	ActionItems  []string `json:"actionItems,omitempty"`
}

// MissingFieldError reports a required field that was absent or empty,
// identified by its JSON key.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

var validate = validator.New()

// struct field -> wire name, for error reporting
var jsonFieldNames = map[string]string{
	"IncidentName": "incident",
	"IncidentDate": "date",
	"Duration":     "duration",
	"Impact":       "impact",
	"RootCause":    "rootCause",
}

// Validate checks presence of the five required fields and reports the
// first missing one as a MissingFieldError. Field content is never
// inspected beyond presence; date shape problems degrade at render time.
func (r *PostMortemRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].StructField()
		if name, ok := jsonFieldNames[field]; ok {
			field = name
		}
		return &MissingFieldError{Field: field}
	}
	return fmt.Errorf("failed to validate request: %w", err)
}

// Filename derives the conventional output name,
// postmortem_<date>_<name>.md with the name lowercased and spaces replaced
// by underscores.
func (r *PostMortemRequest) Filename() string {
	name := strings.ReplaceAll(strings.ToLower(r.IncidentName), " ", "_")
	return fmt.Sprintf("postmortem_%s_%s.md", r.IncidentDate, name)
}
