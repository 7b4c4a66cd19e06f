package trace

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Phase distinguishes the record written before forwarding from the one written after.
type Phase string

// Call phases
const (
	PhaseEntry Phase = "entry"
	PhaseExit  Phase = "exit"
)

// Record is one rendered parameter.
type Record struct {
	Name string
	// Dir is "in" or "out".
	Dir  string
	Text string
}

// CallEvent is one entry or exit record of an intercepted call. Entry and exit of the
// same call share Seq.
type CallEvent struct {
	RunID     string
	Seq       uint64
	Operation string
	Phase     Phase
	// Status is the raw CK_RV; only meaningful for PhaseExit.
	Status     uint
	StatusName string
	Records    []Record
	Time       time.Time
	Duration   time.Duration
}

// EventQuery filters stored call events.
type EventQuery struct {
	RunID     string `validate:"omitempty,uuid"`
	Operation string `validate:"omitempty,startswith=C_"`
	Phase     Phase  `validate:"omitempty,oneof=entry exit"`
	// FailedOnly keeps exit events whose status is not CKR_OK.
	FailedOnly bool
	Limit      int `validate:"omitempty,min=1,max=10000"`
	Offset     int `validate:"omitempty,min=0"`
}

// Validate checks the query parameters.
func (q *EventQuery) Validate() error {
	validate := validator.New()

	err := validate.Struct(q)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}
