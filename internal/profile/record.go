// Package profile holds the accumulating personality profile built
// during the onboarding assessment. The record is created with
// defaults when the wizard starts, mutated field-by-field as steps are
// answered, and handed to the chat screen as a serialized payload when
// the wizard completes.
package profile

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Conscientiousness captures how the user relates to plans.
type Conscientiousness string

const (
	Planner Conscientiousness = "planner"
	Adapter Conscientiousness = "adapter"
)

// RegulatoryFocus captures whether the user is driven by gains or by
// avoiding losses.
type RegulatoryFocus string

const (
	Promotion  RegulatoryFocus = "promotion"
	Prevention RegulatoryFocus = "prevention"
)

// LocusOfControl captures where the user places agency.
type LocusOfControl string

const (
	Internal LocusOfControl = "internal"
	External LocusOfControl = "external"
)

// Mindset captures the user's belief about ability.
type Mindset string

const (
	Fixed  Mindset = "fixed"
	Growth Mindset = "growth"
)

// Field keys as declared by step configuration. Step descriptors bind
// each interactive step to one of these.
const (
	FieldCoachingStyle     = "coachingStyle"
	FieldConscientiousness = "conscientiousness"
	FieldRegulatoryFocus   = "regulatoryFocus"
	FieldLocusOfControl    = "locusOfControl"
	FieldMindset           = "mindset"
	FieldExtraversion      = "extraversion"
	FieldAgreeableness     = "agreeableness"
	FieldCurrentFocus      = "currentFocus"
)

// Record is the flat answer record accumulated by the wizard.
type Record struct {
	CoachingStyle     string            `json:"coachingStyle,omitempty"`
	Conscientiousness Conscientiousness `json:"conscientiousness,omitempty"`
	RegulatoryFocus   RegulatoryFocus   `json:"regulatoryFocus,omitempty"`
	LocusOfControl    LocusOfControl    `json:"locusOfControl,omitempty"`
	Mindset           Mindset           `json:"mindset,omitempty"`
	Extraversion      int               `json:"extraversion"`
	Agreeableness     int               `json:"agreeableness"`
	CurrentFocus      string            `json:"currentFocus"`
}

// NewRecord returns a record with documented defaults: numeric fields
// at the 50 midpoint, enums unset, text empty.
func NewRecord() *Record {
	return &Record{
		Extraversion:  50,
		Agreeableness: 50,
	}
}

// enumValues maps enum field keys to their permitted values.
var enumValues = map[string][]string{
	FieldConscientiousness: {string(Planner), string(Adapter)},
	FieldRegulatoryFocus:   {string(Promotion), string(Prevention)},
	FieldLocusOfControl:    {string(Internal), string(External)},
	FieldMindset:           {string(Fixed), string(Growth)},
}

// KnownField reports whether key names a record field. Step
// configuration validation uses this to reject bad field bindings.
func KnownField(key string) bool {
	switch key {
	case FieldCoachingStyle, FieldConscientiousness, FieldRegulatoryFocus,
		FieldLocusOfControl, FieldMindset, FieldExtraversion,
		FieldAgreeableness, FieldCurrentFocus:
		return true
	}
	return false
}

// Set writes one field by its configuration key. Enum fields are
// checked against their permitted values; numeric fields accept int or
// float64 (JSON decoding yields float64) and are clamped to [0, 100].
func (r *Record) Set(field string, value any) error {
	switch field {
	case FieldCoachingStyle:
		s, err := asString(field, value)
		if err != nil {
			return err
		}
		r.CoachingStyle = s
	case FieldConscientiousness:
		s, err := asEnum(field, value)
		if err != nil {
			return err
		}
		r.Conscientiousness = Conscientiousness(s)
	case FieldRegulatoryFocus:
		s, err := asEnum(field, value)
		if err != nil {
			return err
		}
		r.RegulatoryFocus = RegulatoryFocus(s)
	case FieldLocusOfControl:
		s, err := asEnum(field, value)
		if err != nil {
			return err
		}
		r.LocusOfControl = LocusOfControl(s)
	case FieldMindset:
		s, err := asEnum(field, value)
		if err != nil {
			return err
		}
		r.Mindset = Mindset(s)
	case FieldExtraversion:
		n, err := asInt(field, value)
		if err != nil {
			return err
		}
		r.Extraversion = clamp(n)
	case FieldAgreeableness:
		n, err := asInt(field, value)
		if err != nil {
			return err
		}
		r.Agreeableness = clamp(n)
	case FieldCurrentFocus:
		s, err := asString(field, value)
		if err != nil {
			return err
		}
		r.CurrentFocus = strings.TrimSpace(s)
	default:
		return fmt.Errorf("unknown record field %q", field)
	}
	return nil
}

// ApplyDefaults merges the initialData block from the step
// configuration into the record. Unknown keys are an error so that a
// typo in configuration is caught at load time.
func (r *Record) ApplyDefaults(initial map[string]any) error {
	for field, value := range initial {
		if err := r.Set(field, value); err != nil {
			return fmt.Errorf("initialData: %w", err)
		}
	}
	return nil
}

// Complete reports whether every enum field is set and the current
// focus is non-empty. The wizard's terminal step produces a complete
// record when the default path is followed.
func (r *Record) Complete() bool {
	return r.Conscientiousness != "" &&
		r.RegulatoryFocus != "" &&
		r.LocusOfControl != "" &&
		r.Mindset != "" &&
		strings.TrimSpace(r.CurrentFocus) != ""
}

// Encode serializes the record for the wizard-to-chat handoff.
func (r *Record) Encode() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	return string(data), nil
}

// DecodeRecord deserializes a handoff payload. Unlike the screens this
// was modeled on, the payload is validated on receipt: enum values must
// be one of the permitted constants and numeric fields are clamped.
func DecodeRecord(payload string) (*Record, error) {
	var r Record
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if err := r.validateEnums(); err != nil {
		return nil, err
	}
	r.Extraversion = clamp(r.Extraversion)
	r.Agreeableness = clamp(r.Agreeableness)
	return &r, nil
}

func (r *Record) validateEnums() error {
	checks := []struct {
		field string
		value string
	}{
		{FieldConscientiousness, string(r.Conscientiousness)},
		{FieldRegulatoryFocus, string(r.RegulatoryFocus)},
		{FieldLocusOfControl, string(r.LocusOfControl)},
		{FieldMindset, string(r.Mindset)},
	}
	for _, c := range checks {
		if c.value == "" {
			continue // unset is allowed mid-wizard
		}
		if !validEnum(c.field, c.value) {
			return fmt.Errorf("field %q: invalid value %q", c.field, c.value)
		}
	}
	return nil
}

func validEnum(field, value string) bool {
	for _, v := range enumValues[field] {
		if v == value {
			return true
		}
	}
	return false
}

func asString(field string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %T", field, value)
	}
	return s, nil
}

func asEnum(field string, value any) (string, error) {
	s, err := asString(field, value)
	if err != nil {
		return "", err
	}
	if !validEnum(field, s) {
		return "", fmt.Errorf("field %q: invalid value %q", field, s)
	}
	return s, nil
}

func asInt(field string, value any) (int, error) {
	switch n := value.(type) {
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("field %q: expected number, got %T", field, value)
	}
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
