package domain

import "fmt"

// Measure is one atomic checklist item from a compliance reference
// (ANSSI hygiene guide measure or ISO 27001 clause question).
type Measure struct {
	ID    string
	Theme string
	Title string
	// Question is the human-readable audit question derived from the title.
	Question string
}

// ValidateMeasure validates a Measure instance.
func ValidateMeasure(m *Measure) error {
	if m == nil {
		return fmt.Errorf("measure cannot be nil")
	}

	if m.ID == "" {
		return fmt.Errorf("measure ID is required")
	}

	if m.Theme == "" {
		return fmt.Errorf("measure Theme is required")
	}

	if m.Title == "" {
		return fmt.Errorf("measure Title is required")
	}

	return nil
}

// AuditMode selects which questionnaire a session walks through.
type AuditMode string

const (
	// AuditModeInternal covers the annex A control questionnaire only.
	AuditModeInternal AuditMode = "interne"
	// AuditModeOfficial prepends the management clause questionnaire
	// (clauses 4-10) for pre-certification audits.
	AuditModeOfficial AuditMode = "officiel"
)

// IsValid reports whether the audit mode is a known value.
func (m AuditMode) IsValid() bool {
	return m == AuditModeInternal || m == AuditModeOfficial
}
