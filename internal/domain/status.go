package domain

import (
	"regexp"
	"strings"
)

// Status is the closed compliance verdict for one measure.
type Status string

const (
	StatusCompliant     Status = "Conforme"
	StatusPartial       Status = "Partiellement conforme"
	StatusNonCompliant  Status = "Non conforme"
	StatusNoAnswer      Status = "Pas réponse"
	StatusNotApplicable Status = "NA"

	// StatusUnknown is the "no match" variant returned by ParseStatus.
	// Callers coerce it to StatusNoAnswer before storing.
	StatusUnknown Status = ""
)

// Statuses lists the storable statuses in display order.
var Statuses = []Status{
	StatusCompliant,
	StatusPartial,
	StatusNonCompliant,
	StatusNoAnswer,
	StatusNotApplicable,
}

// IsValid reports whether s is a storable member of the closed enumeration.
func (s Status) IsValid() bool {
	switch s {
	case StatusCompliant, StatusPartial, StatusNonCompliant, StatusNoAnswer, StatusNotApplicable:
		return true
	}
	return false
}

// Score maps a status to its fixed maturity score in [0,1].
// NA and Unknown have no defined score.
func (s Status) Score() (float64, bool) {
	switch s {
	case StatusCompliant:
		return 1.0, true
	case StatusPartial:
		return 0.5, true
	case StatusNonCompliant:
		return 0.0, true
	case StatusNoAnswer:
		return 0.25, true
	}
	return 0, false
}

// Priority derives a remediation priority from the status.
func (s Status) Priority() string {
	switch s {
	case StatusNonCompliant:
		return "Haute"
	case StatusPartial, StatusNoAnswer:
		return "Moyenne"
	case StatusCompliant:
		return "Basse"
	}
	return ""
}

// Recommendation returns the canned recommendation for a status within a theme.
func (s Status) Recommendation(theme string) string {
	switch s {
	case StatusNonCompliant:
		return "Mettre en place des mesures conformes au domaine « " + theme + " »."
	case StatusPartial, StatusNoAnswer:
		return "Compléter et formaliser les mesures existantes pour le domaine « " + theme + " »."
	case StatusCompliant:
		return "Maintenir les bonnes pratiques en place."
	}
	return ""
}

// Coerce clamps s into the storable status domain, mapping anything
// unrecognized to StatusNoAnswer.
func (s Status) Coerce() Status {
	if s.IsValid() {
		return s
	}
	return StatusNoAnswer
}

// notApplicablePhrases are checked before label matching so that
// "N/A - hors périmètre" does not fall through to a label scan.
var notApplicablePhrases = []string{
	"n/a",
	"non applicable",
	"not applicable",
	"hors périmètre",
	"hors perimetre",
	"sans objet",
}

// statusLabels is ordered longest-first: "Partiellement conforme" and
// "Non conforme" both contain "conforme" as a substring.
var statusLabels = []Status{
	StatusPartial,
	StatusNonCompliant,
	StatusNoAnswer,
	StatusCompliant,
}

var statusLineRe = regexp.MustCompile(`(?i)statuts?\s*:\s*([^\n.;]+)`)

// ParseStatus detects a compliance status in free-form text.
// It is total and pure: unrecognized input yields StatusUnknown, never an error.
func ParseStatus(text string) Status {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return StatusUnknown
	}

	for _, phrase := range notApplicablePhrases {
		if strings.Contains(lower, phrase) {
			return StatusNotApplicable
		}
	}

	if s := matchLabel(lower); s != StatusUnknown {
		return s
	}

	if m := statusLineRe.FindStringSubmatch(lower); m != nil {
		value := strings.ReplaceAll(m[1], "-", " ")
		if s := matchLabel(value); s != StatusUnknown {
			return s
		}
	}

	return StatusUnknown
}

func matchLabel(lower string) Status {
	for _, label := range statusLabels {
		if strings.Contains(lower, strings.ToLower(string(label))) {
			return label
		}
	}
	return StatusUnknown
}
