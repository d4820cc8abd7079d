package domain

// GapRow is one derived, read-only row of the gap analysis. Rows are
// recomputed fully on every scoring pass.
type GapRow struct {
	ClientName     string
	Theme          string
	MeasureID      string
	Title          string
	Question       string
	Answer         string
	Status         Status
	Score          float64
	Scored         bool
	Priority       string
	Recommendation string
	Justification  string
	DueDate        string
}

// ThemeScore is the aggregated maturity for one theme. Undefined means
// every row in the theme was NA (or the theme had no scored rows).
type ThemeScore struct {
	Theme    string
	Maturity float64
	Defined  bool
	Measures int
}

// ActionItem is one row of the remediation plan. Compliant measures
// produce no action.
type ActionItem struct {
	MeasureID     string
	Theme         string
	Action        string
	Priority      string
	Owner         string
	Justification string
	DueDate       string
	FollowUp      string
}
