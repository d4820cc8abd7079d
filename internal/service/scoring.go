package service

import (
	"time"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
)

const (
	// DefaultOwner is assigned to every action plan item.
	DefaultOwner = "RSSI"
	// remediationDelay is the due date horizon for open actions.
	remediationDelay = 90 * 24 * time.Hour

	dateLayout = "2006-01-02"
)

// BuildGapRows derives one gap analysis row per measure, in measure
// order. The function is pure given its inputs; now is injected so the
// same assessment always yields the same rows.
func BuildGapRows(clientName string, measures []domain.Measure, assessment domain.Assessment, now time.Time) []domain.GapRow {
	dueDate := now.Add(remediationDelay).Format(dateLayout)

	rows := make([]domain.GapRow, 0, len(measures))
	for _, m := range measures {
		entry := assessment.Get(m.ID)
		status := entry.Status.Coerce()
		score, scored := status.Score()

		row := domain.GapRow{
			ClientName:     clientName,
			Theme:          m.Theme,
			MeasureID:      m.ID,
			Title:          m.Title,
			Question:       m.Question,
			Answer:         entry.Answer,
			Status:         status,
			Score:          score,
			Scored:         scored,
			Priority:       status.Priority(),
			Recommendation: status.Recommendation(m.Theme),
			Justification:  entry.Justification,
		}
		if status != domain.StatusCompliant && status != domain.StatusNotApplicable {
			row.DueDate = dueDate
		}
		rows = append(rows, row)
	}
	return rows
}

// ThemeScores aggregates row scores per theme, in first-appearance
// order. NA rows count in Measures but neither in the numerator nor the
// denominator of the maturity mean; a theme with only NA rows is
// undefined rather than zero.
func ThemeScores(rows []domain.GapRow) []domain.ThemeScore {
	type acc struct {
		sum      float64
		scored   int
		measures int
	}

	order := make([]string, 0)
	byTheme := make(map[string]*acc)
	for _, row := range rows {
		a, ok := byTheme[row.Theme]
		if !ok {
			a = &acc{}
			byTheme[row.Theme] = a
			order = append(order, row.Theme)
		}
		a.measures++
		if row.Scored {
			a.sum += row.Score
			a.scored++
		}
	}

	scores := make([]domain.ThemeScore, 0, len(order))
	for _, theme := range order {
		a := byTheme[theme]
		score := domain.ThemeScore{Theme: theme, Measures: a.measures}
		if a.scored > 0 {
			score.Maturity = a.sum / float64(a.scored)
			score.Defined = true
		}
		scores = append(scores, score)
	}
	return scores
}

// GlobalMaturity is the mean score over all scored rows. The second
// return value is false when no row carries a score.
func GlobalMaturity(rows []domain.GapRow) (float64, bool) {
	var sum float64
	var scored int
	for _, row := range rows {
		if row.Scored {
			sum += row.Score
			scored++
		}
	}
	if scored == 0 {
		return 0, false
	}
	return sum / float64(scored), true
}

// BuildActionPlan derives remediation items from gap rows. Compliant
// and NA rows produce no action. Owner defaults to DefaultOwner when
// empty.
func BuildActionPlan(rows []domain.GapRow, owner string) []domain.ActionItem {
	if owner == "" {
		owner = DefaultOwner
	}

	items := make([]domain.ActionItem, 0)
	for _, row := range rows {
		if row.Status == domain.StatusCompliant || row.Status == domain.StatusNotApplicable {
			continue
		}
		items = append(items, domain.ActionItem{
			MeasureID:     row.MeasureID,
			Theme:         row.Theme,
			Action:        row.Recommendation,
			Priority:      row.Priority,
			Owner:         owner,
			Justification: row.Justification,
			DueDate:       row.DueDate,
			FollowUp:      "À planifier",
		})
	}
	return items
}
