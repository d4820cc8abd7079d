package report

import (
	"fmt"

	"github.com/unidoc/unioffice/document"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/service"
)

// buildReport assembles the narrative audit report: a synthesis page,
// one section per theme with each measure's verdict, and the
// remediation plan as a table.
func buildReport(sess *domain.Session, analysis service.Analysis) *document.Document {
	doc := document.New()

	title := doc.AddParagraph()
	title.SetStyle("Title")
	title.AddRun().AddText("Rapport d'audit sécurité")

	subtitle := doc.AddParagraph()
	subtitle.AddRun().AddText(fmt.Sprintf("Client : %s", sess.ClientName))
	mode := doc.AddParagraph()
	mode.AddRun().AddText(fmt.Sprintf("Mode d'audit : %s", sess.Mode))
	date := doc.AddParagraph()
	date.AddRun().AddText(fmt.Sprintf("Date : %s", sess.CreatedAt.Format("02/01/2006")))

	doc.AddParagraph()

	synthesis := doc.AddParagraph()
	synthesis.SetStyle("Heading1")
	synthesis.AddRun().AddText("Synthèse")

	global := doc.AddParagraph()
	global.AddRun().AddText(fmt.Sprintf("Maturité globale : %s", maturityLabel(analysis.Global, analysis.Defined)))

	for _, theme := range analysis.Themes {
		line := doc.AddParagraph()
		line.AddRun().AddText(fmt.Sprintf("%s : %s (%d mesures)", theme.Theme, maturityLabel(theme.Maturity, theme.Defined), theme.Measures))
	}

	writeThemeSections(doc, analysis)
	writeActionTable(doc, analysis)

	return doc
}

func writeThemeSections(doc *document.Document, analysis service.Analysis) {
	detail := doc.AddParagraph()
	detail.SetStyle("Heading1")
	detail.AddRun().AddText("Résultats détaillés")

	var currentTheme string
	for _, row := range analysis.Rows {
		if row.Theme != currentTheme {
			currentTheme = row.Theme
			heading := doc.AddParagraph()
			heading.SetStyle("Heading2")
			heading.AddRun().AddText(currentTheme)
		}

		measure := doc.AddParagraph()
		measure.SetStyle("Heading3")
		measure.AddRun().AddText(fmt.Sprintf("%s – %s", row.MeasureID, row.Title))

		status := doc.AddParagraph()
		run := status.AddRun()
		run.Properties().SetBold(true)
		run.AddText(fmt.Sprintf("Statut : %s", row.Status))

		if row.Justification != "" {
			just := doc.AddParagraph()
			just.AddRun().AddText(fmt.Sprintf("Justification : %s", row.Justification))
		}
		if row.Recommendation != "" && row.Status != domain.StatusCompliant {
			reco := doc.AddParagraph()
			reco.AddRun().AddText(fmt.Sprintf("Recommandation : %s", row.Recommendation))
		}
	}
}

func writeActionTable(doc *document.Document, analysis service.Analysis) {
	heading := doc.AddParagraph()
	heading.SetStyle("Heading1")
	heading.AddRun().AddText("Plan d'actions")

	table := doc.AddTable()
	table.Properties().SetWidthPercent(100)

	header := table.AddRow()
	for _, h := range actionHeaders {
		cell := header.AddCell()
		run := cell.AddParagraph().AddRun()
		run.Properties().SetBold(true)
		run.AddText(h)
	}

	for _, item := range analysis.Actions {
		row := table.AddRow()
		for _, value := range []string{
			item.MeasureID, item.Theme, item.Action, item.Priority,
			item.Owner, item.Justification, item.DueDate, item.FollowUp,
		} {
			row.AddCell().AddParagraph().AddRun().AddText(value)
		}
	}
}
