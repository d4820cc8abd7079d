package report

import (
	"github.com/xuri/excelize/v2"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/service"
)

const (
	sheetResults   = "Résultats"
	sheetSummary   = "Synthèse"
	sheetActions   = "Plan d'actions"
	defaultSheet   = "Sheet1"
	headerFill     = "4F81BD"
	headerFontHexa = "FFFFFF"
)

var resultHeaders = []string{
	"Thème", "ID", "Mesure", "Question", "Réponse", "Statut", "Score", "Priorité", "Recommandation", "Justification", "Échéance",
}

var actionHeaders = []string{
	"ID", "Thème", "Action", "Priorité", "Responsable", "Justification", "Échéance", "Suivi",
}

// buildWorkbook assembles the three-sheet gap analysis workbook:
// detail rows, per-theme synthesis and the remediation plan.
func buildWorkbook(clientName string, analysis service.Analysis) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: headerFontHexa},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	if err := writeResultsSheet(f, headerStyle, analysis); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, headerStyle, clientName, analysis); err != nil {
		return nil, err
	}
	if err := writeActionsSheet(f, headerStyle, analysis); err != nil {
		return nil, err
	}

	if err := f.DeleteSheet(defaultSheet); err != nil {
		return nil, err
	}
	idx, err := f.GetSheetIndex(sheetResults)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)

	return f, nil
}

func writeResultsSheet(f *excelize.File, headerStyle int, analysis service.Analysis) error {
	if _, err := f.NewSheet(sheetResults); err != nil {
		return err
	}
	if err := writeHeader(f, sheetResults, headerStyle, resultHeaders); err != nil {
		return err
	}

	for i, row := range analysis.Rows {
		values := []interface{}{
			row.Theme, row.MeasureID, row.Title, row.Question, row.Answer,
			string(row.Status), scoreLabel(row), row.Priority,
			row.Recommendation, row.Justification, row.DueDate,
		}
		if err := writeRow(f, sheetResults, i+2, values); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetResults, "A", "K", 24)
}

func writeSummarySheet(f *excelize.File, headerStyle int, clientName string, analysis service.Analysis) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}

	if err := f.SetCellValue(sheetSummary, "A1", "Client"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetSummary, "B1", clientName); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetSummary, "A2", "Maturité globale"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetSummary, "B2", maturityLabel(analysis.Global, analysis.Defined)); err != nil {
		return err
	}

	headerRow := 4
	headers := []string{"Thème", "Mesures", "Maturité"}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetSummary, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetSummary, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for i, theme := range analysis.Themes {
		values := []interface{}{theme.Theme, theme.Measures, maturityLabel(theme.Maturity, theme.Defined)}
		if err := writeRow(f, sheetSummary, headerRow+1+i, values); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetSummary, "A", "C", 32)
}

func writeActionsSheet(f *excelize.File, headerStyle int, analysis service.Analysis) error {
	if _, err := f.NewSheet(sheetActions); err != nil {
		return err
	}
	if err := writeHeader(f, sheetActions, headerStyle, actionHeaders); err != nil {
		return err
	}

	for i, item := range analysis.Actions {
		values := []interface{}{
			item.MeasureID, item.Theme, item.Action, item.Priority,
			item.Owner, item.Justification, item.DueDate, item.FollowUp,
		}
		if err := writeRow(f, sheetActions, i+2, values); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetActions, "A", "H", 24)
}

func writeHeader(f *excelize.File, sheet string, style int, headers []string) error {
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
