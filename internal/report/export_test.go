package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/service"
)

func reportSession() *domain.Session {
	sess := domain.NewSession("s-1", "ACME Industries", domain.AuditModeInternal, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	measures := service.Questionnaire(sess.Mode)
	sess.Assessment.Set(measures[0].ID, domain.AssessmentEntry{
		Status:        domain.StatusCompliant,
		Justification: "Une politique est approuvée par la direction.",
	})
	sess.Assessment.Set(measures[1].ID, domain.AssessmentEntry{
		Status:        domain.StatusNonCompliant,
		Justification: "Aucun document fourni.",
	})
	return sess
}

func reportAnalysis(sess *domain.Session) service.Analysis {
	return service.BuildAnalysis(sess, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"ACME Industries", "acme_industries"},
		{"Société Générale", "socit_gnrale"},
		{"../../etc/passwd", "______etc_passwd"},
		{"", "client"},
		{"***", "client"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, safeFileName(tt.in), tt.in)
	}
}

func TestExcelExport(t *testing.T) {
	exporter := NewExporter(t.TempDir())
	sess := reportSession()
	analysis := reportAnalysis(sess)

	name, err := exporter.Excel(sess, analysis)
	require.NoError(t, err)
	assert.Equal(t, "gap_analysis_acme_industries.xlsx", name)

	path, err := exporter.Open(name)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, sheetResults)
	assert.Contains(t, sheets, sheetSummary)
	assert.Contains(t, sheets, sheetActions)
	assert.NotContains(t, sheets, defaultSheet)

	header, err := f.GetCellValue(sheetResults, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Thème", header)

	firstID, err := f.GetCellValue(sheetResults, "B2")
	require.NoError(t, err)
	assert.Equal(t, analysis.Rows[0].MeasureID, firstID)

	client, err := f.GetCellValue(sheetSummary, "B1")
	require.NoError(t, err)
	assert.Equal(t, "ACME Industries", client)
}

func TestCSVExport(t *testing.T) {
	exporter := NewExporter(t.TempDir())
	sess := reportSession()
	analysis := reportAnalysis(sess)

	name, err := exporter.CSV(sess, analysis)
	require.NoError(t, err)
	assert.Equal(t, "gap_analysis_acme_industries.csv", name)

	path, err := exporter.Open(name)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(analysis.Rows)+1)
	assert.Equal(t, resultHeaders, records[0])
	assert.Equal(t, analysis.Rows[0].MeasureID, records[1][1])
	assert.Equal(t, string(domain.StatusCompliant), records[1][5])
}

func TestWordReportStructure(t *testing.T) {
	sess := reportSession()
	doc := buildReport(sess, reportAnalysis(sess))
	defer doc.Close()

	require.NotNil(t, doc)
	assert.NotEmpty(t, doc.Paragraphs())
	assert.NotEmpty(t, doc.Tables())
}

func TestOpenRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	exporter := NewExporter(dir)

	// A real file outside the output dir must stay unreachable.
	outside := filepath.Join(dir, "..", "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))
	defer os.Remove(outside)

	_, err := exporter.Open("../secret.txt")
	assert.ErrorIs(t, err, domain.ErrExportNotFound)

	_, err = exporter.Open("")
	assert.ErrorIs(t, err, domain.ErrExportNotFound)

	_, err = exporter.Open("missing.xlsx")
	assert.ErrorIs(t, err, domain.ErrExportNotFound)
}

func TestScoreLabels(t *testing.T) {
	assert.Equal(t, "50%", scoreLabel(domain.GapRow{Score: 0.5, Scored: true}))
	assert.Equal(t, "NA", scoreLabel(domain.GapRow{}))
	assert.Equal(t, "41.7%", maturityLabel(0.41666, true))
	assert.Equal(t, "NA", maturityLabel(0, false))
}
