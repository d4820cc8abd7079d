package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oussamalaaniba/auditbot-iso27001/internal/domain"
	"github.com/oussamalaaniba/auditbot-iso27001/internal/service"
)

// Exporter writes gap analysis deliverables under a single output
// directory. Filenames are deterministic per client so re-exports
// overwrite the previous run.
type Exporter struct {
	outputDir string
}

// NewExporter creates an Exporter rooted at outputDir.
func NewExporter(outputDir string) *Exporter {
	return &Exporter{outputDir: outputDir}
}

// Excel writes the three-sheet workbook and returns its filename.
func (e *Exporter) Excel(sess *domain.Session, analysis service.Analysis) (string, error) {
	name := "gap_analysis_" + safeFileName(sess.ClientName) + ".xlsx"

	workbook, err := buildWorkbook(sess.ClientName, analysis)
	if err != nil {
		return "", fmt.Errorf("building workbook: %w", err)
	}
	defer workbook.Close()

	if err := workbook.SaveAs(filepath.Join(e.outputDir, name)); err != nil {
		return "", fmt.Errorf("saving workbook: %w", err)
	}
	return name, nil
}

// Word writes the narrative audit report and returns its filename.
func (e *Exporter) Word(sess *domain.Session, analysis service.Analysis) (string, error) {
	name := "rapport_audit_" + safeFileName(sess.ClientName) + ".docx"

	doc := buildReport(sess, analysis)
	defer doc.Close()

	if err := doc.SaveToFile(filepath.Join(e.outputDir, name)); err != nil {
		return "", fmt.Errorf("saving report: %w", err)
	}
	return name, nil
}

// CSV writes the flat detail rows and returns the filename.
func (e *Exporter) CSV(sess *domain.Session, analysis service.Analysis) (string, error) {
	name := "gap_analysis_" + safeFileName(sess.ClientName) + ".csv"

	f, err := os.Create(filepath.Join(e.outputDir, name))
	if err != nil {
		return "", fmt.Errorf("creating csv: %w", err)
	}
	defer f.Close()

	if err := writeCSV(f, analysis); err != nil {
		return "", fmt.Errorf("writing csv: %w", err)
	}
	return name, nil
}

// Open resolves an exported filename to its path, rejecting anything
// that would escape the output directory.
func (e *Exporter) Open(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", domain.ErrExportNotFound
	}

	path := filepath.Join(e.outputDir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", domain.ErrExportNotFound
	}
	return path, nil
}

// safeFileName reduces a client name to a filesystem-safe slug.
func safeFileName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			sb.WriteRune('_')
		}
	}
	if sb.Len() == 0 {
		return "client"
	}
	return sb.String()
}

// scoreLabel renders a row score as a display percentage.
func scoreLabel(row domain.GapRow) string {
	if !row.Scored {
		return "NA"
	}
	return fmt.Sprintf("%.0f%%", row.Score*100)
}

// maturityLabel renders a theme maturity as a display percentage.
func maturityLabel(maturity float64, defined bool) string {
	if !defined {
		return "NA"
	}
	return fmt.Sprintf("%.1f%%", maturity*100)
}
