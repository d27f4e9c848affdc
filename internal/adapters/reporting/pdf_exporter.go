package reporting

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/lcalzada-xor/riskmap/internal/core/domain"
)

// PDFExporter renders an assessment document to PDF.
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ExportAssessment generates the remediation report PDF for one run.
func (e *PDFExporter) ExportAssessment(doc *domain.AssessmentDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, doc)
	e.addRiskSummary(pdf, doc)
	e.addTimeline(pdf, doc)
	e.addMilestones(pdf, doc)
	e.addProgramRisks(pdf, doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, doc *domain.AssessmentDocument) {
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 51, 102) // Dark blue
	pdf.CellFormat(0, 15, "Remediation Program Report", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Assessment: %s", doc.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", doc.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	if doc.Target != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Target: %s", doc.Target), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func (e *PDFExporter) addRiskSummary(pdf *gofpdf.Fpdf, doc *domain.AssessmentDocument) {
	r, g, b := levelColor(doc.Prediction.OverallRisk)

	pdf.SetFillColor(r, g, b)
	pdf.Rect(20, pdf.GetY(), 170, 26, "F")

	y := pdf.GetY()
	pdf.SetFont("Arial", "B", 28)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(25, y+4)
	pdf.CellFormat(80, 18, fmt.Sprintf("%.1f/10", doc.Quant.Average), "", 0, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 16)
	pdf.SetXY(110, y+6)
	pdf.CellFormat(80, 14, fmt.Sprintf("%s Risk", doc.Prediction.OverallRisk), "", 0, "L", false, 0, "")

	pdf.SetY(y + 30)
	pdf.Ln(3)

	rows := []struct {
		label string
		value string
	}{
		{"Risks evaluated", fmt.Sprintf("%d", doc.Evaluation.Summary.Total)},
		{"Requiring treatment", fmt.Sprintf("%d", doc.Evaluation.Treatable)},
		{"Acceptance rate", fmt.Sprintf("%.0f%%", doc.Evaluation.AcceptanceRate*100)},
		{"Planned actions", fmt.Sprintf("%d", doc.Program.Metrics.TotalActions)},
		{"Estimated effort", fmt.Sprintf("%.0f hours", doc.Program.Metrics.TotalHours)},
		{"Estimated cost", fmt.Sprintf("$%.0f", doc.Program.Metrics.TotalCost)},
		{"Team size", fmt.Sprintf("%d", doc.Program.Resources.TeamSize)},
	}

	for _, row := range rows {
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(60, 7, row.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(0, 7, row.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func (e *PDFExporter) addTimeline(pdf *gofpdf.Fpdf, doc *domain.AssessmentDocument) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Remediation Timeline", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(doc.Program.Timeline.Phases) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 7, "No remediation actions required", "", 1, "L", false, 0, "")
		pdf.Ln(5)
		return
	}

	// Table header
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(60, 8, "Phase", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Priority", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 8, "Actions", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Start", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "End", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, phase := range doc.Program.Timeline.Phases {
		pdf.CellFormat(60, 7, fmt.Sprintf("%d. %s", phase.Number, phase.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, phase.Priority, "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", phase.Actions), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, phase.Start.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, phase.End.Format("2006-01-02"), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(6)
}

func (e *PDFExporter) addMilestones(pdf *gofpdf.Fpdf, doc *domain.AssessmentDocument) {
	if len(doc.Program.Milestones) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Milestones", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(60, 60, 60)
	for _, m := range doc.Program.Milestones {
		pdf.CellFormat(8, 6, "-", "", 0, "L", false, 0, "")
		pdf.CellFormat(90, 6, m.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, m.TargetDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func (e *PDFExporter) addProgramRisks(pdf *gofpdf.Fpdf, doc *domain.AssessmentDocument) {
	if len(doc.Program.PlanRisks) == 0 {
		return
	}

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Program Risks", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, r := range doc.Program.PlanRisks {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(0, 6, r.Name, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, r.Description+". Mitigation: "+r.Mitigation, "", "L", false)
		pdf.Ln(2)
	}
}

// levelColor returns RGB for the overall risk banner.
func levelColor(level domain.ThreatLevel) (r, g, b int) {
	switch level {
	case domain.ThreatCritical:
		return 220, 53, 69 // Red
	case domain.ThreatHigh:
		return 255, 149, 0 // Orange
	case domain.ThreatMedium:
		return 255, 204, 0 // Yellow
	default:
		return 52, 199, 89 // Green
	}
}
