package services

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/models"
)

// ReportService renders a ranked batch to a downloadable PDF report, one
// page per candidate.
type ReportService interface {
	GenerateRankedPDF(candidates []models.CandidateResult) ([]byte, error)
}

type reportService struct{}

func NewReportService() ReportService {
	return &reportService{}
}

// GenerateRankedPDF implements ReportService.
func (r *reportService) GenerateRankedPDF(candidates []models.CandidateResult) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	for _, candidate := range candidates {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, fmt.Sprintf("Candidate #%d: %s", candidate.Index, candidate.CandidateName), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 7, "Filename: "+candidate.Filename, "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("Total Score: %.1f", candidate.TotalScore), "", 1, "L", false, 0, "")

		if candidate.Error != "" {
			pdf.SetTextColor(180, 30, 30)
			pdf.MultiCell(0, 6, "Analysis degraded: "+candidate.Error, "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}

		pdf.Ln(3)
		pdf.CellFormat(0, 7, "Summary:", "", 1, "L", false, 0, "")
		if candidate.Summary != "" {
			pdf.MultiCell(0, 6, candidate.Summary, "", "L", false)
		}

		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, "Scores:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		for _, score := range candidate.Scores {
			pdf.CellFormat(0, 6, fmt.Sprintf("%s: %.1f", score.Criterion, score.Score), "", 1, "L", false, 0, "")
			if score.Explanation != "" {
				pdf.SetFont("Helvetica", "I", 10)
				pdf.MultiCell(0, 5, score.Explanation, "", "L", false)
				pdf.SetFont("Helvetica", "", 12)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}
