package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/models"
	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// HandleGeneratePDF handles POST /generate-pdf — renders a ranked batch
// payload to a downloadable PDF report.
func (h *ReportHandler) HandleGeneratePDF(c *fiber.Ctx) error {
	var req models.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if len(req.Candidates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidates is required",
		})
	}

	pdfBytes, err := h.reportService.GenerateRankedPDF(req.Candidates)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate report",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cv_ranking_report.pdf"`)
	return c.Send(pdfBytes)
}
