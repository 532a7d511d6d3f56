package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/models"
	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/repositories"
)

type ResultHandler struct {
	analysisRepo repositories.AnalysisRepository
}

func NewResultHandler(analysisRepo repositories.AnalysisRepository) *ResultHandler {
	return &ResultHandler{analysisRepo: analysisRepo}
}

// HandleGetResults handles GET /results/:id — the ranked batch of one job
// analysis, straight from the persisted ordering.
func (h *ResultHandler) HandleGetResults(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job analysis id",
		})
	}

	jobAnalysis, err := h.analysisRepo.FindJobAnalysisByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job analysis not found",
		})
	}

	analyses, err := h.analysisRepo.FindRankedResults(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch results",
		})
	}

	results := make([]models.CandidateResult, 0, len(analyses))
	for i, analysis := range analyses {
		entry := models.CandidateResult{
			Index:         i + 1,
			CandidateName: analysis.CandidateName,
			Filename:      analysis.Filename,
			TotalScore:    analysis.TotalScore,
			Summary:       analysis.Summary,
			Scores:        make([]models.CandidateScore, 0, len(analysis.Scores)),
		}
		if analysis.ErrorMessage != nil {
			entry.Error = *analysis.ErrorMessage
		}
		for _, score := range analysis.Scores {
			entry.Scores = append(entry.Scores, models.CandidateScore{
				Criterion:   score.JobAnalysisCriterion.Criterion.Name,
				Score:       score.Score,
				Explanation: score.Explanation,
			})
		}
		results = append(results, entry)
	}

	return c.JSON(models.AnalyzeResponse{
		JobAnalysisID: jobAnalysis.ID.String(),
		Results:       results,
	})
}

// HandleListJobAnalyses handles GET /job-analyses — past runs, newest first.
func (h *ResultHandler) HandleListJobAnalyses(c *fiber.Ctx) error {
	analyses, err := h.analysisRepo.ListJobAnalyses(50)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list job analyses",
		})
	}

	summaries := make([]models.JobAnalysisSummary, 0, len(analyses))
	for _, analysis := range analyses {
		summaries = append(summaries, models.JobAnalysisSummary{
			ID:        analysis.ID.String(),
			Prompt:    analysis.Prompt,
			CreatedAt: analysis.CreatedAt,
		})
	}
	return c.JSON(summaries)
}
