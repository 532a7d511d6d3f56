package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/models"
	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/repositories"
	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/services"
)

type AnalyzeHandler struct {
	analyzer      services.AnalyzerService
	storage       services.StorageService
	criterionRepo repositories.CriterionRepository
	analysisRepo  repositories.AnalysisRepository
	docRepo       repositories.DocumentRepository
	maxFileSize   int64
	logger        *zap.Logger
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	storage services.StorageService,
	criterionRepo repositories.CriterionRepository,
	analysisRepo repositories.AnalysisRepository,
	docRepo repositories.DocumentRepository,
	maxFileSize int64,
	logger *zap.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:      analyzer,
		storage:       storage,
		criterionRepo: criterionRepo,
		analysisRepo:  analysisRepo,
		docRepo:       docRepo,
		maxFileSize:   maxFileSize,
		logger:        logger,
	}
}

// HandleAnalyzeCVs handles POST /analyze-cvs: multipart "files" (PDF CVs),
// "criteria" (JSON array of {id, weight}) and "prompt" (job description).
// The response always contains one entry per uploaded file.
func (h *AnalyzeHandler) HandleAnalyzeCVs(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	prompt := strings.TrimSpace(c.FormValue("prompt"))
	if prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "prompt (job description) is required",
		})
	}

	var requested []models.AnalyzeCriterion
	if err := json.Unmarshal([]byte(c.FormValue("criteria")), &requested); err != nil || len(requested) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "criteria must be a non-empty JSON array of {id, weight}",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least one CV file is required",
		})
	}

	criteria, err := h.resolveCriteria(requested)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	docs := make([]services.UploadedDocument, 0, len(files))
	for _, fileHeader := range files {
		if fileHeader.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("file %q too large, max size: %d bytes", fileHeader.Filename, h.maxFileSize),
			})
		}
		data, err := readMultipartFile(fileHeader)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to read file %q", fileHeader.Filename),
			})
		}
		docs = append(docs, services.UploadedDocument{
			Filename: fileHeader.Filename,
			Data:     data,
		})
	}

	// The pipeline itself never fails a batch; per-document failures come
	// back as degraded entries.
	results := h.analyzer.AnalyzeBatch(c.Context(), docs, criteria, prompt)

	jobAnalysis, err := h.persist(prompt, requested, criteria, docs, results)
	if err != nil {
		h.logger.Error("failed to persist analysis", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to persist analysis results",
		})
	}

	return c.JSON(models.AnalyzeResponse{
		JobAnalysisID: jobAnalysis.ID.String(),
		Results:       buildCandidateResults(results, criteria),
	})
}

// resolveCriteria validates the requested criterion ids against the catalog
// and joins them with their weights, preserving request order.
func (h *AnalyzeHandler) resolveCriteria(requested []models.AnalyzeCriterion) ([]services.CriterionWeight, error) {
	ids := make([]int, 0, len(requested))
	for _, r := range requested {
		if r.Weight <= 0 {
			return nil, fmt.Errorf("criterion %d has non-positive weight", r.ID)
		}
		ids = append(ids, r.ID)
	}

	catalog, err := h.criterionRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve criteria")
	}
	byID := make(map[int]models.Criterion, len(catalog))
	for _, c := range catalog {
		byID[c.ID] = c
	}

	criteria := make([]services.CriterionWeight, 0, len(requested))
	for _, r := range requested {
		criterion, ok := byID[r.ID]
		if !ok {
			return nil, fmt.Errorf("unknown criterion id %d: criteria must be created before use", r.ID)
		}
		criteria = append(criteria, services.CriterionWeight{
			ID:          criterion.ID,
			Name:        criterion.Name,
			Description: criterion.Description,
			Weight:      r.Weight,
		})
	}
	return criteria, nil
}

// persist writes the job run, the CV archive, and every per-candidate
// result (score rows only for criteria the model addressed).
func (h *AnalyzeHandler) persist(
	prompt string,
	requested []models.AnalyzeCriterion,
	criteria []services.CriterionWeight,
	docs []services.UploadedDocument,
	results []*services.CVAnalysisResult,
) (*models.JobAnalysis, error) {
	jobAnalysis := &models.JobAnalysis{
		ID:        uuid.New(),
		Prompt:    prompt,
		CreatedAt: time.Now(),
	}
	for _, r := range requested {
		jobAnalysis.Criteria = append(jobAnalysis.Criteria, models.JobAnalysisCriterion{
			CriterionID: r.ID,
			Weight:      r.Weight,
		})
	}
	if err := h.analysisRepo.CreateJobAnalysis(jobAnalysis); err != nil {
		return nil, err
	}

	// Job-analysis criterion rows keyed by criterion name for score rows.
	jacByName := make(map[string]int, len(jobAnalysis.Criteria))
	for _, jac := range jobAnalysis.Criteria {
		for _, cw := range criteria {
			if cw.ID == jac.CriterionID {
				jacByName[cw.Name] = jac.ID
			}
		}
	}

	for _, doc := range docs {
		filename, filePath, err := h.storage.SaveCV(doc.Filename, doc.Data)
		if err != nil {
			h.logger.Warn("failed to archive uploaded cv",
				zap.String("filename", doc.Filename), zap.Error(err))
			continue
		}
		record := &models.Document{
			ID:               uuid.New(),
			JobAnalysisID:    jobAnalysis.ID,
			Filename:         filename,
			OriginalFileName: doc.Filename,
			FilePath:         filePath,
			CreatedAt:        time.Now(),
		}
		if err := h.docRepo.Create(record); err != nil {
			h.storage.DeleteFile(filename)
			h.logger.Warn("failed to record archived cv",
				zap.String("filename", doc.Filename), zap.Error(err))
		}
	}

	for _, result := range results {
		analysis := &models.CVAnalysis{
			ID:            uuid.New(),
			JobAnalysisID: jobAnalysis.ID,
			Filename:      result.Filename,
			CandidateName: result.CandidateName,
			Summary:       result.Summary,
			TotalScore:    result.TotalScore,
			CreatedAt:     time.Now(),
		}
		if result.Error != "" {
			errMsg := result.Error
			analysis.ErrorMessage = &errMsg
		}
		for _, cw := range criteria {
			score, ok := result.Scores[cw.Name]
			if !ok {
				continue
			}
			analysis.Scores = append(analysis.Scores, models.CVScore{
				JobAnalysisCriterionID: jacByName[cw.Name],
				Score:                  score.Score,
				Explanation:            score.Explanation,
			})
		}
		if err := h.analysisRepo.SaveCVAnalysis(analysis); err != nil {
			return nil, err
		}
	}

	return jobAnalysis, nil
}

// buildCandidateResults maps pipeline results to the ranked API shape.
// Results arrive already sorted; Index is the 1-based rank.
func buildCandidateResults(results []*services.CVAnalysisResult, criteria []services.CriterionWeight) []models.CandidateResult {
	out := make([]models.CandidateResult, 0, len(results))
	for i, result := range results {
		entry := models.CandidateResult{
			Index:         i + 1,
			CandidateName: result.CandidateName,
			Filename:      result.Filename,
			TotalScore:    result.TotalScore,
			Summary:       result.Summary,
			Scores:        make([]models.CandidateScore, 0, len(result.Scores)),
			Error:         result.Error,
		}
		for _, cw := range criteria {
			score, ok := result.Scores[cw.Name]
			if !ok {
				continue
			}
			entry.Scores = append(entry.Scores, models.CandidateScore{
				Criterion:   cw.Name,
				Score:       score.Score,
				Explanation: score.Explanation,
			})
		}
		out = append(out, entry)
	}
	return out
}

func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
