package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/models"
	"github.com/HSLU-ITDS/fs25-maitpro-ceveai-project/internal/repositories"
)

type CriteriaHandler struct {
	criterionRepo repositories.CriterionRepository
}

func NewCriteriaHandler(criterionRepo repositories.CriterionRepository) *CriteriaHandler {
	return &CriteriaHandler{criterionRepo: criterionRepo}
}

// HandleList handles GET /criteria
func (h *CriteriaHandler) HandleList(c *fiber.Ctx) error {
	criteria, err := h.criterionRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list criteria",
		})
	}
	return c.JSON(criteria)
}

// HandleCreate handles POST /criteria
func (h *CriteriaHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CriterionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}
	if req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "description is required",
		})
	}

	criterion := &models.Criterion{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.criterionRepo.Create(criterion); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Failed to create criterion (name may already exist)",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(criterion)
}

// HandleDelete handles DELETE /criteria/:id
func (h *CriteriaHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid criterion id",
		})
	}

	if err := h.criterionRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Criterion not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
