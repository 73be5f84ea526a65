package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumefit/analyzer/internal/models"
	"resumefit/analyzer/internal/repositories"
	"resumefit/analyzer/internal/services"
)

type AnalyzeHandler struct {
	analysisRepo repositories.AnalysisRepository
	docRepo      repositories.DocumentRepository
	worker       services.Worker
}

func NewAnalyzeHandler(
	analysisRepo repositories.AnalysisRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysisRepo: analysisRepo,
		docRepo:      docRepo,
		worker:       worker,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.ResumeDocumentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_document_id is required",
		})
	}

	if req.JobDescription == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	resumeDocID, err := uuid.Parse(req.ResumeDocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resume_document_id format",
		})
	}

	if _, err := h.docRepo.FindByID(resumeDocID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume document not found",
		})
	}

	analysis := &models.Analysis{
		ID:               uuid.New(),
		ResumeDocumentID: resumeDocID,
		JobDescription:   req.JobDescription,
		Status:           models.StatusQueued,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.analysisRepo.Create(analysis); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create analysis job",
		})
	}

	// Enqueue job to worker
	h.worker.EnqueueJob(analysis.ID)

	// Return job ID immediately
	return c.Status(fiber.StatusAccepted).JSON(models.AnalyzeResponse{
		ID:     analysis.ID.String(),
		Status: string(models.StatusQueued),
	})
}
