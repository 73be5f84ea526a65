package handlers

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resumefit/analyzer/internal/models"
	"resumefit/analyzer/internal/repositories"
	"resumefit/analyzer/internal/services"
)

type ResultHandler struct {
	analysisRepo   repositories.AnalysisRepository
	reportRenderer services.ReportRenderer
	chartRenderer  services.ChartRenderer
}

func NewResultHandler(
	analysisRepo repositories.AnalysisRepository,
	reportRenderer services.ReportRenderer,
	chartRenderer services.ChartRenderer,
) *ResultHandler {
	return &ResultHandler{
		analysisRepo:   analysisRepo,
		reportRenderer: reportRenderer,
		chartRenderer:  chartRenderer,
	}
}

// HandleGetResult handles GET /result/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	analysis, err := h.findAnalysis(c)
	if analysis == nil {
		return err
	}

	response := models.ResultResponse{
		ID:     analysis.ID.String(),
		Status: string(analysis.Status),
	}

	if analysis.Status == models.StatusCompleted {
		data := &models.AnalysisData{
			MatchScore:  analysis.MatchScore,
			SkillScores: analysis.SkillScores,
			CoverLetter: analysis.CoverLetter,
			Warnings:    analysis.Warnings,
		}
		if analysis.RawAnalysis != nil {
			data.RawAnalysis = *analysis.RawAnalysis
		}
		response.Result = data
	}

	if analysis.Status == models.StatusFailed && analysis.ErrorMessage != nil {
		response.ErrorMessage = analysis.ErrorMessage
	}

	return c.JSON(response)
}

// HandleDownloadReport handles GET /result/:id/report. The report document
// derives from the whole raw analysis text.
func (h *ResultHandler) HandleDownloadReport(c *fiber.Ctx) error {
	analysis, err := h.findAnalysis(c)
	if analysis == nil {
		return err
	}

	if analysis.Status != models.StatusCompleted || analysis.RawAnalysis == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Analysis is not completed yet",
		})
	}

	return h.sendDocument(c, *analysis.RawAnalysis, "resume_analysis_report.pdf")
}

// HandleDownloadCoverLetter handles GET /result/:id/cover-letter. Absent when
// no cover letter was found in the response; the report stays available.
func (h *ResultHandler) HandleDownloadCoverLetter(c *fiber.Ctx) error {
	analysis, err := h.findAnalysis(c)
	if analysis == nil {
		return err
	}

	if analysis.Status != models.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Analysis is not completed yet",
		})
	}

	if analysis.CoverLetter == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No cover letter found in the analysis",
		})
	}

	return h.sendDocument(c, *analysis.CoverLetter, "cover_letter.pdf")
}

// HandleScoreChart handles GET /result/:id/charts/score
func (h *ResultHandler) HandleScoreChart(c *fiber.Ctx) error {
	analysis, err := h.findAnalysis(c)
	if analysis == nil {
		return err
	}

	if analysis.Status != models.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Analysis is not completed yet",
		})
	}

	if analysis.MatchScore == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Match score could not be calculated for this analysis",
		})
	}

	bar := h.chartRenderer.RenderScoreBar(*analysis.MatchScore)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to render score chart",
		})
	}

	c.Type("html")
	return c.Send(buf.Bytes())
}

// HandleSkillChart handles GET /result/:id/charts/skills
func (h *ResultHandler) HandleSkillChart(c *fiber.Ctx) error {
	analysis, err := h.findAnalysis(c)
	if analysis == nil {
		return err
	}

	if analysis.Status != models.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Analysis is not completed yet",
		})
	}

	radar := h.chartRenderer.RenderSkillRadar(analysis.SkillScores)
	if radar == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No skill scores available for this analysis",
		})
	}

	var buf bytes.Buffer
	if err := radar.Render(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to render skill chart",
		})
	}

	c.Type("html")
	return c.Send(buf.Bytes())
}

func (h *ResultHandler) findAnalysis(c *fiber.Ctx) (*models.Analysis, error) {
	idParam := c.Params("id")
	analysisID, err := uuid.Parse(idParam)
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.analysisRepo.FindByID(analysisID)
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	return analysis, nil
}

func (h *ResultHandler) sendDocument(c *fiber.Ctx, content, filename string) error {
	docBytes, err := h.reportRenderer.Render(content)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrUnsupportedText) {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(fiber.Map{
			"error": "Failed to generate PDF document",
		})
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Type("pdf")
	return c.Send(docBytes)
}
