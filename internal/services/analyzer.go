package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"resumefit/analyzer/internal/models"
	"resumefit/analyzer/internal/repositories"
)

// AnalyzerService runs one analysis job end to end: extract the résumé text,
// ask the model for the analysis, parse the signals out of the response and
// store the result. Extraction and model failures are fatal to the job;
// missing or malformed signals only disable their dependent output and are
// recorded as warnings.
type AnalyzerService interface {
	AnalyzeResume(ctx context.Context, analysisID uuid.UUID) error
}

type analyzerService struct {
	analysisRepo  repositories.AnalysisRepository
	docRepo       repositories.DocumentRepository
	geminiService GeminiService
	qdrantService QdrantService
	pdfParser     PDFParserService
	parser        ResponseParser
	promptBuilder *PromptBuilder
}

func NewAnalyzerService(
	analysisRepo repositories.AnalysisRepository,
	docRepo repositories.DocumentRepository,
	geminiService GeminiService,
	qdrantService QdrantService,
	pdfParser PDFParserService,
	promptBuilder *PromptBuilder,
) AnalyzerService {
	return &analyzerService{
		analysisRepo:  analysisRepo,
		docRepo:       docRepo,
		geminiService: geminiService,
		qdrantService: qdrantService,
		pdfParser:     pdfParser,
		parser:        NewResponseParser(),
		promptBuilder: promptBuilder,
	}
}

func (a *analyzerService) AnalyzeResume(ctx context.Context, analysisID uuid.UUID) error {
	if err := a.analysisRepo.UpdateStatus(analysisID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting analysis for job ID: %s\n", analysisID)

	analysis, err := a.analysisRepo.FindByID(analysisID)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, err.Error())
		return fmt.Errorf("failed to get analysis: %w", err)
	}

	resumeDoc, err := a.docRepo.FindByID(analysis.ResumeDocumentID)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("Resume document not found: %v", err))
		return fmt.Errorf("failed to get resume document: %w", err)
	}

	// Step 1: Extract resume text (fatal on failure)
	log.Println("📄 Extracting resume text...")
	resumeText, err := a.pdfParser.ExtractText(resumeDoc.FilePath)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("Failed to extract resume text: %v", err))
		return fmt.Errorf("failed to extract resume text: %w", err)
	}

	var warnings []string

	// Step 2: Retrieve learning-resource context (optional)
	resourceContext := ""
	if a.qdrantService != nil {
		log.Println("🔍 Retrieving learning-resource context...")
		resourceContext, err = a.retrieveResourceContext(ctx, analysis.JobDescription)
		if err != nil {
			log.Printf("⚠️  Warning: Failed to retrieve resource context: %v\n", err)
			warnings = append(warnings, "learning-resource retrieval unavailable; prompt sent without reference context")
			resourceContext = ""
		}
	}

	// Step 3: Ask the model for the analysis (fatal on failure, no retry)
	log.Println("🤖 Requesting resume analysis from LLM...")
	prompt := a.promptBuilder.BuildAnalysisPrompt(resumeText, analysis.JobDescription, resourceContext)
	rawAnalysis, err := a.geminiService.GenerateText(ctx, prompt, 0.3)
	if err != nil {
		a.analysisRepo.UpdateError(analysisID, fmt.Sprintf("Analysis unavailable: %v", err))
		return fmt.Errorf("failed to generate analysis: %w", err)
	}

	// Step 4: Parse the signals (each one independent and non-fatal)
	update := &repositories.AnalysisUpdateData{RawAnalysis: &rawAnalysis}

	if score, ok := a.parser.ExtractMatchScore(rawAnalysis); ok {
		update.MatchScore = &score
	} else {
		warnings = append(warnings, "match score could not be calculated")
	}

	skills, err := a.parser.ExtractSkillScores(rawAnalysis)
	switch {
	case errors.Is(err, ErrMalformedSkillsBlock):
		warnings = append(warnings, "skills block present but unparseable; skill chart unavailable")
	case err != nil:
		warnings = append(warnings, fmt.Sprintf("skills extraction failed: %v", err))
	case skills == nil:
		warnings = append(warnings, "no specific skills match found to visualize")
	default:
		update.SkillScores = skills
	}

	if coverLetter, ok := a.parser.ExtractCoverLetter(rawAnalysis); ok {
		update.CoverLetter = &coverLetter
	} else {
		warnings = append(warnings, "no cover letter found in the analysis")
	}

	update.Warnings = warnings

	// Step 5: Save results
	log.Println("💾 Saving analysis results...")
	if err := a.analysisRepo.UpdateResult(analysisID, update); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	log.Printf("✅ Analysis completed successfully for job ID: %s\n", analysisID)
	return nil
}

func (a *analyzerService) retrieveResourceContext(ctx context.Context, jobDescription string) (string, error) {
	query := a.promptBuilder.BuildResourceQuery(jobDescription)

	embedding, err := a.geminiService.GenerateEmbeddingWithRetry(ctx, query, 3)
	if err != nil {
		return "", fmt.Errorf("failed to generate query embedding: %w", err)
	}

	hits, err := a.qdrantService.SearchResources(ctx, embedding, 3)
	if err != nil {
		return "", fmt.Errorf("failed to search resources: %w", err)
	}

	return FormatResourceContext(hits), nil
}
