package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"resumefit/analyzer/internal/models"
	"resumefit/analyzer/internal/repositories"
)

type fakeAnalysisRepo struct {
	analysis *models.Analysis
	statuses []models.AnalysisStatus
	result   *repositories.AnalysisUpdateData
	errorMsg string
}

func (f *fakeAnalysisRepo) Create(analysis *models.Analysis) error {
	f.analysis = analysis
	return nil
}

func (f *fakeAnalysisRepo) FindByID(id uuid.UUID) (*models.Analysis, error) {
	if f.analysis == nil || f.analysis.ID != id {
		return nil, errors.New("analysis not found")
	}
	return f.analysis, nil
}

func (f *fakeAnalysisRepo) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeAnalysisRepo) UpdateResult(id uuid.UUID, result *repositories.AnalysisUpdateData) error {
	f.result = result
	f.statuses = append(f.statuses, models.StatusCompleted)
	return nil
}

func (f *fakeAnalysisRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	f.errorMsg = errorMsg
	f.statuses = append(f.statuses, models.StatusFailed)
	return nil
}

func (f *fakeAnalysisRepo) FindPendingJobs(limit int) ([]models.Analysis, error) {
	return nil, nil
}

type fakeDocRepo struct {
	doc *models.Document
}

func (f *fakeDocRepo) Create(document *models.Document) error { return nil }

func (f *fakeDocRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	if f.doc == nil || f.doc.ID != id {
		return nil, errors.New("document not found")
	}
	return f.doc, nil
}

type fakePDFParser struct {
	text string
	err  error
}

func (f *fakePDFParser) ExtractText(filePath string) (string, error) {
	return f.text, f.err
}

type fakeGemini struct {
	response  string
	err       error
	textCalls int
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.textCalls++
	return f.response, f.err
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("no embeddings in test")
}

func (f *fakeGemini) GenerateEmbeddingWithRetry(ctx context.Context, text string, maxRetries int) ([]float32, error) {
	return nil, errors.New("no embeddings in test")
}

func newAnalyzerFixture(response string, geminiErr, parseErr error) (*fakeAnalysisRepo, *fakeGemini, AnalyzerService, uuid.UUID) {
	docID := uuid.New()
	analysisID := uuid.New()

	analysisRepo := &fakeAnalysisRepo{
		analysis: &models.Analysis{
			ID:               analysisID,
			ResumeDocumentID: docID,
			JobDescription:   "Backend engineer, Go and SQL.",
			Status:           models.StatusQueued,
		},
	}
	docRepo := &fakeDocRepo{
		doc: &models.Document{ID: docID, FilePath: "/tmp/resume.pdf"},
	}
	gemini := &fakeGemini{response: response, err: geminiErr}
	pdfParser := &fakePDFParser{text: "Jane Doe\nGo, SQL, Docker.", err: parseErr}

	analyzer := NewAnalyzerService(
		analysisRepo,
		docRepo,
		gemini,
		nil,
		pdfParser,
		NewPromptBuilder(""),
	)

	return analysisRepo, gemini, analyzer, analysisID
}

// TestAnalyzeResume_AllSignals tests the happy path where every signal is
// present in the model response
func TestAnalyzeResume_AllSignals(t *testing.T) {
	repo, _, analyzer, analysisID := newAnalyzerFixture(sampleAnalysis, nil, nil)

	if err := analyzer.AnalyzeResume(context.Background(), analysisID); err != nil {
		t.Fatalf("AnalyzeResume() failed: %v", err)
	}

	if repo.result == nil {
		t.Fatal("no result was saved")
	}

	if repo.result.RawAnalysis == nil || *repo.result.RawAnalysis != sampleAnalysis {
		t.Error("raw analysis text was not stored verbatim")
	}
	if repo.result.MatchScore == nil || *repo.result.MatchScore != 75 {
		t.Errorf("match score = %v, want 75", repo.result.MatchScore)
	}
	if len(repo.result.SkillScores) != 2 {
		t.Errorf("skill scores = %v, want 2 entries", repo.result.SkillScores)
	}
	if repo.result.CoverLetter == nil || *repo.result.CoverLetter != "Dear Hiring Manager..." {
		t.Errorf("cover letter = %v, want the extracted letter", repo.result.CoverLetter)
	}
	if len(repo.result.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", repo.result.Warnings)
	}

	if len(repo.statuses) == 0 || repo.statuses[0] != models.StatusProcessing {
		t.Errorf("statuses = %v, want processing first", repo.statuses)
	}
	if repo.statuses[len(repo.statuses)-1] != models.StatusCompleted {
		t.Errorf("statuses = %v, want completed last", repo.statuses)
	}
}

// TestAnalyzeResume_NoSignals tests that a response carrying none of the
// expected sections still completes, with one warning per missing signal
func TestAnalyzeResume_NoSignals(t *testing.T) {
	response := "The resume is adequate for the position in most respects."
	repo, _, analyzer, analysisID := newAnalyzerFixture(response, nil, nil)

	if err := analyzer.AnalyzeResume(context.Background(), analysisID); err != nil {
		t.Fatalf("AnalyzeResume() failed: %v", err)
	}

	if repo.result == nil {
		t.Fatal("no result was saved")
	}

	if repo.result.MatchScore != nil {
		t.Errorf("match score = %v, want absent", *repo.result.MatchScore)
	}
	if repo.result.SkillScores != nil {
		t.Errorf("skill scores = %v, want absent", repo.result.SkillScores)
	}
	if repo.result.CoverLetter != nil {
		t.Errorf("cover letter = %q, want absent", *repo.result.CoverLetter)
	}

	// The report is still derivable from the raw text.
	if repo.result.RawAnalysis == nil || *repo.result.RawAnalysis != response {
		t.Error("raw analysis text was not stored")
	}

	if len(repo.result.Warnings) != 3 {
		t.Errorf("warnings = %v, want one per missing signal", repo.result.Warnings)
	}
}

// TestAnalyzeResume_MalformedSkills tests that an unparseable skills block
// degrades to a warning while the other signals survive
func TestAnalyzeResume_MalformedSkills(t *testing.T) {
	response := "Match: 80%\nSkills Match: {Python: 80}\nCover Letter:\nDear Team,"
	repo, _, analyzer, analysisID := newAnalyzerFixture(response, nil, nil)

	if err := analyzer.AnalyzeResume(context.Background(), analysisID); err != nil {
		t.Fatalf("AnalyzeResume() failed: %v", err)
	}

	if repo.result.MatchScore == nil || *repo.result.MatchScore != 80 {
		t.Errorf("match score = %v, want 80", repo.result.MatchScore)
	}
	if repo.result.SkillScores != nil {
		t.Errorf("skill scores = %v, want absent", repo.result.SkillScores)
	}
	if repo.result.CoverLetter == nil {
		t.Error("cover letter missing")
	}

	found := false
	for _, w := range repo.result.Warnings {
		if strings.Contains(w, "unparseable") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want a malformed-skills warning", repo.result.Warnings)
	}
}

// TestAnalyzeResume_ModelFailure tests that a failed model call marks the
// analysis failed and stops the pipeline
func TestAnalyzeResume_ModelFailure(t *testing.T) {
	repo, _, analyzer, analysisID := newAnalyzerFixture("", errors.New("quota exceeded"), nil)

	if err := analyzer.AnalyzeResume(context.Background(), analysisID); err == nil {
		t.Fatal("AnalyzeResume() should fail when the model call fails")
	}

	if repo.result != nil {
		t.Error("a result was saved despite the model failure")
	}
	if !strings.Contains(repo.errorMsg, "Analysis unavailable") {
		t.Errorf("error message = %q, want an analysis-unavailable message", repo.errorMsg)
	}
	if repo.statuses[len(repo.statuses)-1] != models.StatusFailed {
		t.Errorf("statuses = %v, want failed last", repo.statuses)
	}
}

// TestAnalyzeResume_ExtractionFailure tests that a broken resume PDF halts
// the pipeline before the model is called
func TestAnalyzeResume_ExtractionFailure(t *testing.T) {
	repo, gemini, analyzer, analysisID := newAnalyzerFixture(sampleAnalysis, nil, errors.New("no text content found in PDF"))

	if err := analyzer.AnalyzeResume(context.Background(), analysisID); err == nil {
		t.Fatal("AnalyzeResume() should fail when extraction fails")
	}

	if gemini.textCalls != 0 {
		t.Errorf("model was called %d times after a failed extraction", gemini.textCalls)
	}
	if !strings.Contains(repo.errorMsg, "Failed to extract resume text") {
		t.Errorf("error message = %q, want an extraction failure message", repo.errorMsg)
	}
}
