package models

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
}

type AnalyzeRequest struct {
	ResumeDocumentID string `json:"resume_document_id" validate:"required,uuid"`
	JobDescription   string `json:"job_description" validate:"required"`
}

type AnalyzeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ResultResponse struct {
	ID           string        `json:"id"`
	Status       string        `json:"status"`
	Result       *AnalysisData `json:"result,omitempty"`
	ErrorMessage *string       `json:"error_message,omitempty"`
}

type AnalysisData struct {
	RawAnalysis string         `json:"raw_analysis"`
	MatchScore  *int           `json:"match_score,omitempty"`
	SkillScores SkillScoreList `json:"skill_scores,omitempty"`
	CoverLetter *string        `json:"cover_letter,omitempty"`
	Warnings    []string       `json:"warnings,omitempty"`
}
