package services

import (
	"strings"
	"testing"
)

// TestBuildAnalysisPrompt tests prompt composition from its three parts
func TestBuildAnalysisPrompt(t *testing.T) {
	resume := "Jane Doe\n5 years of Go and Postgres."
	jobDesc := "Backend engineer, Go, Kubernetes."

	t.Run("Contains resume and job description", func(t *testing.T) {
		pb := NewPromptBuilder("")
		prompt := pb.BuildAnalysisPrompt(resume, jobDesc, "")

		if !strings.Contains(prompt, resume) {
			t.Error("prompt is missing the resume text")
		}
		if !strings.Contains(prompt, jobDesc) {
			t.Error("prompt is missing the job description")
		}
		if !strings.Contains(prompt, "Cover Letter:") {
			t.Error("prompt does not ask for the cover letter section")
		}
		if !strings.Contains(prompt, "Skills Match:") {
			t.Error("prompt does not ask for the skills section")
		}
	})

	t.Run("Preamble prepended when configured", func(t *testing.T) {
		pb := NewPromptBuilder("You are a strict technical recruiter.")
		prompt := pb.BuildAnalysisPrompt(resume, jobDesc, "")

		if !strings.HasPrefix(prompt, "You are a strict technical recruiter.") {
			t.Error("prompt does not start with the configured preamble")
		}
	})

	t.Run("Resource context appended only when present", func(t *testing.T) {
		pb := NewPromptBuilder("")

		withContext := pb.BuildAnalysisPrompt(resume, jobDesc, "Go tutorial at example.org")
		if !strings.Contains(withContext, "Go tutorial at example.org") {
			t.Error("prompt is missing the resource context")
		}

		withoutContext := pb.BuildAnalysisPrompt(resume, jobDesc, "")
		if strings.Contains(withoutContext, "Reference material") {
			t.Error("prompt mentions reference material without any context")
		}
	})
}

// TestFormatResourceContext tests rendering of retrieved resource chunks
func TestFormatResourceContext(t *testing.T) {
	if got := FormatResourceContext(nil); got != "" {
		t.Errorf("FormatResourceContext(nil) = %q, want empty", got)
	}

	hits := []ResourceHit{
		{Score: 0.92, Text: "  Learn Go: https://go.dev/tour  ", SourceName: "go.txt"},
		{Score: 0.81, Text: "SQL basics", SourceName: "sql.txt"},
	}

	got := FormatResourceContext(hits)
	if !strings.Contains(got, "Learn Go: https://go.dev/tour") {
		t.Error("formatted context is missing the first hit, or kept its padding")
	}
	if !strings.Contains(got, "SQL basics") {
		t.Error("formatted context is missing the second hit")
	}
	if !strings.Contains(got, "Resource 1") || !strings.Contains(got, "Resource 2") {
		t.Error("formatted context is missing hit numbering")
	}
}
