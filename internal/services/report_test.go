package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// TestReportRenderer_Render tests that supported text produces a PDF stream
func TestReportRenderer_Render(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "Single line",
			content: "Dear Hiring Manager,",
		},
		{
			name:    "Multi-line analysis",
			content: "Match: 75%\nSimilarities: Go, SQL\nDifferences: Kubernetes\nAdvice: prepare for interviews.",
		},
		{
			name:    "Empty lines preserved as cells",
			content: "First paragraph.\n\nSecond paragraph.",
		},
		{
			name:    "Western accented characters",
			content: "José González — café, naïve, über.",
		},
		{
			name: "Enough lines to force a page break",
			content: strings.Repeat("This line pads the page far enough to trigger pagination.\n", 60) +
				"last line",
		},
	}

	renderer := NewReportRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderer.Render(tt.content)
			if err != nil {
				t.Fatalf("Render() failed: %v", err)
			}
			if len(got) == 0 {
				t.Fatal("Render() returned empty byte stream")
			}
			if !bytes.HasPrefix(got, []byte("%PDF")) {
				t.Errorf("Render() output does not start with PDF header: %q", got[:8])
			}
		})
	}
}

// TestReportRenderer_UnsupportedText tests that characters outside the
// document encoding fail with ErrUnsupportedText
func TestReportRenderer_UnsupportedText(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "CJK characters",
			content: "履歴書の分析",
		},
		{
			name:    "Emoji",
			content: "Great match 🚀",
		},
		{
			name:    "Mixed supported and unsupported",
			content: "Dear Hiring Manager,\nПривет",
		},
	}

	renderer := NewReportRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := renderer.Render(tt.content)
			if !errors.Is(err, ErrUnsupportedText) {
				t.Errorf("Render(%q) error = %v, want ErrUnsupportedText", tt.content, err)
			}
		})
	}
}

// TestReportRenderer_Independence tests that report and cover letter renders
// do not affect each other
func TestReportRenderer_Independence(t *testing.T) {
	renderer := NewReportRenderer()

	report, err := renderer.Render("Full analysis text.\nSecond line.")
	if err != nil {
		t.Fatalf("report render failed: %v", err)
	}

	letter, err := renderer.Render("Dear Hiring Manager,\nSincerely.")
	if err != nil {
		t.Fatalf("cover letter render failed: %v", err)
	}

	reportAgain, err := renderer.Render("Full analysis text.\nSecond line.")
	if err != nil {
		t.Fatalf("repeated report render failed: %v", err)
	}

	if !bytes.HasPrefix(letter, []byte("%PDF")) {
		t.Error("cover letter is not a PDF stream")
	}
	if len(report) == 0 || len(reportAgain) == 0 {
		t.Error("report renders returned empty streams")
	}
}
