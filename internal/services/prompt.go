package services

import (
	"fmt"
	"strings"
)

// PromptBuilder composes the fixed analysis instructions with the résumé
// text and the job description. The preamble comes from configuration so the
// instruction set can be extended without touching code.
type PromptBuilder struct {
	preamble string
}

func NewPromptBuilder(preamble string) *PromptBuilder {
	return &PromptBuilder{preamble: preamble}
}

// BuildAnalysisPrompt creates the single prompt for the résumé analysis.
// resourceContext is optional retrieved reference material; it is omitted
// from the prompt when empty.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText, jobDescription, resourceContext string) string {
	var b strings.Builder

	if pb.preamble != "" {
		b.WriteString(pb.preamble)
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf(`Resume:
%s

Job Description:
%s

Perform a highly focused and practical analysis of the resume against the job description.
1. State the overall match as a percentage, e.g. "Match: 75%%".
2. Identify and list specific similarities and differences in skills, experience, and keywords.
3. Provide a skill proficiency comparison in the exact form: Skills Match: {'Skill': score, ...} with scores from 0 to 100.
4. For each key skill or requirement mentioned in the job description, provide direct, currently working and relevant online reference links to books, notes, or educational websites.
5. Based on the calculated match percentage, provide clear and actionable advice:
   - If the match is below 60%%, recommend specific new topics to study, accompanied by currently working and relevant learning links.
   - If the match is 60%% or higher, focus on interview preparation tips and suggest targeted resume improvements.
6. Provide a cover letter based on the job description and resume, introduced by the line "Cover Letter:", with proper indentation.
7. Provide an ATS formatting check introduced by the line "ATS Formatting Check:" and highlight any issues.`,
		resumeText, jobDescription))

	if resourceContext != "" {
		b.WriteString("\n\nReference material for learning recommendations:\n")
		b.WriteString(resourceContext)
	}

	return b.String()
}

// BuildResourceQuery creates the retrieval query for learning resources.
func (pb *PromptBuilder) BuildResourceQuery(jobDescription string) string {
	return fmt.Sprintf("Learning resources and study material for: %s", jobDescription)
}

// FormatResourceContext renders retrieved resource chunks for prompt use.
func FormatResourceContext(hits []ResourceHit) string {
	if len(hits) == 0 {
		return ""
	}

	var parts []string
	for i, hit := range hits {
		parts = append(parts, fmt.Sprintf("--- Resource %d (Score: %.2f) ---\n%s",
			i+1, hit.Score, strings.TrimSpace(hit.Text)))
	}

	return strings.Join(parts, "\n\n")
}
