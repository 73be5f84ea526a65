package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// ErrUnsupportedText means the content holds characters outside the
// Windows-1252 range the generated document encoding supports. Known
// portability limitation of the single-byte report format.
var ErrUnsupportedText = errors.New("text contains characters outside the supported document encoding")

// ReportRenderer turns a block of text into a paginated PDF byte stream.
// The same renderer serves both the full report and the cover letter; each
// call is independent and touches no shared state.
type ReportRenderer interface {
	Render(content string) ([]byte, error)
}

type reportRenderer struct{}

func NewReportRenderer() ReportRenderer {
	return &reportRenderer{}
}

// Render implements ReportRenderer. Every input line becomes one wrapped
// multi-line cell; the cell flows onto a new page when the current one runs
// out of vertical space. Font and margins are fixed.
func (r *reportRenderer) Render(content string) ([]byte, error) {
	if _, err := charmap.Windows1252.NewEncoder().String(content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedText, err)
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Arial", "", 12)
	translate := doc.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(content, "\n") {
		doc.MultiCell(0, 10, translate(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to assemble document: %w", err)
	}

	return buf.Bytes(), nil
}
