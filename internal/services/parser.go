package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"resumefit/analyzer/internal/models"
)

// ErrMalformedSkillsBlock means the response carried a "Skills Match:" label
// but the payload after it was not a flat mapping of quoted names to numbers.
var ErrMalformedSkillsBlock = errors.New("skills block is not a flat mapping of quoted names to numbers")

var (
	matchScoreRe = regexp.MustCompile(`(\d{1,3})%`)
	skillsRe     = regexp.MustCompile(`Skills Match:\s*(\{.*?\})`)
	coverRe      = regexp.MustCompile(`(?s)Cover Letter:\s*(.*?)(?:ATS Formatting Check:|Interview Questions:|$)`)
)

// ResponseParser extracts structured signals from the unstructured analysis
// text the model returns. The three extractions are independent pure
// functions; any subset of signals may be absent from a given response.
type ResponseParser interface {
	ExtractMatchScore(text string) (int, bool)
	ExtractSkillScores(text string) (models.SkillScoreList, error)
	ExtractCoverLetter(text string) (string, bool)
}

type responseParser struct{}

func NewResponseParser() ResponseParser {
	return &responseParser{}
}

// ExtractMatchScore implements ResponseParser. It returns the value of the
// leftmost run of one to three digits immediately followed by a percent
// sign, clamped to 100. When the text later mentions further percentages the
// first one still wins.
func (p *responseParser) ExtractMatchScore(text string) (int, bool) {
	m := matchScoreRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	score, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	if score > 100 {
		score = 100
	}
	return score, true
}

// ExtractSkillScores implements ResponseParser. A missing "Skills Match:"
// label is not an error; the result is simply nil. A label followed by a
// payload that is not a flat quoted-name-to-number literal fails with
// ErrMalformedSkillsBlock. The payload is parsed with a restricted literal
// scanner, never evaluated.
func (p *responseParser) ExtractSkillScores(text string) (models.SkillScoreList, error) {
	m := skillsRe.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}

	skills, err := parseSkillLiteral(m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSkillsBlock, err)
	}

	return skills, nil
}

// ExtractCoverLetter implements ResponseParser. It captures everything after
// "Cover Letter:" up to the next known section marker, or to the end of the
// text when none follows, trimmed of surrounding whitespace.
func (p *responseParser) ExtractCoverLetter(text string) (string, bool) {
	m := coverRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	return strings.TrimSpace(m[1]), true
}

// parseSkillLiteral reads a brace-delimited mapping literal in the shape the
// model emits, e.g. {'Python': 80, "SQL": 60.5}. Only flat pairs of a quoted
// name and a non-negative number are accepted; nested structures, bare words
// and duplicate names are rejected.
func parseSkillLiteral(lit string) (models.SkillScoreList, error) {
	s := newLiteralScanner(lit)

	s.skipSpace()
	if !s.consume('{') {
		return nil, fmt.Errorf("expected '{' at position %d", s.pos)
	}

	skills := models.SkillScoreList{}
	seen := make(map[string]bool)

	s.skipSpace()
	if s.consume('}') {
		s.skipSpace()
		if !s.done() {
			return nil, fmt.Errorf("trailing characters after '}'")
		}
		return skills, nil
	}

	for {
		name, err := s.quotedString()
		if err != nil {
			return nil, err
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate skill name %q", name)
		}
		seen[name] = true

		s.skipSpace()
		if !s.consume(':') {
			return nil, fmt.Errorf("expected ':' after %q", name)
		}

		s.skipSpace()
		score, err := s.number()
		if err != nil {
			return nil, err
		}

		skills = append(skills, models.SkillScore{Name: name, Score: score})

		s.skipSpace()
		if s.consume(',') {
			s.skipSpace()
			// Trailing comma before the closing brace is fine.
			if s.consume('}') {
				break
			}
			continue
		}
		if s.consume('}') {
			break
		}
		return nil, fmt.Errorf("expected ',' or '}' at position %d", s.pos)
	}

	s.skipSpace()
	if !s.done() {
		return nil, fmt.Errorf("trailing characters after '}'")
	}

	return skills, nil
}

type literalScanner struct {
	src string
	pos int
}

func newLiteralScanner(src string) *literalScanner {
	return &literalScanner{src: src}
}

func (s *literalScanner) done() bool {
	return s.pos >= len(s.src)
}

func (s *literalScanner) skipSpace() {
	for !s.done() {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

func (s *literalScanner) consume(c byte) bool {
	if !s.done() && s.src[s.pos] == c {
		s.pos++
		return true
	}
	return false
}

// quotedString reads a single- or double-quoted name. Backslash escapes are
// not interpreted; the model does not produce them in skill names.
func (s *literalScanner) quotedString() (string, error) {
	if s.done() {
		return "", fmt.Errorf("expected quoted name at position %d", s.pos)
	}

	quote := s.src[s.pos]
	if quote != '\'' && quote != '"' {
		return "", fmt.Errorf("expected quoted name at position %d", s.pos)
	}
	s.pos++

	start := s.pos
	for !s.done() {
		if s.src[s.pos] == quote {
			name := s.src[start:s.pos]
			s.pos++
			return name, nil
		}
		s.pos++
	}

	return "", fmt.Errorf("unterminated quoted name")
}

func (s *literalScanner) number() (float64, error) {
	start := s.pos
	for !s.done() && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == start {
		return 0, fmt.Errorf("expected number at position %d", s.pos)
	}

	if !s.done() && s.src[s.pos] == '.' {
		s.pos++
		fracStart := s.pos
		for !s.done() && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
			s.pos++
		}
		if s.pos == fracStart {
			return 0, fmt.Errorf("expected digits after '.' at position %d", s.pos)
		}
	}

	value, err := strconv.ParseFloat(s.src[start:s.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %v", s.src[start:s.pos], err)
	}

	return value, nil
}
