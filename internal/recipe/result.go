package recipe

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FallbackTitle is used when the raw text has no usable first line.
const FallbackTitle = "Michelin Star Recipe"

const (
	minimumComplexityScore = 1
	maximumComplexityScore = 10
	unavailableScoreLabel  = "N/A"
)

var complexityScorePattern = regexp.MustCompile(`\*\*Complexity Score:\s*(\d{1,2})/10\*\*`)

// ComplexityScore is an integer from 1 to 10, or ScoreUnavailable.
type ComplexityScore int

// ScoreUnavailable marks a response without a valid complexity marker.
const ScoreUnavailable ComplexityScore = 0

// Available reports whether the score holds a value in range.
func (score ComplexityScore) Available() bool {
	return score >= minimumComplexityScore && score <= maximumComplexityScore
}

func (score ComplexityScore) String() string {
	if !score.Available() {
		return unavailableScoreLabel
	}
	return strconv.Itoa(int(score)) + "/10"
}

// MarshalJSON writes null for an unavailable score.
func (score ComplexityScore) MarshalJSON() ([]byte, error) {
	if !score.Available() {
		return []byte("null"), nil
	}
	return json.Marshal(int(score))
}

// UnmarshalJSON accepts an integer or null.
func (score *ComplexityScore) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*score = ScoreUnavailable
		return nil
	}
	var value int
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*score = ComplexityScore(value)
	if !score.Available() {
		*score = ScoreUnavailable
	}
	return nil
}

// Result is the immutable record of one generation.
type Result struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	RawText         string          `json:"raw_text"`
	HTML            string          `json:"html_content"`
	ComplexityScore ComplexityScore `json:"complexity_score"`
	Parameters      Parameters      `json:"parameters"`
	Model           string          `json:"model,omitempty"`
	CreatedAt       time.Time       `json:"timestamp"`
}

// ExtractTitle returns the first non-empty line of the raw text.
func ExtractTitle(rawText string) string {
	for _, line := range strings.Split(rawText, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return FallbackTitle
}

// ExtractComplexityScore finds the first **Complexity Score: N/10** marker
// anywhere in the text. Missing markers and values outside 1..10 yield
// ScoreUnavailable.
func ExtractComplexityScore(rawText string) ComplexityScore {
	match := complexityScorePattern.FindStringSubmatch(rawText)
	if match == nil {
		return ScoreUnavailable
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return ScoreUnavailable
	}
	score := ComplexityScore(value)
	if !score.Available() {
		return ScoreUnavailable
	}
	return score
}
