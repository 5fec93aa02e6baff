package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Candidate is one task row extracted from a transcript, prior to resolution
// against registered users.
type Candidate struct {
	Description     string `json:"description"`
	AssignedToEmail string `json:"assignedToEmail"`
	Deadline        string `json:"deadline"`
	Status          string `json:"status"`
}

// extractionResult is the strict JSON shape the model is instructed to emit.
type extractionResult struct {
	Summary []Candidate `json:"summary"`
}

// Parser handles parsing and validation of model responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseCandidates decodes the model output into a candidate list. The model
// is asked for raw JSON but may wrap it in markdown code blocks.
func (p *Parser) ParseCandidates(jsonString string) ([]Candidate, error) {
	jsonString = extractJSON(jsonString)

	var result extractionResult
	if err := json.Unmarshal([]byte(jsonString), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if result.Summary == nil {
		return []Candidate{}, nil
	}
	return result.Summary, nil
}

// extractJSON strips a surrounding markdown code block, if any.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
