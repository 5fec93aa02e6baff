package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Generator produces JSON-typed text for a prompt. Implemented by the Gemini
// client.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Input carries the meeting context embedded into the extraction prompt.
type Input struct {
	Title      string
	Date       time.Time
	Tags       []string
	Transcript string
}

// Service extracts candidate tasks from meeting transcripts
type Service interface {
	Extract(ctx context.Context, in Input) []Candidate
}

type service struct {
	generator Generator
	parser    *Parser
	logger    *zap.Logger
}

// NewService constructs an extraction service
func NewService(generator Generator, logger *zap.Logger) Service {
	return &service{
		generator: generator,
		parser:    NewParser(),
		logger:    logger,
	}
}

// Extract asks the model for candidate tasks. Any failure, from transport to
// an unparseable response, degrades to an empty candidate list so meeting
// creation can proceed.
func (s *service) Extract(ctx context.Context, in Input) []Candidate {
	mentions := ExtractMentions(in.Transcript)
	prompt := buildPrompt(in, mentions)

	text, err := s.generator.GenerateJSON(ctx, prompt)
	if err != nil {
		s.logger.Error("extraction request failed",
			zap.String("meeting_title", in.Title),
			zap.Error(err),
		)
		return []Candidate{}
	}

	candidates, err := s.parser.ParseCandidates(text)
	if err != nil {
		s.logger.Error("failed to parse extraction output",
			zap.String("meeting_title", in.Title),
			zap.String("raw_output", text),
			zap.Error(err),
		)
		return []Candidate{}
	}

	return candidates
}

func buildPrompt(in Input, mentions []string) string {
	var b strings.Builder

	b.WriteString(`Extract tasks and their assigned emails from this meeting transcript.
Only include tasks that have clear email assignments.
Format JSON strictly like:
{
  "summary": [
    {
      "description": "...",
      "assignedToEmail": "specific email from transcript",
      "deadline": "YYYY-MM-DD",
      "status": "pending"
    }
  ]
}

`)

	fmt.Fprintf(&b, "Meeting: %s\n", in.Title)
	fmt.Fprintf(&b, "Date: %s\n", in.Date.Format("2006-01-02"))
	if len(in.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(in.Tags, ", "))
	}
	fmt.Fprintf(&b, "\nConsider these emails mentioned: %s\n", strings.Join(mentions, ", "))
	fmt.Fprintf(&b, "\nTranscript:\n%s\n", in.Transcript)

	return b.String()
}
