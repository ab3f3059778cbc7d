package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/llm"
)

// RoadmapDraftService asks the LLM for a roadmap document.
type RoadmapDraftService interface {
	Draft(ctx context.Context, skill string, level domain.Level, weeks int) (*RoadmapDraft, error)
}

// RoadmapDraft is a parsed roadmap plus the raw model text it came from.
type RoadmapDraft struct {
	Content domain.RoadmapContent
	Raw     string
}

// DraftError separates a failed model call from an unparseable response.
type DraftError struct {
	Stage string // "generate" or "parse"
	Raw   string
	Err   error
}

func (e *DraftError) Error() string {
	return fmt.Sprintf("roadmap %s: %v", e.Stage, e.Err)
}

func (e *DraftError) Unwrap() error { return e.Err }

type roadmapDraftService struct {
	client llm.LLMClient
}

// NewRoadmapDraftService creates a RoadmapDraftService backed by an LLM client.
func NewRoadmapDraftService(client llm.LLMClient) RoadmapDraftService {
	return &roadmapDraftService{client: client}
}

func (s *roadmapDraftService) Draft(ctx context.Context, skill string, level domain.Level, weeks int) (*RoadmapDraft, error) {
	userPrompt, err := RoadmapUserPrompt(skill, level, weeks)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskRoadmap,
		SystemPrompt: roadmapSystemPrompt,
		UserPrompt:   userPrompt,
	})
	if err != nil {
		return nil, &DraftError{Stage: "generate", Err: err}
	}

	content, err := llm.ExtractJSON(resp.Text, validateRoadmapContent)
	if err != nil {
		return nil, &DraftError{Stage: "parse", Raw: resp.Text, Err: err}
	}
	if content.TotalWeeks == 0 {
		content.TotalWeeks = weeks
	}
	if content.Difficulty == "" {
		content.Difficulty = string(level)
	}

	return &RoadmapDraft{Content: content, Raw: resp.Text}, nil
}

func validateRoadmapContent(c domain.RoadmapContent) error {
	return c.Validate()
}
