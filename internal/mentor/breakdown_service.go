package mentor

import (
	"context"
	"fmt"
	"strings"

	"github.com/innerpath-app/innerpath/internal/llm"
)

const (
	minBreakdownSteps = 1
	maxBreakdownSteps = 10
)

// BreakdownService decomposes a goal into concrete timed steps.
//
// There is no deterministic fallback here. When the mentor is unreachable
// the error surfaces and the goal stays awaiting its breakdown, so the
// caller can retry later or add steps by hand.
type BreakdownService interface {
	Decompose(ctx context.Context, goalTitle, notes string) (*Breakdown, error)
}

type breakdownService struct {
	client   llm.LLMClient
	observer llm.Observer
}

// NewBreakdownService creates a BreakdownService backed by an LLM client.
func NewBreakdownService(client llm.LLMClient, observer llm.Observer) BreakdownService {
	return &breakdownService{client: client, observer: observer}
}

func (s *breakdownService) Decompose(ctx context.Context, goalTitle, notes string) (*Breakdown, error) {
	if strings.TrimSpace(goalTitle) == "" {
		return nil, fmt.Errorf("goal title is required")
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskBreakdown,
		SystemPrompt: breakdownSystemPrompt,
		UserPrompt:   buildBreakdownUserPrompt(goalTitle, notes),
	})
	if err != nil {
		return nil, fmt.Errorf("breakdown generation failed: %w", err)
	}

	parsed, err := llm.ExtractJSON[Breakdown](resp.Text, validateBreakdown)
	if err != nil {
		return nil, fmt.Errorf("failed to extract breakdown: %w", err)
	}

	return &parsed, nil
}

func validateBreakdown(b Breakdown) error {
	if len(b.Steps) < minBreakdownSteps || len(b.Steps) > maxBreakdownSteps {
		return fmt.Errorf("expected between %d and %d steps, got %d", minBreakdownSteps, maxBreakdownSteps, len(b.Steps))
	}
	for i, step := range b.Steps {
		if strings.TrimSpace(step.Title) == "" {
			return fmt.Errorf("step %d has an empty title", i+1)
		}
		if step.DurationMin <= 0 {
			return fmt.Errorf("step %d has non-positive duration %d", i+1, step.DurationMin)
		}
	}
	return nil
}
