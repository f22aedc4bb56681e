package mentor

import (
	"context"
	"fmt"
	"strings"

	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/llm"
)

const suggestionCount = 4

// SuggestService proposes next goals fitted to the user's progress.
type SuggestService interface {
	Suggest(ctx context.Context, profile *domain.UserProfile) []Suggestion
}

type suggestService struct {
	client   llm.LLMClient
	observer llm.Observer
}

// NewSuggestService creates a SuggestService backed by an LLM client.
func NewSuggestService(client llm.LLMClient, observer llm.Observer) SuggestService {
	return &suggestService{client: client, observer: observer}
}

// suggestLLMResponse is the JSON structure expected from the LLM.
type suggestLLMResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

func (s *suggestService) Suggest(ctx context.Context, profile *domain.UserProfile) []Suggestion {
	suggestions, err := s.generate(ctx, profile)
	if err != nil {
		return DeterministicSuggestions(profile)
	}
	return suggestions
}

func (s *suggestService) generate(ctx context.Context, profile *domain.UserProfile) ([]Suggestion, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSuggest,
		SystemPrompt: suggestSystemPrompt,
		UserPrompt:   buildSuggestUserPrompt(profile),
	})
	if err != nil {
		return nil, fmt.Errorf("suggestion generation failed: %w", err)
	}

	parsed, err := llm.ExtractJSON[suggestLLMResponse](resp.Text, validateSuggestResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to extract suggestions: %w", err)
	}

	return parsed.Suggestions, nil
}

func validateSuggestResponse(resp suggestLLMResponse) error {
	if len(resp.Suggestions) != suggestionCount {
		return fmt.Errorf("expected %d suggestions, got %d", suggestionCount, len(resp.Suggestions))
	}
	for i, s := range resp.Suggestions {
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("suggestion %d has an empty title", i+1)
		}
	}
	return nil
}
