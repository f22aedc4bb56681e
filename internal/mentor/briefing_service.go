package mentor

import (
	"context"
	"fmt"

	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/llm"
)

// BriefingService produces the daily morning greeting.
type BriefingService interface {
	MorningBriefing(ctx context.Context, profile *domain.UserProfile, goal *domain.Goal) *Reply
}

type briefingService struct {
	client   llm.LLMClient
	observer llm.Observer
}

// NewBriefingService creates a BriefingService backed by an LLM client.
func NewBriefingService(client llm.LLMClient, observer llm.Observer) BriefingService {
	return &briefingService{client: client, observer: observer}
}

func (s *briefingService) MorningBriefing(ctx context.Context, profile *domain.UserProfile, goal *domain.Goal) *Reply {
	reply, err := s.generate(ctx, profile, goal)
	if err != nil {
		return DeterministicBriefing()
	}
	return reply
}

func (s *briefingService) generate(ctx context.Context, profile *domain.UserProfile, goal *domain.Goal) (*Reply, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskBriefing,
		SystemPrompt: briefingSystemPrompt,
		UserPrompt:   buildBriefingUserPrompt(profile, goal),
	})
	if err != nil {
		return nil, fmt.Errorf("briefing generation failed: %w", err)
	}

	parsed, err := llm.ExtractJSON[chatLLMResponse](resp.Text, validateChatResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to extract briefing: %w", err)
	}

	return &Reply{Message: parsed.Message, Source: "llm"}, nil
}
