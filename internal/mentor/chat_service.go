package mentor

import (
	"context"
	"fmt"

	"github.com/innerpath-app/innerpath/internal/domain"
	"github.com/innerpath-app/innerpath/internal/llm"
)

// ChatService runs a multi-turn conversation with the mentor.
type ChatService interface {
	// StartChat begins a conversation with an opening message.
	StartChat(ctx context.Context, profile *domain.UserProfile, message string) (*Conversation, *Reply, error)

	// NextTurn continues an existing conversation.
	NextTurn(ctx context.Context, profile *domain.UserProfile, conv *Conversation, message string) (*Reply, error)
}

type chatService struct {
	client   llm.LLMClient
	observer llm.Observer
}

// NewChatService creates a ChatService backed by an LLM client.
func NewChatService(client llm.LLMClient, observer llm.Observer) ChatService {
	return &chatService{client: client, observer: observer}
}

// chatLLMResponse is the JSON structure expected from the LLM.
type chatLLMResponse struct {
	Message string `json:"message"`
}

func (s *chatService) StartChat(ctx context.Context, profile *domain.UserProfile, message string) (*Conversation, *Reply, error) {
	conv := &Conversation{}
	reply := s.resolveWithFallback(ctx, profile, conv, message)
	conv.Turns = append(conv.Turns,
		ConversationTurn{Role: "User", Content: message},
		ConversationTurn{Role: "Mentor", Content: reply.Message},
	)
	return conv, reply, nil
}

func (s *chatService) NextTurn(ctx context.Context, profile *domain.UserProfile, conv *Conversation, message string) (*Reply, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	reply := s.resolveWithFallback(ctx, profile, conv, message)
	conv.Turns = append(conv.Turns,
		ConversationTurn{Role: "User", Content: message},
		ConversationTurn{Role: "Mentor", Content: reply.Message},
	)
	return reply, nil
}

func (s *chatService) resolveWithFallback(ctx context.Context, profile *domain.UserProfile, conv *Conversation, message string) *Reply {
	reply, err := s.generate(ctx, profile, conv, message)
	if err != nil {
		return DeterministicChatReply(profile)
	}
	return reply
}

func (s *chatService) generate(ctx context.Context, profile *domain.UserProfile, conv *Conversation, message string) (*Reply, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskMentor,
		SystemPrompt: chatSystemPrompt,
		UserPrompt:   buildChatUserPrompt(profile, conv, message),
	})
	if err != nil {
		return nil, fmt.Errorf("mentor chat generation failed: %w", err)
	}

	parsed, err := llm.ExtractJSON[chatLLMResponse](resp.Text, validateChatResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to extract mentor reply: %w", err)
	}

	return &Reply{Message: parsed.Message, Source: "llm"}, nil
}

func validateChatResponse(resp chatLLMResponse) error {
	if resp.Message == "" {
		return fmt.Errorf("message field is required")
	}
	return nil
}
