package mentor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innerpath-app/innerpath/internal/llm"
)

const validSuggestJSON = `{
  "suggestions": [
    {"title": "Learn watercolor basics", "topic": "Painting fundamentals", "category": "creativity"},
    {"title": "Couch to 5k", "topic": "Build running endurance", "category": "health"},
    {"title": "Read a book a month", "topic": "Steady reading habit", "category": "learning"},
    {"title": "Evening wind-down ritual", "topic": "Calmer evenings", "category": "mindfulness"}
  ]
}`

func TestSuggest_ValidLLMResponse(t *testing.T) {
	svc := NewSuggestService(&mockLLMClient{response: validSuggestJSON}, llm.NoopObserver{})

	suggestions := svc.Suggest(context.Background(), testProfile())

	require.Len(t, suggestions, 4)
	assert.Equal(t, "Learn watercolor basics", suggestions[0].Title)
	assert.Equal(t, "health", suggestions[1].Category)
}

func TestSuggest_FallbackWhenLLMUnavailable(t *testing.T) {
	svc := NewSuggestService(&mockLLMClient{err: llm.ErrOllamaUnavailable}, llm.NoopObserver{})

	suggestions := svc.Suggest(context.Background(), testProfile())

	require.Len(t, suggestions, 4)
}

func TestSuggest_WrongCountFallsBack(t *testing.T) {
	client := &mockLLMClient{response: `{"suggestions": [{"title": "Only one", "topic": "t", "category": "other"}]}`}
	svc := NewSuggestService(client, llm.NoopObserver{})

	suggestions := svc.Suggest(context.Background(), testProfile())

	require.Len(t, suggestions, 4)
	assert.Equal(t, "Learn a new skill basics", suggestions[0].Title)
}

func TestSuggest_RecoveryListIsGentler(t *testing.T) {
	profile := testProfile()
	profile.RecoveryNeeded = true

	suggestions := DeterministicSuggestions(profile)

	require.Len(t, suggestions, 4)
	assert.Equal(t, "Ten-minute morning walk", suggestions[0].Title)
}
