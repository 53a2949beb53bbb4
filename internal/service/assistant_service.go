package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"factfind/internal/logger"

	openai "github.com/sashabaranov/go-openai"
)

// AssistantService answers advisor questions about a completed fact
// find. The prompt, model, and temperature come from the admin
// settings row. Without an API key it answers with a deterministic
// canned summary so the rest of the flow stays usable.
type AssistantService struct {
	client   *openai.Client
	settings *SettingsService
}

func NewAssistantService(apiKey string, settings *SettingsService) *AssistantService {
	s := &AssistantService{settings: settings}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	return s
}

// Generate produces an assistant response grounded in the session
// summary. summary is the "question: answer" lines of the fact find.
func (s *AssistantService) Generate(ctx context.Context, summary []string, userMessage string) (string, error) {
	if s.client == nil {
		return s.mockResponse(summary, userMessage), nil
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return s.mockResponse(summary, userMessage), nil
	}

	temperature := float32(0.7)
	if t, err := strconv.ParseFloat(settings.AITemperature, 32); err == nil {
		temperature = float32(t)
	}
	model := settings.AIModel
	if model == "" {
		model = openai.GPT4o
	}

	system := settings.AIPrompt
	if system == "" {
		system = "You are a helpful insurance advisor assistant."
	}
	system += "\n\nFact find summary:\n" + strings.Join(summary, "\n")

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
	})
	if err != nil {
		logger.Warn("assistant completion failed", err)
		return s.mockResponse(summary, userMessage), nil
	}
	if len(resp.Choices) == 0 {
		return s.mockResponse(summary, userMessage), nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *AssistantService) mockResponse(summary []string, userMessage string) string {
	return fmt.Sprintf(
		"I can't reach the assistant right now. The fact find has %d recorded answers; please review them directly. Your question was: %q",
		len(summary), userMessage,
	)
}
