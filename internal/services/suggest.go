package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/cvassist/task-api/internal/models"
	"github.com/sashabaranov/go-openai"
)

// SuggestService drafts CV copy from a client profile for designers.
type SuggestService struct {
	client *openai.Client
}

func NewSuggestService(apiKey string) *SuggestService {
	return &SuggestService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestSummary drafts a professional summary paragraph for the task's
// client using the profile captured at creation time. The draft is a
// starting point for the designer and is never persisted.
func (s *SuggestService) SuggestSummary(ctx context.Context, task *models.Task) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a professional CV writer. Draft a concise professional summary (3-4 sentences, first person, no heading) for the following candidate:

Job title: %s
Education: %s
Years of experience: %d
Skills: %s

Return only the summary paragraph, no explanations.`,
		task.JobTitle,
		task.Education,
		task.ExperienceYears,
		strings.Join(task.Skills, ", "),
	)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.4,
		},
	)

	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
