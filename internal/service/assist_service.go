package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/config"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
)

// AssistService drafts status emails from issue context via OpenAI.
// When no API key is configured it stays disabled.
type AssistService struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

func NewAssistService(cfg config.OpenAI, log zerolog.Logger) *AssistService {
	s := &AssistService{model: cfg.Model, log: log}
	if cfg.APIKey != "" {
		s.client = openai.NewClient(cfg.APIKey)
	}
	if s.model == "" {
		s.model = openai.GPT4oMini
	}
	return s
}

func (s *AssistService) Enabled() bool { return s.client != nil }

// SuggestDraft returns a proposed subject and body covering the given issues.
func (s *AssistService) SuggestDraft(ctx context.Context, issues []models.Issue, instructions string) (subject, body string, err error) {
	if s.client == nil {
		return "", "", fmt.Errorf("assist service is disabled")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You draft concise internal status emails about ERP issues. Reply with a 'Subject:' line followed by the email body.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildDraftPrompt(issues, instructions),
			},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("empty completion response")
	}

	subject, body = splitDraft(resp.Choices[0].Message.Content)
	s.log.Info().Int("issues", len(issues)).Msg("draft suggestion generated")
	return subject, body, nil
}

func buildDraftPrompt(issues []models.Issue, instructions string) string {
	var sb strings.Builder
	sb.WriteString("Write a status email covering these issues:\n")
	for _, i := range issues {
		fmt.Fprintf(&sb, "- %s [%s/%s]", i.Title, i.Status, i.Priority)
		if i.ResolutionPlan != "" {
			fmt.Fprintf(&sb, " plan: %s", i.ResolutionPlan)
		}
		sb.WriteString("\n")
	}
	if instructions != "" {
		sb.WriteString("Additional instructions: " + instructions + "\n")
	}
	return sb.String()
}

// splitDraft peels the leading "Subject:" line off a completion.
func splitDraft(content string) (subject, body string) {
	content = strings.TrimSpace(content)
	line, rest, found := strings.Cut(content, "\n")
	if found && strings.HasPrefix(strings.ToLower(line), "subject:") {
		return strings.TrimSpace(line[len("subject:"):]), strings.TrimSpace(rest)
	}
	return "", content
}
