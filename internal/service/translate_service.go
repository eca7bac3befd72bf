package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spec-kit/qrmenu-service/internal/config"
)

// TranslateService translates menu text through the chat-completion API.
// The API is a contract-only collaborator; failures are terminal for the
// request and never retried.
type TranslateService struct {
	cfg    config.TranslateConfig
	client *http.Client
}

// NewTranslateService builds the service.
func NewTranslateService(cfg config.TranslateConfig) *TranslateService {
	return &TranslateService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Translate returns the text rendered in the target language.
func (s *TranslateService) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if s.cfg.APIKey == "" {
		return "", errors.New("translation api not configured")
	}
	if text == "" || targetLanguage == "" {
		return "", errors.New("text and target language required")
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You translate restaurant menu text. Reply with the translation only."},
			{Role: "user", Content: fmt.Sprintf("Translate to %s:\n%s", targetLanguage, text)},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("translation api returned status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("translation api returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
