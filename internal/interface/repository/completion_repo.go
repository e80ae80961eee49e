package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"traveldocs-service/internal/domain/repository"
	"traveldocs-service/pkg/logger"
)

// GroqCompletionRepository calls the Groq chat completions API with a
// fixed model. Single attempt, no streaming, no retries.
type GroqCompletionRepository struct {
	logger  logger.Logger
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewGroqCompletionRepository creates a new Groq completion repository
func NewGroqCompletionRepository(baseURL, apiKey, model string, logger logger.Logger) repository.CompletionRepository {
	return &GroqCompletionRepository{
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// Complete sends a single-turn prompt and returns the raw completion text
func (r *GroqCompletionRepository) Complete(ctx context.Context, prompt string) (string, error) {
	body := chatRequest{
		Model:    r.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	url := fmt.Sprintf("%s/openai/v1/chat/completions", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call completion service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("completion service returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("completion service returned no choices")
	}

	r.logger.Info("Completion received", "model", r.model, "chars", len(response.Choices[0].Message.Content))

	return response.Choices[0].Message.Content, nil
}
