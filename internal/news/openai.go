package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"trading-sim/internal/interfaces"
	"trading-sim/internal/trace"
)

// OpenAIGenerator produces market news through the OpenAI chat completions
// API. Without OPENAI_API_KEY it degrades to a fixed notice instead of
// failing.
type OpenAIGenerator struct {
	model       string
	maxTokens   int
	temperature float32
}

var _ interfaces.NewsGenerator = (*OpenAIGenerator)(nil)

func NewOpenAIGenerator(model string, maxTokens int, temperature float32) *OpenAIGenerator {
	return &OpenAIGenerator{model: model, maxTokens: maxTokens, temperature: temperature}
}

// Available reports whether an API key is configured.
func (g *OpenAIGenerator) Available() bool {
	return os.Getenv("OPENAI_API_KEY") != ""
}

// Generate asks the model for crypto-market news dated to the simulation
// day.
func (g *OpenAIGenerator) Generate(ctx context.Context, day time.Time) (string, error) {
	if !g.Available() {
		return "Not available. Set OPENAI_API_KEY to enable generated news.", nil
	}

	ctx, span := trace.StartSpan(ctx, "openai-news")
	defer span.End()

	prompt := fmt.Sprintf(
		"Write a short news digest of events that affect the crypto market as of %s. Plain text, a few sentences.",
		day.Format("2006-01-02"))

	body := map[string]any{
		"model":       g.model,
		"messages":    []map[string]string{{"role": "user", "content": prompt}},
		"temperature": g.temperature,
		"max_tokens":  g.maxTokens,
	}
	bb, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.openai.com/v1/chat/completions", bytes.NewReader(bb))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("OPENAI_API_KEY"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return "", err
	}
	if len(r.Choices) == 0 {
		return "", errors.New("no choices")
	}
	return strings.TrimSpace(r.Choices[0].Message.Content), nil
}
