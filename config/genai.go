package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// GenAIClient talks to an OpenAI-compatible chat-completions endpoint
// (Groq by default). The optimization engine consumes it through the
// workflow.TextGenerator interface so tests can inject fakes.
type GenAIClient struct {
	http  *resty.Client
	model string
}

var genai *GenAIClient

func GetGenAI() *GenAIClient {
	return genai
}

// ConnectGenAI initializes the generation client from env. Leaves the global
// nil when GENAI_API_KEY is absent; callers must check Available().
func ConnectGenAI() {
	apiKey := strings.TrimSpace(os.Getenv("GENAI_API_KEY"))
	if apiKey == "" {
		log.Printf("GENAI_API_KEY not set; generation-backed features are disabled")
		return
	}

	baseURL := strings.TrimSpace(os.Getenv("GENAI_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	model := strings.TrimSpace(os.Getenv("GENAI_MODEL"))
	if model == "" {
		model = "llama3-8b-8192"
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(60 * time.Second).
		SetHeader("Content-Type", "application/json")

	genai = &GenAIClient{http: client, model: model}
	log.Printf("genai client initialized (model=%s)", model)
}

func (c *GenAIClient) Available() bool {
	return c != nil && c.http != nil
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat sends a full message history and returns the assistant's reply.
func (c *GenAIClient) Chat(ctx context.Context, messages []ChatMessage, temperature float64, maxTokens int) (string, error) {
	if !c.Available() {
		return "", errors.New("genai client not initialized")
	}

	req := chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	var out chatCompletionResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&out).
		Post("/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		if out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("genai request failed: %s", out.Error.Message)
		}
		return "", fmt.Errorf("genai request failed: status %d", resp.StatusCode())
	}
	if len(out.Choices) == 0 {
		return "", errors.New("genai response contains no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// Generate is the single-prompt convenience wrapper used for data generation
// and reasoning prompts.
func (c *GenAIClient) Generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	return c.Chat(ctx, []ChatMessage{{Role: "user", Content: prompt}}, temperature, maxTokens)
}
