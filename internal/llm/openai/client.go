package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"coverletter-gen/internal/llm"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Models that accept temperature and top_p. Newer gpt-5 variants reject
// sampling parameters outright.
var modelsWithSampling = map[string]struct{}{
	"gpt-5.1": {},
}

// Params are the tunable generation settings. They can be swapped at
// runtime when the user saves new preferences.
type Params struct {
	LetterModel       string
	FilenameModel     string
	MaxTokens         int
	FilenameMaxTokens int
	Temperature       float64
	TopP              float64
}

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	mu         sync.RWMutex
	apiKey     string
	params     Params
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey string, params Params) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(params.LetterModel) == "" {
		return nil, fmt.Errorf("OPENAI_MODEL is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		params: params,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Configure replaces the generation parameters for subsequent requests.
func (c *Client) Configure(params Params) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(params.LetterModel) != "" {
		c.params = params
	}
}

// SetAPIKey swaps the bearer key for subsequent requests.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(apiKey) != "" {
		c.apiKey = apiKey
	}
}

func (c *Client) snapshot() (string, Params) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey, c.params
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	MaxTokens           *int          `json:"max_tokens,omitempty"`
	MaxCompletionTokens *int          `json:"max_completion_tokens,omitempty"`
	Temperature         *float64      `json:"temperature,omitempty"`
	TopP                *float64      `json:"top_p,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// GenerateLetter issues one completion request and returns the letter text.
func (c *Client) GenerateLetter(ctx context.Context, input llm.LetterInput) (string, error) {
	_, params := c.snapshot()
	messages := BuildLetterMessages(input)
	text, usage, err := c.completeOnce(ctx, params.LetterModel, messages, params.MaxTokens, true)
	if err != nil {
		return "", err
	}
	logUsage("letter", params.LetterModel, usage)
	return strings.TrimSpace(text), nil
}

// SuggestFilename asks the filename model for a snake_case base name.
// Callers are expected to sanitize the result and fall back on error.
func (c *Client) SuggestFilename(ctx context.Context, jobDescription string) (string, error) {
	_, params := c.snapshot()
	model := params.FilenameModel
	if strings.TrimSpace(model) == "" {
		model = params.LetterModel
	}
	messages := BuildFilenameMessages(jobDescription)
	text, usage, err := c.completeOnce(ctx, model, messages, params.FilenameMaxTokens, false)
	if err != nil {
		return "", err
	}
	logUsage("filename", model, usage)
	return strings.TrimSpace(text), nil
}

func (c *Client) completeOnce(ctx context.Context, model string, messages []Message, maxTokens int, sampled bool) (string, *chatResponseUsage, error) {
	apiKey, params := c.snapshot()

	reqMessages := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, chatMessage{Role: m.Role, Content: m.Content})
	}
	reqBody := chatRequest{
		Model:    model,
		Messages: reqMessages,
	}
	if maxTokens > 0 {
		if isGPT5(model) {
			reqBody.MaxCompletionTokens = &maxTokens
		} else {
			reqBody.MaxTokens = &maxTokens
		}
	}
	if sampled {
		if _, ok := modelsWithSampling[strings.ToLower(strings.TrimSpace(model))]; ok {
			temp := params.Temperature
			topP := params.TopP
			reqBody.Temperature = &temp
			reqBody.TopP = &topP
		}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", nil, fmt.Errorf("openai request timeout: %w", err)
		}
		return "", nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", nil, fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", nil, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", nil, fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", nil, fmt.Errorf("openai response empty content")
	}
	return content, toUsage(parsed.Usage), nil
}

type chatResponseUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

func toUsage(raw *struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}) *chatResponseUsage {
	if raw == nil {
		return nil
	}
	return &chatResponseUsage{
		PromptTokens:     raw.PromptTokens,
		CompletionTokens: raw.CompletionTokens,
		TotalTokens:      raw.TotalTokens,
	}
}

func logUsage(kind, model string, usage *chatResponseUsage) {
	if usage == nil {
		log.Printf("llm response kind=%s model=%s", kind, model)
		return
	}
	log.Printf("llm response kind=%s model=%s prompt_tokens=%d completion_tokens=%d total_tokens=%d",
		kind, model, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
}

func isGPT5(model string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), "gpt-5")
}

var _ llm.Client = (*Client)(nil)
