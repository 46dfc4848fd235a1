package bootstrap

import (
	"context"
	"errors"
	"sync"

	"coverletter-gen/internal/llm"
	openai "coverletter-gen/internal/llm/openai"
)

// ErrNoAPIKey is returned when generation is attempted before a key has
// been configured.
var ErrNoAPIKey = errors.New("OPENAI_API_KEY is not set; add it in settings")

// LLMGateway wraps the OpenAI client so the app can start without an API
// key and pick one up later from a settings update.
type LLMGateway struct {
	mu     sync.RWMutex
	client *openai.Client
	params openai.Params
}

var _ llm.Client = (*LLMGateway)(nil)

// NewLLMGateway returns a gateway with no backing client yet.
func NewLLMGateway(params openai.Params) *LLMGateway {
	return &LLMGateway{params: params}
}

// SetAPIKey installs or replaces the backing client.
func (g *LLMGateway) SetAPIKey(apiKey string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		g.client.SetAPIKey(apiKey)
		return nil
	}
	client, err := openai.NewClient(apiKey, g.params)
	if err != nil {
		return err
	}
	g.client = client
	return nil
}

// Configure updates generation parameters, remembering them for a client
// created later.
func (g *LLMGateway) Configure(params openai.Params) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.params = params
	if g.client != nil {
		g.client.Configure(params)
	}
}

// HasAPIKey reports whether a backing client exists.
func (g *LLMGateway) HasAPIKey() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.client != nil
}

func (g *LLMGateway) backing() (*openai.Client, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.client == nil {
		return nil, ErrNoAPIKey
	}
	return g.client, nil
}

func (g *LLMGateway) GenerateLetter(ctx context.Context, input llm.LetterInput) (string, error) {
	client, err := g.backing()
	if err != nil {
		return "", err
	}
	return client.GenerateLetter(ctx, input)
}

func (g *LLMGateway) SuggestFilename(ctx context.Context, jobDescription string) (string, error) {
	client, err := g.backing()
	if err != nil {
		return "", err
	}
	return client.SuggestFilename(ctx, jobDescription)
}
