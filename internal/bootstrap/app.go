package bootstrap

import (
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"coverletter-gen/internal/clipboard"
	"coverletter-gen/internal/documents"
	"coverletter-gen/internal/letters"
	openai "coverletter-gen/internal/llm/openai"
	"coverletter-gen/internal/server"
	"coverletter-gen/internal/services/health"
	"coverletter-gen/internal/settings"
	"coverletter-gen/internal/shared/config"
	"coverletter-gen/internal/state"
)

// App holds shared dependencies. Router is wired last so tests can swap
// services before building their own engine.
type App struct {
	Config config.Config
	Router *gin.Engine

	State            *state.Store
	LLM              *LLMGateway
	DocumentsService *documents.Service
	LettersService   *letters.Service
	SettingsService  *settings.Service

	DocumentsHandler *documents.Handler
	LettersHandler   *letters.Handler
	SettingsHandler  *settings.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	store, err := state.New(cfg.DataDir, defaultSettings(cfg))
	if err != nil {
		return nil, fmt.Errorf("state store: %w", err)
	}

	gateway := NewLLMGateway(paramsFromSettings(store.Settings()))
	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		if err := gateway.SetAPIKey(cfg.OpenAIAPIKey); err != nil {
			return nil, err
		}
	} else if isDevLike(cfg.Env) {
		log.Printf("bootstrap: OPENAI_API_KEY empty; generation disabled until a key is saved in settings")
	} else {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	docSvc, err := documents.NewService(cfg.DataDir, store)
	if err != nil {
		return nil, fmt.Errorf("documents: %w", err)
	}

	letterSvc := &letters.Service{
		LLM:       gateway,
		Docs:      docSvc,
		Clipboard: clipboard.System{},
		State:     store,
	}

	settingsSvc := &settings.Service{
		State:   store,
		EnvFile: config.EnvFile,
		OnChange: func(s state.Settings) {
			gateway.Configure(paramsFromSettings(s))
		},
		OnAPIKey: func(key string) {
			if err := gateway.SetAPIKey(key); err != nil {
				log.Printf("bootstrap: rejected api key update: %v", err)
			}
		},
	}

	app := &App{
		Config:           cfg,
		State:            store,
		LLM:              gateway,
		DocumentsService: docSvc,
		LettersService:   letterSvc,
		SettingsService:  settingsSvc,
		DocumentsHandler: &documents.Handler{Service: docSvc},
		LettersHandler:   &letters.Handler{Service: letterSvc},
		SettingsHandler:  &settings.Handler{Service: settingsSvc},
	}

	app.Router = server.NewEngine(server.RouterDeps{
		DocumentsHandler: app.DocumentsHandler,
		LettersHandler:   app.LettersHandler,
		SettingsHandler:  app.SettingsHandler,
		Health:           health.NewService(gateway),
	})

	return app, nil
}

func defaultSettings(cfg config.Config) state.Settings {
	return state.Settings{
		CoverLetterModel:  cfg.LetterModel,
		FilenameModel:     cfg.FilenameModel,
		MaxTokens:         cfg.MaxTokens,
		FilenameMaxTokens: cfg.FilenameMaxTokens,
		Temperature:       cfg.Temperature,
		TopP:              cfg.TopP,
		FontName:          cfg.FontName,
		FontSize:          cfg.FontSize,
		FontPath:          cfg.FontPath,
		OutputPath:        cfg.OutputDir,
	}
}

func paramsFromSettings(s state.Settings) openai.Params {
	return openai.Params{
		LetterModel:       s.CoverLetterModel,
		FilenameModel:     s.FilenameModel,
		MaxTokens:         s.MaxTokens,
		FilenameMaxTokens: s.FilenameMaxTokens,
		Temperature:       s.Temperature,
		TopP:              s.TopP,
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
