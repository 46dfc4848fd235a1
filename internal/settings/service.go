package settings

import (
	"errors"
	"fmt"
	"strings"

	"coverletter-gen/internal/shared/config"
	"coverletter-gen/internal/shared/telemetry"
	"coverletter-gen/internal/state"
)

// Models the user can pick from.
var allowedModels = []string{"gpt-5.1", "gpt-5", "gpt-5-mini", "gpt-5-nano"}

// ErrValidation marks a rejected settings update.
var ErrValidation = errors.New("invalid settings")

// Service validates and persists user preferences and propagates them to
// the LLM client.
type Service struct {
	State   *state.Store
	EnvFile string

	// OnChange is called with the saved settings so the generation
	// client picks them up without a restart.
	OnChange func(state.Settings)
	// OnAPIKey is called after the env file is rewritten.
	OnAPIKey func(string)
}

// Get returns the current settings. The API key is write-only and never
// included.
func (s *Service) Get() state.Settings {
	return s.State.Settings()
}

// Update validates and saves new settings. A non-empty apiKey is stored
// into the env file; a blank one keeps the current key.
func (s *Service) Update(settings state.Settings, apiKey string) (state.Settings, error) {
	if err := validate(settings); err != nil {
		return state.Settings{}, err
	}

	if key := strings.TrimSpace(apiKey); key != "" {
		if err := config.UpdateAPIKey(s.EnvFile, key); err != nil {
			return state.Settings{}, fmt.Errorf("update api key: %w", err)
		}
		if s.OnAPIKey != nil {
			s.OnAPIKey(key)
		}
		telemetry.Info("settings.api_key_updated", map[string]any{"env_file": s.EnvFile})
	}

	if err := s.State.SaveSettings(settings); err != nil {
		return state.Settings{}, err
	}
	if s.OnChange != nil {
		s.OnChange(settings)
	}
	telemetry.Info("settings.saved", map[string]any{
		"cover_letter_model": settings.CoverLetterModel,
		"filename_model":     settings.FilenameModel,
		"font":               settings.FontName,
	})
	return settings, nil
}

func validate(s state.Settings) error {
	if !modelAllowed(s.CoverLetterModel) {
		return fmt.Errorf("%w: unknown cover letter model %q", ErrValidation, s.CoverLetterModel)
	}
	if !modelAllowed(s.FilenameModel) {
		return fmt.Errorf("%w: unknown filename model %q", ErrValidation, s.FilenameModel)
	}
	if s.MaxTokens <= 0 {
		return fmt.Errorf("%w: max tokens must be positive", ErrValidation)
	}
	if s.FilenameMaxTokens <= 0 {
		return fmt.Errorf("%w: filename max tokens must be positive", ErrValidation)
	}
	if s.Temperature < 0 || s.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be between 0 and 2", ErrValidation)
	}
	if s.TopP <= 0 || s.TopP > 1 {
		return fmt.Errorf("%w: top_p must be in (0, 1]", ErrValidation)
	}
	if strings.TrimSpace(s.FontName) == "" {
		return fmt.Errorf("%w: font name is required", ErrValidation)
	}
	if s.FontSize < 6 || s.FontSize > 72 {
		return fmt.Errorf("%w: font size must be between 6 and 72", ErrValidation)
	}
	if strings.TrimSpace(s.OutputPath) == "" {
		return fmt.Errorf("%w: output path is required", ErrValidation)
	}
	return nil
}

func modelAllowed(model string) bool {
	for _, m := range allowedModels {
		if m == model {
			return true
		}
	}
	return false
}
