package settings_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"coverletter-gen/internal/bootstrap"
	"coverletter-gen/internal/shared/config"
)

func newApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:              "0",
		Env:               "dev",
		DataDir:           t.TempDir(),
		OutputDir:         t.TempDir(),
		LetterModel:       "gpt-5.1",
		FilenameModel:     "gpt-5.1",
		MaxTokens:         1200,
		FilenameMaxTokens: 60,
		Temperature:       0.3,
		TopP:              0.95,
		FontName:          "Helvetica",
		FontSize:          12,
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func TestSettingsGetDefaults(t *testing.T) {
	app := newApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if strings.Contains(resp.Body.String(), "apiKey") {
		t.Fatalf("settings response must not echo the api key: %s", resp.Body.String())
	}

	var got struct {
		CoverLetterModel string  `json:"cover_letter_model"`
		MaxTokens        int     `json:"max_tokens"`
		Temperature      float64 `json:"temperature"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.CoverLetterModel != "gpt-5.1" || got.MaxTokens != 1200 || got.Temperature != 0.3 {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func putSettings(t *testing.T, app *bootstrap.App, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func validPayload(app *bootstrap.App) map[string]any {
	return map[string]any{
		"cover_letter_model":  "gpt-5-mini",
		"filename_model":      "gpt-5-mini",
		"max_tokens":          900,
		"filename_max_tokens": 60,
		"temperature":         0.5,
		"top_p":               0.9,
		"font_name":           "Times",
		"font_size":           11,
		"output_path":         app.Config.OutputDir,
	}
}

func TestSettingsUpdatePersists(t *testing.T) {
	app := newApp(t)

	resp := putSettings(t, app, validPayload(app))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	saved := app.State.Settings()
	if saved.CoverLetterModel != "gpt-5-mini" || saved.MaxTokens != 900 || saved.FontName != "Times" {
		t.Fatalf("settings not persisted: %+v", saved)
	}
}

func TestSettingsUpdateRejectsUnknownModel(t *testing.T) {
	app := newApp(t)

	payload := validPayload(app)
	payload["cover_letter_model"] = "gpt-2"

	resp := putSettings(t, app, payload)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	if app.State.Settings().CoverLetterModel != "gpt-5.1" {
		t.Fatalf("rejected update must leave settings untouched")
	}
}

func TestSettingsUpdateStoresAPIKey(t *testing.T) {
	app := newApp(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	app.SettingsService.EnvFile = envFile

	payload := validPayload(app)
	payload["apiKey"] = "sk-test-123"

	resp := putSettings(t, app, payload)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	data, err := os.ReadFile(envFile)
	if err != nil {
		t.Fatalf("read env file: %v", err)
	}
	if !strings.Contains(string(data), "OPENAI_API_KEY=sk-test-123") {
		t.Fatalf("env file missing stored key: %s", data)
	}
}
