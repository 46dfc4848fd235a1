package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"coverletter-gen/internal/documents"
	"coverletter-gen/internal/letters"
	"coverletter-gen/internal/services/health"
	"coverletter-gen/internal/settings"
	"coverletter-gen/internal/shared/server/middleware"
)

// RouterDeps carries the handlers wired into the engine.
type RouterDeps struct {
	DocumentsHandler *documents.Handler
	LettersHandler   *letters.Handler
	SettingsHandler  *settings.Handler
	Health           *health.Service
}

// NewEngine builds the gin engine with routes registered.
func NewEngine(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Logging(), middleware.Recovery())

	registerRoutes(engine, deps)
	return engine
}

// Addr returns a normalized listen address for the given port. The shell
// binds loopback only; this is a desktop utility, not a network service.
func Addr(port string) string {
	if port == "" {
		port = "8080"
	}
	if port[0] == ':' {
		port = port[1:]
	}
	return fmt.Sprintf("127.0.0.1:%s", port)
}
