package main

import (
	"log"

	"coverletter-gen/internal/bootstrap"
	"coverletter-gen/internal/server"
	"coverletter-gen/internal/shared/config"
	"coverletter-gen/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		if err := telemetry.SetLogFile(cfg.LogFile); err != nil {
			log.Fatalf("log file: %v", err)
		}
	}
	if err := config.EnsureEnvFile(config.EnvFile); err != nil {
		log.Printf("env file: %v", err)
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Cover letter shell on http://%s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
