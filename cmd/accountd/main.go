package main

import (
	_ "embed"
	"os"
	"strings"

	"accountd/pkg/account"
	"accountd/pkg/config"
	"accountd/pkg/log"
	"accountd/pkg/server"
	"accountd/pkg/uploads"
)

//go:embed VERSION
var Version string

func main() {
	// Initialize logger first
	_ = log.Logger

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Debug {
		log.SetDebugMode()
	}

	accounts, err := account.NewStore(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("database", cfg.DatabasePath).Msg("Failed to open account store")
	}
	defer func() { _ = accounts.Close() }()

	files, err := uploads.NewStore(cfg.UploadsDir)
	if err != nil {
		log.Fatal().Err(err).Str("uploads_dir", cfg.UploadsDir).Msg("Failed to create uploads directory")
	}

	srv := server.NewServer(cfg, accounts, files, strings.TrimSpace(Version))
	if err := srv.Start(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}

	os.Exit(0)
}
