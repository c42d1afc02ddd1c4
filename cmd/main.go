package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/tunedl/internal/repositories"
	"github.com/desertthunder/tunedl/internal/services"
	"github.com/desertthunder/tunedl/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warnf("ignoring unreadable config.toml: %v", err)
		}
	}

	if err := config.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	var spotifyService services.Catalog
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(map[string]string{
			"client_id":     config.Credentials.Spotify.ClientID,
			"client_secret": config.Credentials.Spotify.ClientSecret,
			"redirect_uri":  config.Credentials.Spotify.RedirectURI,
		}); err == nil {
			spotifyService = svc
		}
	}

	client := services.NewYTDLPClient(
		config.Credentials.YouTube.BinaryPath,
		config.Credentials.YouTube.CookiePath,
		nil,
	)
	youtubeService := services.NewYouTubeService(client)
	downloader := services.NewAudioDownloader(client, config.Downloads.AudioFormat, config.Downloads.AudioQuality)

	var cache *repositories.ResolutionRepository
	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if repo, err := repositories.NewResolutionRepository(db); err == nil {
			cache = repo
		} else {
			logger.Warnf("resolution cache disabled: %v", err)
		}
	} else {
		logger.Warnf("resolution cache disabled: %v", err)
	}

	runner, err := NewRunner(RunnerOpts{
		Config:     config,
		Spotify:    spotifyService,
		YouTube:    youtubeService,
		Downloader: downloader,
		Searcher:   youtubeService,
		Cache:      cache,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatalf("failed to initialize: %v", err)
	}

	app := &cli.Command{
		Name:     "tunedl",
		Usage:    "Download Spotify & YouTube Music libraries as audio files",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
