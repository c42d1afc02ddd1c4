// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// pipelineFlags are shared by every command that runs the download pipeline.
func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Destination directory for audio files",
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "Concurrent download workers",
		},
		&cli.BoolFlag{
			Name:  "resolve-only",
			Usage: "Resolve locators without downloading audio",
		},
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Skip the large-run confirmation prompt",
		},
		&cli.StringFlag{
			Name:  "report",
			Usage: "Path for the JSON run report",
		},
		&cli.BoolFlag{
			Name:  "csv",
			Usage: "Also write the outcome table as CSV",
		},
	}
}

func sourceFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "source",
		Aliases: []string{"s"},
		Usage:   "Catalog to read from (spotify or youtube)",
		Value:   "spotify",
	}
}

// setupCommand handles first-run configuration
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create configuration and session files",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a starter config.toml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "youtube",
				Usage: "Store a YouTube Music session cookie for yt-dlp",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "cookie",
						Usage: "Cookie header value or curl command containing it",
					},
					&cli.StringFlag{
						Name:  "cookie-file",
						Usage: "Path to a file containing the cookie input",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the Netscape cookie file",
					},
				},
				Action: r.SetupYouTube,
			},
		},
	}
}

// authCommand handles authentication state
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with catalog services",
		Commands: []*cli.Command{
			{
				Name:   "spotify",
				Usage:  "Authenticate with Spotify using OAuth2",
				Action: r.AuthSpotify,
			},
			{
				Name:   "status",
				Usage:  "Show stored credentials for each catalog",
				Action: r.AuthStatus,
			},
		},
	}
}

// spotifyCommand handles Spotify catalog operations
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "playlists",
				Usage: "List Spotify playlists",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of playlists to return",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.SpotifyPlaylists,
			},
		},
	}
}

// downloadCommand runs the resolution and download pipeline
func downloadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "download",
		Aliases: []string{"dl"},
		Usage:   "Resolve and download tracks as audio files",
		Commands: []*cli.Command{
			{
				Name:   "liked",
				Usage:  "Download the liked/saved tracks of a catalog",
				Flags:  append(pipelineFlags(), sourceFlag()),
				Action: r.DownloadLiked,
			},
			{
				Name:  "playlist",
				Usage: "Download a playlist by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  append(pipelineFlags(), sourceFlag()),
				Action: r.DownloadPlaylist,
			},
			{
				Name:  "url",
				Usage: "Download from a Spotify or YouTube URL",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Flags:  pipelineFlags(),
				Action: r.DownloadURL,
			},
		},
	}
}

// cacheCommand inspects the resolution cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect the resolution cache",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show cached resolution count",
				Action: r.CacheStatus,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cached resolutions",
				Action: r.CacheClear,
			},
		},
	}
}

// tuiCommand launches the interactive playlist picker
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Interactively pick a Spotify playlist to download",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "resolve-only",
				Usage: "Resolve locators without downloading audio",
			},
		},
		Action: r.TUI,
	}
}
