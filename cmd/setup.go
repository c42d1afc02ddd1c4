package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/tunedl/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a starter configuration file.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.writePlain("✓ Created %s\n", configPath)
	r.writePlain("Edit it to add your Spotify credentials, then run `tunedl auth spotify`.\n")
	return nil
}

// SetupYouTube converts a pasted session cookie into the Netscape cookie file
// yt-dlp reads.
func (r *Runner) SetupYouTube(ctx context.Context, cmd *cli.Command) error {
	var cookie *shared.SessionCookie
	var err error

	switch {
	case cmd.String("cookie-file") != "":
		cookie, err = shared.ParseCookieFile(cmd.String("cookie-file"))
	case cmd.String("cookie") != "":
		cookie, err = shared.ParseCookieInput([]byte(cmd.String("cookie")))
	default:
		return fmt.Errorf("%w: provide --cookie or --cookie-file", shared.ErrMissingArgument)
	}
	if err != nil {
		return err
	}

	outputPath := cmd.String("output")
	if outputPath == "" {
		outputPath = r.cookiePath()
	}

	if err := cookie.WriteNetscapeCookies(outputPath); err != nil {
		return err
	}

	if info, statErr := os.Stat(outputPath); statErr == nil {
		r.logger.Debugf("wrote cookie file %s (%d bytes)", outputPath, info.Size())
	}

	r.writePlain("✓ Cookie file written to %s\n", outputPath)
	r.writePlain("YouTube Music commands will now use this session.\n")
	return nil
}
