package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunedl/internal/repositories"
	"github.com/desertthunder/tunedl/internal/services"
	"github.com/desertthunder/tunedl/internal/shared"
	"github.com/desertthunder/tunedl/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	spotify services.Catalog
	youtube services.Catalog
	cache   *repositories.ResolutionRepository
	engine  *tasks.ResolveEngine
	logger  *log.Logger
	output  io.Writer
	input   io.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Spotify    services.Catalog
	YouTube    services.Catalog
	Downloader tasks.Downloader
	Searcher   tasks.Searcher
	Cache      *repositories.ResolutionRepository
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) (*Runner, error) {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	var cache tasks.ResolutionCache
	if opts.Cache != nil {
		cache = opts.Cache
	}

	engine, err := tasks.NewResolveEngine(opts.Downloader, opts.Searcher, tasks.EngineOpts{
		Cache:      cache,
		Order:      opts.Config.Downloads.ResolutionOrder,
		SearchRate: opts.Config.Downloads.SearchRateLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build resolution engine: %w", err)
	}

	return &Runner{
		config:  opts.Config,
		spotify: opts.Spotify,
		youtube: opts.YouTube,
		cache:   opts.Cache,
		engine:  engine,
		logger:  opts.Logger,
		output:  opts.Output,
		input:   opts.Input,
	}, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, spotifyCommand, downloadCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// confirmLargeRun prompts before starting an unusually large run.
func (r *Runner) confirmLargeRun(count int) (bool, error) {
	r.writePlain("About to process %d tracks. Continue? [y/N]: ", count)

	line, err := bufio.NewReader(r.input).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func (r *Runner) tokenPath() string {
	if path := r.config.Credentials.Spotify.TokenPath; path != "" {
		return path
	}
	return "spotify_token.json"
}

func (r *Runner) cookiePath() string {
	if path := r.config.Credentials.YouTube.CookiePath; path != "" {
		return path
	}
	return "cookies.txt"
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
