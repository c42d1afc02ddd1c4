package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/desertthunder/tunedl/internal/shared"
	tu "github.com/desertthunder/tunedl/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			input := strings.NewReader("")
			spotify := &tu.MockCatalog{}
			youtube := &tu.MockCatalog{}

			runner, err := NewRunner(RunnerOpts{
				Config:  config,
				Logger:  logger,
				Output:  output,
				Input:   input,
				Spotify: spotify,
				YouTube: youtube,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.input != input {
				t.Error("expected input to be set")
			}
			if runner.spotify != spotify {
				t.Error("expected spotify to be set")
			}
			if runner.youtube != youtube {
				t.Error("expected youtube to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be built")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner, err := NewRunner(RunnerOpts{Config: nil})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner, err := NewRunner(RunnerOpts{Output: nil})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil input uses stdin", func(t *testing.T) {
			runner, err := NewRunner(RunnerOpts{Input: nil})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if runner.input != os.Stdin {
				t.Error("expected input to default to os.Stdin")
			}
		})

		t.Run("with invalid resolution order fails", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Downloads.ResolutionOrder = []string{"bogus"}

			if _, err := NewRunner(RunnerOpts{Config: config}); err == nil {
				t.Error("expected error for unknown resolution step")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner, err := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		commands := runner.register()
		if len(commands) != 6 {
			t.Errorf("expected 6 commands, got %d", len(commands))
		}

		names := map[string]bool{}
		for _, command := range commands {
			names[command.Name] = true
		}
		for _, want := range []string{"setup", "auth", "spotify", "download", "cache", "tui"} {
			if !names[want] {
				t.Errorf("expected command %q to be registered", want)
			}
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes compact JSON", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner, _ := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := output.String(); got != "{\"key\":\"value\"}\n" {
				t.Errorf("unexpected output: %q", got)
			}
		})

		t.Run("writes indented JSON when pretty", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner, _ := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(output.String(), "  \"key\": \"value\"") {
				t.Errorf("expected indented output, got %q", output.String())
			}
		})

		t.Run("propagates writer failure", func(t *testing.T) {
			runner, _ := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writeJSON("data", false); err == nil {
				t.Error("expected error from failing writer")
			}
		})

		t.Run("fails when only the newline write fails", func(t *testing.T) {
			limited := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner, _ := NewRunner(RunnerOpts{Output: &limited})

			if err := runner.writeJSON("data", false); err == nil {
				t.Error("expected error from exhausted writer")
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner, _ := NewRunner(RunnerOpts{Output: output})

		if err := runner.writePlain("hello %s\n", "world"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.String() != "hello world\n" {
			t.Errorf("unexpected output: %q", output.String())
		}

		failing, _ := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
		if err := failing.writePlain("hello"); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("confirmLargeRun", func(t *testing.T) {
		cases := []struct {
			name  string
			input string
			want  bool
		}{
			{"accepts y", "y\n", true},
			{"accepts yes with whitespace", "  YES  \n", true},
			{"rejects n", "n\n", false},
			{"rejects empty line", "\n", false},
			{"rejects closed input", "", false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				runner, _ := NewRunner(RunnerOpts{
					Output: &bytes.Buffer{},
					Input:  strings.NewReader(tc.input),
				})

				confirmed, err := runner.confirmLargeRun(1500)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if confirmed != tc.want {
					t.Errorf("input %q: expected %v, got %v", tc.input, tc.want, confirmed)
				}
			})
		}
	})

	t.Run("tokenPath", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Credentials.Spotify.TokenPath = ""
		runner, _ := NewRunner(RunnerOpts{Config: config, Output: &bytes.Buffer{}})
		if runner.tokenPath() != "spotify_token.json" {
			t.Errorf("expected default token path, got %q", runner.tokenPath())
		}

		config.Credentials.Spotify.TokenPath = "/tmp/token.json"
		if runner.tokenPath() != "/tmp/token.json" {
			t.Errorf("expected configured token path, got %q", runner.tokenPath())
		}
	})
}
