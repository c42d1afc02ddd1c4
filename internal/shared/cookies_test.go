package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseCookieInput(t *testing.T) {
	t.Run("bare cookie header", func(t *testing.T) {
		cookie, err := ParseCookieInput([]byte("SID=abc123; HSID=def456"))
		if err != nil {
			t.Fatalf("ParseCookieInput() error = %v", err)
		}
		if cookie.Value != "SID=abc123; HSID=def456" {
			t.Errorf("cookie value = %q", cookie.Value)
		}
	})

	t.Run("cookie header line with prefix", func(t *testing.T) {
		cookie, err := ParseCookieInput([]byte("cookie: SID=Abc123"))
		if err != nil {
			t.Fatalf("ParseCookieInput() error = %v", err)
		}
		if cookie.Value != "SID=Abc123" {
			t.Errorf("cookie value = %q, want casing preserved", cookie.Value)
		}
	})

	t.Run("curl command with -b flag", func(t *testing.T) {
		curl := `curl 'https://music.youtube.com/' -H 'accept: */*' -b 'SID=xyz; SSID=uvw'`
		cookie, err := ParseCookieInput([]byte(curl))
		if err != nil {
			t.Fatalf("ParseCookieInput() error = %v", err)
		}
		if cookie.Value != "SID=xyz; SSID=uvw" {
			t.Errorf("cookie value = %q", cookie.Value)
		}
	})

	t.Run("curl command with cookie header", func(t *testing.T) {
		curl := `curl 'https://music.youtube.com/' \
  -H 'accept: */*' \
  -H 'cookie: SID=fromheader'`
		cookie, err := ParseCookieInput([]byte(curl))
		if err != nil {
			t.Fatalf("ParseCookieInput() error = %v", err)
		}
		if cookie.Value != "SID=fromheader" {
			t.Errorf("cookie value = %q", cookie.Value)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if _, err := ParseCookieInput([]byte("   ")); err == nil {
			t.Error("expected error for empty input")
		}
	})

	t.Run("garbage input", func(t *testing.T) {
		if _, err := ParseCookieInput([]byte("not a cookie at all")); err == nil {
			t.Error("expected error for input without pairs")
		}
	})
}

func TestWriteNetscapeCookies(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cookies.txt")

	cookie := &SessionCookie{Value: "SID=abc; HSID=def; malformed"}
	if err := cookie.WriteNetscapeCookies(path); err != nil {
		t.Fatalf("WriteNetscapeCookies() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read cookie file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if lines[0] != "# Netscape HTTP Cookie File" {
		t.Errorf("missing Netscape header, got %q", lines[0])
	}

	// Two valid pairs, malformed segment skipped
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %v", len(lines), lines)
	}

	if !strings.Contains(lines[1], ".youtube.com\tTRUE\t/\tTRUE\t0\tSID\tabc") {
		t.Errorf("unexpected cookie line: %q", lines[1])
	}
}
