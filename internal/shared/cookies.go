// Utilities for turning browser session data into a yt-dlp cookie file.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// SessionCookie holds a raw Cookie header value captured from the browser.
type SessionCookie struct {
	Value string
}

// ParseCookieFile reads a file containing either a bare Cookie header value or
// a cURL command copied from browser DevTools and extracts the cookie.
func ParseCookieFile(path string) (*SessionCookie, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cookie file: %w", err)
	}

	return ParseCookieInput(content)
}

// ParseCookieInput extracts a Cookie header value from raw input.
//
// Accepts a bare "name=value; name2=value2" header, a "cookie: ..." header
// line, or a full cURL command (headers via -H, cookies via -b).
func ParseCookieInput(data []byte) (*SessionCookie, error) {
	input := strings.TrimSpace(string(data))
	if input == "" {
		return nil, fmt.Errorf("%w: empty cookie input", ErrInvalidInput)
	}

	if strings.HasPrefix(input, "curl") {
		cookie, err := cookieFromCurl(input)
		if err != nil {
			return nil, err
		}
		return &SessionCookie{Value: cookie}, nil
	}

	if strings.HasPrefix(strings.ToLower(input), "cookie:") {
		return &SessionCookie{Value: strings.TrimSpace(input[len("cookie:"):])}, nil
	}

	if !strings.Contains(input, "=") {
		return nil, fmt.Errorf("%w: input does not look like a cookie header", ErrInvalidInput)
	}

	return &SessionCookie{Value: input}, nil
}

// cookieFromCurl pulls the cookie out of a cURL command string.
func cookieFromCurl(curlCmd string) (string, error) {
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	cookieRegex := regexp.MustCompile(`-b\s+'([^']+)'|-b\s+"([^"]+)"`)
	if m := cookieRegex.FindStringSubmatch(curlCmd); len(m) > 1 {
		if m[1] != "" {
			return m[1], nil
		}
		return m[2], nil
	}

	headerRegex := regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)
	for _, m := range headerRegex.FindAllStringSubmatch(curlCmd, -1) {
		headerLine := m[1]
		if headerLine == "" {
			headerLine = m[2]
		}

		if strings.HasPrefix(strings.ToLower(headerLine), "cookie:") {
			parts := strings.SplitN(headerLine, ":", 2)
			if len(parts) == 2 {
				return strings.TrimSpace(parts[1]), nil
			}
		}
	}

	return "", fmt.Errorf("%w: no cookie found in curl command", ErrInvalidInput)
}

// WriteNetscapeCookies writes the cookie pairs as a Netscape-format cookie
// file scoped to .youtube.com, the format yt-dlp expects for --cookies.
func (c *SessionCookie) WriteNetscapeCookies(path string) error {
	var b strings.Builder
	b.WriteString("# Netscape HTTP Cookie File\n")

	for _, pair := range strings.Split(c.Value, "; ") {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		fmt.Fprintf(&b, ".youtube.com\tTRUE\t/\tTRUE\t0\t%s\t%s\n", name, value)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write cookie file: %w", err)
	}

	return nil
}
