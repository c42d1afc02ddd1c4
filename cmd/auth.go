package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/desertthunder/tunedl/internal/server"
	"github.com/desertthunder/tunedl/internal/services"
	"github.com/desertthunder/tunedl/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthSpotify runs the OAuth2 authorization code flow against Spotify and
// saves the resulting token for later commands.
func (r *Runner) AuthSpotify(ctx context.Context, cmd *cli.Command) error {
	oauthSvc, ok := r.spotify.(services.OAuthCatalog)
	if !ok {
		return fmt.Errorf("%w: Spotify service not initialized (check credentials in config.toml)", shared.ErrMissingCredentials)
	}

	token, err := r.doOAuth(ctx, oauthSvc)
	if err != nil {
		return err
	}

	oauthSvc.SetToken(ctx, token)

	tokenPath := r.tokenPath()
	if err := services.SaveTokenFile(tokenPath, token); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Token saved to %s\n", tokenPath)
	return nil
}

// AuthStatus reports which catalog credentials are present on disk.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.writePlainHeader("Authentication Status")

	tokenPath := r.tokenPath()
	if token, err := services.LoadTokenFile(tokenPath); err != nil {
		r.writePlain("Spotify: ✗ no token at %s (run `tunedl auth spotify`)\n", tokenPath)
	} else if token.Expiry.IsZero() || token.Expiry.After(time.Now()) {
		r.writePlain("Spotify: ✓ token at %s\n", tokenPath)
	} else {
		r.writePlain("Spotify: ~ expired token at %s (refreshes on next use)\n", tokenPath)
	}

	cookiePath := r.cookiePath()
	if _, err := os.Stat(cookiePath); err == nil {
		r.writePlain("YouTube Music: ✓ cookie file at %s\n", cookiePath)
	} else {
		r.writePlain("YouTube Music: ✗ no cookie file at %s (run `tunedl setup youtube`)\n", cookiePath)
	}

	return nil
}

// ensureSpotifyAuth loads the stored token into the Spotify service.
func (r *Runner) ensureSpotifyAuth(ctx context.Context) error {
	oauthSvc, ok := r.spotify.(services.OAuthCatalog)
	if !ok {
		return nil
	}

	token, err := services.LoadTokenFile(r.tokenPath())
	if err != nil {
		return fmt.Errorf("%w: run `tunedl auth spotify` first", shared.ErrNotAuthenticated)
	}

	oauthSvc.SetToken(ctx, token)
	return nil
}

// doOAuth drives the browser-based authorization flow: start the loopback
// callback server, open the consent page, then wait for the exchange to
// settle or time out.
func (r *Runner) doOAuth(ctx context.Context, svc services.OAuthCatalog) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, err
	}

	oauthConfig := svc.OAuthConfig()
	addr, err := callbackAddr(oauthConfig.RedirectURL)
	if err != nil {
		return nil, err
	}

	handler := server.NewOAuthHandler(oauthConfig, state)
	callbackServer := server.NewCallbackServer(addr, handler)
	serverErrors := callbackServer.Start()

	authURL := svc.GetAuthURL(state)
	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser: %v", err)
		r.writePlain("Visit this URL to authorize:\n%s\n", authURL)
	}
	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult
	select {
	case result = <-handler.Result():
	case err := <-serverErrors:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization not completed within 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := callbackServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warnf("callback server shutdown: %v", err)
	}

	if result.Error() != nil {
		return nil, result.Error()
	}
	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	return result.Token, nil
}

// callbackAddr extracts the listen address from the configured redirect URI.
func callbackAddr(redirectURI string) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: invalid redirect URI %q", shared.ErrInvalidConfig, redirectURI)
	}
	return u.Host, nil
}
