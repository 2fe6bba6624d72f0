package main

import (
	"context"
	"time"

	"github.com/ekysel/tracklist/internal/shared"
	"github.com/urfave/cli/v3"
)

// Auth runs the HTTP server and opens the browser at the login endpoint.
// After the Spotify redirect the tokens land in the URL fragment, ready to
// use with fetch --token.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	loginURL := "http://" + config.Server.Addr() + "/auth"

	go func() {
		time.Sleep(200 * time.Millisecond)

		r.writePlain("→ Opening browser for Spotify login...\n")
		if err := shared.OpenBrowser(loginURL); err != nil {
			r.logger.Warnf("failed to open browser automatically %v", err)
			r.writePlain("Open this URL in your browser:\n%s\n", loginURL)
		}
	}()

	return r.Serve(ctx, cmd)
}
