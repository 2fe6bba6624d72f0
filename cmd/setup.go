package main

import (
	"context"

	"github.com/ekysel/tracklist/internal/shared"
	"github.com/urfave/cli/v3"
)

// Init writes the starter configuration file.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.writePlain("✓ Config file created at %s\n", path)
	r.writePlain("Edit it to add your Spotify client credentials, or set\n")
	r.writePlain("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET in the environment.\n")

	return nil
}
