// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// fetchCommand aggregates a playlist and prints it.
func fetchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "fetch",
		Aliases: []string{"get"},
		Usage:   "Fetch a playlist's full track list",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "token",
				Usage: "User access token (skips the client credentials exchange)",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort order: default, artist, artist-desc, track, track-desc",
			},
			&cli.StringFlag{
				Name:  "search",
				Usage: "Filter tracks by a search query",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Browse the playlist in an interactive TUI",
			},
		},
		Action: r.Fetch,
	}
}

// exportCommand aggregates a playlist and writes a CSV export.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a playlist to CSV with lyric and video search links",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "token",
				Usage: "User access token (skips the client credentials exchange)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: <playlist-name>.csv)",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort order: default, artist, artist-desc, track, track-desc",
			},
			&cli.StringFlag{
				Name:  "search",
				Usage: "Filter tracks by a search query",
			},
		},
		Action: r.Export,
	}
}

// serveCommand runs the aggregation HTTP server.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the playlist aggregation HTTP server",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// authCommand runs the server and opens the browser for Spotify login.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Login with Spotify to fetch private playlists",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind to (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on (overrides config)",
			},
		},
		Action: r.Auth,
	}
}

// initCommand writes a starter configuration file.
func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a starter configuration file",
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: r.Init,
	}
}
