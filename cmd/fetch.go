package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ekysel/tracklist/internal/formatter"
	"github.com/ekysel/tracklist/internal/models"
	"github.com/ekysel/tracklist/internal/shared"
	"github.com/ekysel/tracklist/internal/ui"
	"github.com/ekysel/tracklist/internal/view"
	"github.com/urfave/cli/v3"
)

// Fetch aggregates a playlist and prints its track list, optionally sorted,
// filtered, or presented in the interactive TUI.
func (r *Runner) Fetch(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	playlistURL := cmd.StringArg("url")
	if playlistURL == "" {
		return fmt.Errorf("%w: playlist url argument is required", shared.ErrMissingArgument)
	}

	sortMode, err := view.ParseSortMode(cmd.String("sort"))
	if err != nil {
		return err
	}

	playlist, err := r.aggregator.Aggregate(ctx, playlistURL, cmd.String("token"))
	if err != nil {
		return err
	}

	if cmd.Bool("interactive") {
		return r.runTUI(playlist)
	}

	state := view.State{Sort: sortMode, Query: cmd.String("search")}
	viewed := &models.Playlist{Name: playlist.Name, Tracks: view.Apply(playlist.Tracks, state)}

	if cmd.Bool("json") {
		return r.writeJSON(viewed, cmd.Bool("pretty"))
	}

	return r.writePlain("%s", formatter.ExportToText(viewed))
}

// Export aggregates a playlist and writes the CSV export.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	r.loadConfig(cmd)

	playlistURL := cmd.StringArg("url")
	if playlistURL == "" {
		return fmt.Errorf("%w: playlist url argument is required", shared.ErrMissingArgument)
	}

	sortMode, err := view.ParseSortMode(cmd.String("sort"))
	if err != nil {
		return err
	}

	playlist, err := r.aggregator.Aggregate(ctx, playlistURL, cmd.String("token"))
	if err != nil {
		return err
	}

	state := view.State{Sort: sortMode, Query: cmd.String("search")}
	viewed := &models.Playlist{Name: playlist.Name, Tracks: view.Apply(playlist.Tracks, state)}

	path, err := formatter.WriteCSVExport(viewed, cmd.String("output"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Playlist exported to %s\n", path)
	r.writePlain("  Playlist: %s\n", viewed.Name)
	r.writePlain("  Tracks: %d\n", len(viewed.Tracks))

	return nil
}

// runTUI launches the interactive playlist browser.
func (r *Runner) runTUI(playlist *models.Playlist) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/tracklist-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(playlist)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
