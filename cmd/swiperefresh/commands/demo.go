package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/zoobzio/capitan"

	"github.com/agiangrant/swiperefresh"
	"github.com/agiangrant/swiperefresh/termui"
)

// NewDemoCmd runs the interactive terminal demo.
func NewDemoCmd() *cobra.Command {
	var (
		watch    bool
		logPath  string
		loadTime time.Duration
		rows     int
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Pull to refresh a feed in the terminal",
		Long: `Show a scrolling feed hosted in a pull-to-refresh layout.

Drag down with the left mouse button, or scroll the wheel up while the feed
is at its top, to pull the indicator. Release past the trigger distance to
load more items.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if watch && path == "" {
				return fmt.Errorf("--watch needs --config")
			}

			logger := log.New(io.Discard, "", 0)
			if logPath != "" {
				f, err := tea.LogToFile(logPath, "swiperefresh: ")
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				logger = log.Default()
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			defer capitan.Shutdown()

			opts := termui.Options{
				Config:       cfg,
				Logger:       logger,
				PixelsPerRow: rows,
				LoadTime:     loadTime,
			}
			return termui.Run(opts, func(p *tea.Program) {
				hookStatus(p)
				if watch {
					err := swiperefresh.WatchConfig(ctx, path, func(cfg swiperefresh.Config, err error) {
						p.Send(termui.ConfigMsg{Config: cfg, Err: err})
					})
					if err != nil {
						logger.Printf("config watch disabled: %v", err)
					}
				}
			})
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Reload --config when the file changes")
	cmd.Flags().StringVar(&logPath, "log", "", "Write diagnostics to this file")
	cmd.Flags().DurationVar(&loadTime, "load", termui.DefaultLoadTime, "Simulated load duration")
	cmd.Flags().IntVar(&rows, "pixels-per-row", termui.DefaultPixelsPerRow, "Layout pixels per terminal row")
	return cmd
}

// hookStatus mirrors lifecycle signals on the demo's status line. Listeners
// may fire from inside Update, so sends run on their own goroutine.
func hookStatus(p *tea.Program) {
	send := func(msg tea.Msg) { go p.Send(msg) }

	capitan.Hook(swiperefresh.RefreshTriggered, func(_ context.Context, e *capitan.Event) {
		source, _ := swiperefresh.KeySource.From(e)
		send(termui.StatusMsg("triggered by " + source))
	})
	capitan.Hook(swiperefresh.RefreshSettled, func(_ context.Context, e *capitan.Event) {
		offset, _ := swiperefresh.KeyOffset.From(e)
		send(termui.StatusMsg(fmt.Sprintf("settled at %dpx", offset)))
	})
	capitan.Hook(swiperefresh.RefreshStopped, func(_ context.Context, e *capitan.Event) {
		source, _ := swiperefresh.KeySource.From(e)
		send(termui.StatusMsg("stopped by " + source))
	})
	capitan.Hook(swiperefresh.GestureRejected, func(_ context.Context, e *capitan.Event) {
		reason, _ := swiperefresh.KeyReason.From(e)
		send(termui.StatusMsg("rejected: " + reason))
	})
}
