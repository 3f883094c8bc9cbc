package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tinytelemetry/marquee/internal/logging"
	"github.com/tinytelemetry/marquee/internal/socketrpc"
	"github.com/tinytelemetry/marquee/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath  string
		socketPath  string
		showVersion bool
	)

	root := &cobra.Command{
		Use:           "marquee-tui",
		Short:         "Terminal testimonial carousel",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Marquee TUI - Carousel Client\n")
				fmt.Fprintf(out, "  Version:    %s\n", version)
				fmt.Fprintf(out, "  Commit:     %s\n", commit)
				fmt.Fprintf(out, "  Built:      %s\n", buildTime)
				fmt.Fprintf(out, "  Go version: %s\n", goVersion)
				return nil
			}

			cfg, err := loadCLIConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if socketPath != "" {
				cfg.SocketPath = socketPath
			}
			return runTUI(cfg)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "config file (default is $HOME/.config/marquee/config.yml)")
	root.Flags().StringVar(&socketPath, "socket", "", "override socket path to connect to the marquee service")
	root.Flags().BoolVar(&showVersion, "version", false, "print version information")
	return root
}

func runTUI(cfg cliConfig) error {
	log, closeLog := logging.Open("marquee-tui", cfg.Debug)
	defer closeLog()

	client, err := socketrpc.Dial(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("cannot connect to marquee service at %s: %w\nIs the marquee service running? Start it with: marquee", cfg.SocketPath, err)
	}
	defer client.Close()

	page := tui.NewCarouselPage(tui.CarouselOptions{
		Store:          client,
		Autoplay:       cfg.Autoplay,
		Loop:           cfg.LoopTrack,
		UpdateInterval: cfg.UpdateInterval,
		Logger:         log,
	})
	app := tui.NewApp(page)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
