package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/marquee/internal/backup"
	"github.com/tinytelemetry/marquee/internal/duckdb"
	"github.com/tinytelemetry/marquee/internal/httpserver"
	"github.com/tinytelemetry/marquee/internal/logging"
	"github.com/tinytelemetry/marquee/internal/metrics"
	"github.com/tinytelemetry/marquee/internal/session"
	"github.com/tinytelemetry/marquee/internal/socketrpc"
)

// runServer starts the testimonial store, the socket RPC server for the TUI
// and the HTTP API hosting widget sessions.
func runServer(cfg appConfig) error {
	log, cleanupLogger := logging.Open("marquee", cfg.Debug)
	defer cleanupLogger()

	store, err := duckdb.NewStore(context.Background(), cfg.DBPath, log, cfg.QueryTimeout)
	if err != nil {
		return fmt.Errorf("failed to initialize DuckDB: %w", err)
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sessions := session.NewManager(cfg.Autoplay, store,
		session.WithObserver(metrics.NewAutoplay(reg)),
		session.WithLogger(log),
		session.WithLoopingTracks(cfg.LoopTrack),
	)

	if cfg.APIEnabled {
		apiServer := httpserver.NewServer(cfg.APIAddr, httpserver.Deps{
			Store:       store,
			Sessions:    sessions,
			Gatherer:    reg,
			HTTPMetrics: metrics.NewHTTP(reg),
			Logger:      log,
		})
		if err := apiServer.Start(); err != nil {
			return fmt.Errorf("failed to start API server: %w", err)
		}
		defer apiServer.Stop()
	}

	// Socket RPC feeds the terminal presenter.
	sockServer := socketrpc.NewServer(cfg.SocketPath, store, log)
	if err := sockServer.Start(); err != nil {
		log.Warn().Err(err).Msg("failed to start socket server")
	} else {
		defer sockServer.Stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down gracefully... (press Ctrl+C again to force)")
		cancel()

		// Shutdown deadline starts now, not at boot.
		deadline := time.NewTimer(10 * time.Second)
		defer deadline.Stop()

		select {
		case <-sigCh:
			fmt.Println("\nForce shutdown.")
		case <-deadline.C:
			fmt.Println("Shutdown timed out, forcing exit.")
		}
		cleanupSocket(cfg.SocketPath)
		os.Exit(1)
	}()

	count, err := store.Count(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("count testimonials")
	}
	printStartupBanner(cfg, count)
	log.Info().Int("testimonials", count).Str("db", cfg.DBPath).Msg("marquee started")

	g, gctx := errgroup.WithContext(ctx)

	backups, err := backup.New(store, cfg.Backup, log)
	switch {
	case err == nil:
		g.Go(func() error { return backups.Run(gctx) })
	case !errors.Is(err, backup.ErrDisabled):
		log.Warn().Err(err).Msg("backups not started")
	}

	// Session teardown runs once the service is asked to stop.
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		sessions.CloseAll(shutdownCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server: errgroup exited with error")
	}

	signal.Stop(sigCh)
	log.Info().Msg("marquee stopped")
	return nil
}

func cleanupSocket(path string) {
	if path != "" {
		os.Remove(path)
	}
}

func printStartupBanner(cfg appConfig, testimonials int) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	logo := cyan.Bold(true).Render(`
    ╔╦╗╔═╗╦═╗╔═╗ ╦ ╦╔═╗╔═╗
    ║║║╠═╣╠╦╝║═╬╗║ ║║╣ ║╣
    ╩ ╩╩ ╩╩╚═╚═╝╚╚═╝╚═╝╚═╝`)

	lines := []string{"", logo, "    " + dim.Render("v"+version), ""}
	separator := dim.Render("    ─────────────────────────────────")
	lines = append(lines, separator, "")

	lines = append(lines, bold.Render("    Gateway"), "")
	if cfg.APIEnabled {
		lines = append(lines, fmt.Sprintf("    %s  HTTP API       %s", check, cyan.Render(cfg.APIAddr)))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  HTTP API       %s", dot, dim.Render("disabled")))
	}
	lines = append(lines, fmt.Sprintf("    %s  Unix Socket    %s", check, cyan.Render(shortenPath(cfg.SocketPath))), "")

	lines = append(lines, bold.Render("    Storage"), "")
	lines = append(lines, fmt.Sprintf("    %s  Storage        %s", check, dim.Render(shortenPath(cfg.DBPath))))
	lines = append(lines, fmt.Sprintf("    %s  Testimonials   %s", check, dim.Render(fmt.Sprint(testimonials))))
	if cfg.Backup.Enabled {
		lines = append(lines, fmt.Sprintf("    %s  Backups        %s", check, dim.Render(fmt.Sprintf("%s every %s", shortenPath(cfg.Backup.Dir), cfg.Backup.Interval))), "")
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Backups        %s", dot, dim.Render("disabled")), "")
	}

	lines = append(lines, bold.Render("    Autoplay"), "")
	if cfg.Autoplay.Enabled {
		lines = append(lines, fmt.Sprintf("    %s  Interval       %s", check, dim.Render(cfg.Autoplay.Interval().String())))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Interval       %s", dot, dim.Render("disabled")))
	}
	lines = append(lines, fmt.Sprintf("    %s  Pause On       %s", check, dim.Render(pauseSummary(cfg))), "")

	lines = append(lines, bold.Render("    Config"), "")
	if cfg.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", check, dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", dot, dim.Render("default (no file)")))
	}

	lines = append(lines, "", separator, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"), "")

	fmt.Println(strings.Join(lines, "\n"))
}

func pauseSummary(cfg appConfig) string {
	var on []string
	if cfg.Autoplay.PauseOnHover {
		on = append(on, "hover")
	}
	if cfg.Autoplay.PauseOnFocus {
		on = append(on, "focus")
	}
	if cfg.Autoplay.StopOnInteraction {
		on = append(on, "interaction")
	}
	on = append(on, "hidden")
	return strings.Join(on, ", ")
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

