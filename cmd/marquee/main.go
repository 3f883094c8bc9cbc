package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tinytelemetry/marquee/internal/duckdb"
	"github.com/tinytelemetry/marquee/internal/seed"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
	)

	root := &cobra.Command{
		Use:           "marquee",
		Short:         "Testimonial carousel service",
		Long:          "marquee stores testimonials and hosts autoplay sessions for embedded carousel widgets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath, debug)
			if err != nil {
				return reportErr(fmt.Errorf("loading config: %w", err))
			}
			return reportErr(runServer(cfg))
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $HOME/.config/marquee/config.yml)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Marquee - Testimonial Carousel Service\n")
			fmt.Fprintf(out, "  Version:    %s\n", version)
			fmt.Fprintf(out, "  Commit:     %s\n", commit)
			fmt.Fprintf(out, "  Built:      %s\n", buildTime)
			fmt.Fprintf(out, "  Go version: %s\n", goVersion)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "seed FILE",
		Short: "Load testimonials from a YAML file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, debug)
			if err != nil {
				return reportErr(fmt.Errorf("loading config: %w", err))
			}
			n, err := runSeed(cmd.Context(), cfg, args[0])
			if err != nil {
				return reportErr(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d testimonials into %s\n", n, shortenPath(cfg.DBPath))
			return nil
		},
	})

	return root
}

func runSeed(ctx context.Context, cfg appConfig, path string) (int, error) {
	f, err := seed.LoadFile(path)
	if err != nil {
		return 0, err
	}
	store, err := duckdb.NewStore(ctx, cfg.DBPath, zerolog.Nop(), cfg.QueryTimeout)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize DuckDB: %w", err)
	}
	defer store.Close()
	return seed.Apply(ctx, store, f)
}

func reportErr(err error) error {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
