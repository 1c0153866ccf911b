package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/frudas24/convertible-couch/internal/app"
	"github.com/frudas24/convertible-couch/internal/config"
	"github.com/frudas24/convertible-couch/internal/fuzzing"
	"github.com/frudas24/convertible-couch/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// newRootCommand builds the topogen command tree.
func newRootCommand(cfg config.Config, logger *slog.Logger, levelVar *slog.LevelVar) *cobra.Command {
	logLevel := cfg.LogLevel

	root := &cobra.Command{
		Use:           "topogen",
		Short:         "Generate seeded synthetic display topologies for primary-monitor swap tests",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "Set log verbosity (debug, info, warning, error)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		if levelVar != nil {
			levelVar.Set(level)
		}
		return nil
	}

	root.AddCommand(
		newGenerateCommand(cfg, logger),
		newServeCommand(cfg, logger),
	)
	return root
}

// generateOptions holds the generate flags layered over the environment configuration.
type generateOptions struct {
	seed     uint64
	seedSet  bool
	batch    int
	monitors int
	profile  string
	format   string
}

// newGenerateCommand prints one or more topologies for consecutive seeds.
func newGenerateCommand(cfg config.Config, logger *slog.Logger) *cobra.Command {
	opts := generateOptions{
		seed:     cfg.Seed,
		batch:    cfg.Batch,
		monitors: -1,
		profile:  cfg.ProfilePath,
		format:   cfg.Format,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Args:  cobra.NoArgs,
		Short: "Print generated computers as YAML or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seedSet = cfg.SeedSet || cmd.Flags().Changed("seed")
			return runGenerate(cmd.OutOrStdout(), opts, logger.With("component", "generate"))
		},
	}
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "Seed of the first computer (random when unset)")
	cmd.Flags().IntVar(&opts.batch, "batch", opts.batch, "Number of computers, seeded consecutively")
	cmd.Flags().IntVar(&opts.monitors, "monitors", opts.monitors, "Exact monitor count, overriding the profile")
	cmd.Flags().StringVar(&opts.profile, "profile", opts.profile, "Path to a YAML profile")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "Output format (yaml, json)")
	return cmd
}

// runGenerate builds the requested computers and writes them to w.
func runGenerate(w io.Writer, opts generateOptions, logger *slog.Logger) error {
	format, err := config.NormalizeFormat(opts.format)
	if err != nil {
		return err
	}
	if opts.batch <= 0 {
		return fmt.Errorf("batch must be positive, got %d", opts.batch)
	}
	profile, err := loadProfile(opts.profile, opts.monitors)
	if err != nil {
		return err
	}
	seed := resolveSeed(opts.seed, opts.seedSet, logger)

	computers := make([]fuzzing.FuzzedComputer, 0, opts.batch)
	for i := 0; i < opts.batch; i++ {
		c, err := profile.Build(seed + uint64(i))
		if err != nil {
			return fmt.Errorf("seed %d: %w", seed+uint64(i), err)
		}
		logger.Debug("generated", "seed", c.Seed, "id", c.ID, "monitors", len(c.Monitors), "outputs", len(c.VideoOutputs))
		computers = append(computers, c)
	}
	return writeComputers(w, format, computers)
}

// loadProfile reads the profile file and applies the exact monitor override when non-negative.
func loadProfile(path string, monitors int) (config.Profile, error) {
	profile, err := config.LoadProfile(path)
	if err != nil {
		return config.Profile{}, err
	}
	if monitors >= 0 {
		profile.Monitors.Exact = &monitors
		profile.Monitors.Min, profile.Monitors.Max = nil, nil
	}
	if err := profile.Validate(); err != nil {
		return config.Profile{}, err
	}
	return profile, nil
}

// resolveSeed returns seed when set, otherwise a random seed that is logged for reproduction.
func resolveSeed(seed uint64, set bool, logger *slog.Logger) uint64 {
	if set {
		return seed
	}
	seed = rand.Uint64()
	logger.Info("no seed given, using a random one", "seed", seed)
	return seed
}

// writeComputers encodes computers as a YAML stream or, for JSON, an object or an array.
func writeComputers(w io.Writer, format string, computers []fuzzing.FuzzedComputer) error {
	if format == config.FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(computers) == 1 {
			return enc.Encode(computers[0])
		}
		return enc.Encode(computers)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, c := range computers {
		if err := enc.Encode(c); err != nil {
			return err
		}
	}
	return enc.Close()
}

// newServeCommand serves computers over HTTP and websocket until interrupted.
func newServeCommand(cfg config.Config, logger *slog.Logger) *cobra.Command {
	profilePath := cfg.ProfilePath
	listenAddr := cfg.ListenAddr

	cmd := &cobra.Command{
		Use:   "serve",
		Args:  cobra.NoArgs,
		Short: "Serve generated computers to remote swap harnesses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.ListenAddr = listenAddr
			profile, err := config.LoadProfile(profilePath)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, profile, logger.With("component", "serve"))
		},
	}
	cmd.Flags().StringVar(&profilePath, "profile", profilePath, "Path to a YAML profile")
	cmd.Flags().StringVar(&listenAddr, "listen", listenAddr, "Listen address")
	return cmd
}

// runServe wires the application and blocks until ctx is done.
func runServe(ctx context.Context, cfg config.Config, profile config.Profile, logger *slog.Logger) error {
	appInstance, err := app.New(cfg, profile, logger)
	if err != nil {
		return err
	}
	logStartup(cfg, logger)

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}

// logStartup reports the env file, default seed and listen address.
func logStartup(cfg config.Config, logger *slog.Logger) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	if fileExists(envPath) {
		logger.Info("env check: ok", "path", envPath)
	} else {
		logger.Info("env check: missing", "path", envPath)
	}
	logger.Info("default seed", "seed", cfg.Seed, "set", cfg.SeedSet)
	logListenStatus(cfg.ListenAddr, logger)
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(addr string, logger *slog.Logger) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		logger.Info("listening", "addr", addr)
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	logger.Info("listening", "addr", addr, "url", "http://"+net.JoinHostPort(host, port)+"/api/computer")
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
