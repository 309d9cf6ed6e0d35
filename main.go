package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nomis52/timetrack/backup"
	"github.com/nomis52/timetrack/config"
	"github.com/nomis52/timetrack/ledger"
	"github.com/nomis52/timetrack/logging"
	"github.com/nomis52/timetrack/metrics"
	"github.com/nomis52/timetrack/report"
	"github.com/nomis52/timetrack/server"
	"github.com/nomis52/timetrack/syncclient"
	"github.com/nomis52/timetrack/tui"
)

const jobName = "timetrack"

func main() {
	rootCmd := &cobra.Command{
		Use:   "timetrack",
		Short: "Single-user time tracker with a flat-file ledger",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(pullCmd())
	rootCmd.AddCommand(pushCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadApp loads the config and builds the logger every command shares.
func loadApp(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return &cfg, logger.Logger, nil
}

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the password-gated ledger sync service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadApp(configPath)
			if err != nil {
				return err
			}
			if err := cfg.ValidateServer(); err != nil {
				return err
			}

			store := ledger.NewFileStore(cfg.Ledger.Path, logger)
			auth := server.NewAuth(cfg.Server.Password, cfg.Server.PasswordHash)

			srv, err := server.New(cfg.Server.Port, store, auth, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cfg.Backup.Dir != "" {
				snapshotter := backup.NewSnapshotter(cfg.Backup.Dir, cfg.Backup.Keep, store, logger)
				trigger, err := backup.NewCronTrigger(cfg.Backup.Schedule, snapshotter, logger)
				if err != nil {
					return err
				}
				logger.Info("backup schedule active",
					"schedule", cfg.Backup.Schedule,
					"next_run", trigger.NextRun(),
				)
				trigger.Start(ctx)
			}

			if cfg.Monitoring.VictoriaMetricsURL != "" {
				pushStartupMetrics(ctx, cfg, store, logger)
			}

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.MarkFlagRequired("config")
	return cmd
}

// pushStartupMetrics reports service startup plus the per-activity
// tracked totals to the remote write endpoint. Failures are logged, not
// fatal; tracking works without monitoring.
func pushStartupMetrics(ctx context.Context, cfg *config.Config, store *ledger.FileStore, logger *slog.Logger) {
	hostname, err := os.Hostname()
	if err != nil {
		logger.Warn("could not determine hostname", "error", err)
		hostname = "unknown"
	}

	client := metrics.NewClient(
		cfg.Monitoring.VictoriaMetricsURL,
		metrics.WithPrefix(cfg.Monitoring.MetricsPrefix),
		metrics.WithJob(jobName),
		metrics.WithInstance(hostname),
	)

	now := time.Now()
	ms := []metrics.Metric{{
		Name:      "wake",
		Value:     1,
		Timestamp: now,
	}}

	for activity, total := range trackedSeconds(store, logger) {
		ms = append(ms, metrics.Metric{
			Name:      "tracked_seconds",
			Value:     total,
			Timestamp: now,
			Labels:    map[string]string{"activity": activity},
		})
	}

	if err := client.PushMetrics(ctx, ms...); err != nil {
		logger.Warn("pushing startup metrics failed", "error", err)
		return
	}
	logger.Info("startup metrics pushed",
		"count", len(ms),
		"url", cfg.Monitoring.VictoriaMetricsURL,
	)
}

// trackedSeconds sums finalized ledger time per activity.
func trackedSeconds(store *ledger.FileStore, logger *slog.Logger) map[string]float64 {
	data, exists, err := store.Raw()
	if err != nil || !exists {
		if err != nil {
			logger.Warn("could not read ledger for metrics", "error", err)
		}
		return nil
	}

	rows, err := ledger.Rows([]byte(data))
	if err != nil {
		logger.Warn("could not parse ledger for metrics", "error", err)
		return nil
	}

	totals := make(map[string]float64, len(rows))
	for _, row := range rows {
		totals[row.Activity] += row.Duration().Seconds()
	}
	return totals
}

func tuiCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive tracker screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := quietLogger()
			store := ledger.NewFileStore(file, logger)
			return tui.Run(store)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "activities.csv", "Path to the ledger CSV file")
	return cmd
}

func reportCmd() *cobra.Command {
	var (
		file   string
		window string
		detail bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print per-activity totals for a time window",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := report.ParseWindow(window)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(file)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Println("No ledger found.")
					return nil
				}
				return err
			}

			rows, err := ledger.Rows(data)
			if err != nil {
				return err
			}

			if detail {
				fmt.Print(report.Detail(rows))
				return nil
			}

			entries := report.Aggregate(rows, w, time.Now())
			if len(entries) == 0 {
				fmt.Printf("No activity this %s.\n", w)
				return nil
			}
			for _, entry := range entries {
				fmt.Printf("%-20s %s\n", entry.Activity, entry.TotalString())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "activities.csv", "Path to the ledger CSV file")
	cmd.Flags().StringVarP(&window, "window", "w", "week", "Report window: week|month|year")
	cmd.Flags().BoolVarP(&detail, "detail", "d", false, "List every instance instead of totals")
	return cmd
}

func pullCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Replace the local ledger with the peer's copy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadApp(configPath)
			if err != nil {
				return err
			}
			client, err := peerClient(cfg)
			if err != nil {
				return err
			}

			data, err := client.Pull(cmd.Context())
			if err != nil {
				return err
			}

			store := ledger.NewFileStore(cfg.Ledger.Path, logger)
			if err := store.Overwrite(data); err != nil {
				return err
			}
			logger.Info("pulled ledger from peer",
				"peer", cfg.Sync.PeerURL,
				"bytes", len(data),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.MarkFlagRequired("config")
	return cmd
}

func pushCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Replace the peer's ledger with the local copy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadApp(configPath)
			if err != nil {
				return err
			}
			client, err := peerClient(cfg)
			if err != nil {
				return err
			}

			store := ledger.NewFileStore(cfg.Ledger.Path, logger)
			data, exists, err := store.Raw()
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("no local ledger at %s", cfg.Ledger.Path)
			}

			if err := client.Push(cmd.Context(), data); err != nil {
				return err
			}
			logger.Info("pushed ledger to peer",
				"peer", cfg.Sync.PeerURL,
				"bytes", len(data),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.MarkFlagRequired("config")
	return cmd
}

func peerClient(cfg *config.Config) (*syncclient.Client, error) {
	if cfg.Sync.PeerURL == "" {
		return nil, fmt.Errorf("sync.peer_url is not configured")
	}
	return syncclient.New(
		cfg.Sync.PeerURL,
		cfg.Server.Password,
		syncclient.WithTimeout(cfg.Sync.Timeout),
	), nil
}

// quietLogger keeps log output off the interactive screen.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}
