package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"news_reconciler/internal/config"
	"news_reconciler/internal/domain"
)

type rootOptions struct {
	configPath string
	logger     *slog.Logger
	cfg        *config.Config
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "reloader",
		Short:         "Reload subscribed feeds and reconcile them with the local store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			opts.cfg = cfg
			opts.logger = setupLogger(cfg.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "config.yaml", "path to config file")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newReloadCommand(opts))
	cmd.AddCommand(newFlushSyncCommand(opts))
	cmd.AddCommand(newSubscribeCommand(opts))

	return cmd
}

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Reload all subscriptions on the configured schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(opts.logger)
			defer cancel()

			a, err := newApp(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			opts.logger.Info("starting news reloader",
				"interval", opts.cfg.Reload.Interval,
				"schedule", opts.cfg.Reload.Schedule,
				"workers", opts.cfg.Reload.Workers,
				"sync", opts.cfg.Sync.Enabled,
			)

			if err := a.scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("scheduler: %w", err)
			}
			return nil
		},
	}
}

func newReloadCommand(opts *rootOptions) *cobra.Command {
	var retention bool

	cmd := &cobra.Command{
		Use:   "reload <feed-link>",
		Short: "Reload a single subscription once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(opts.logger)
			defer cancel()

			a, err := newApp(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			sub, err := a.subscription(ctx, args[0])
			if err != nil {
				return err
			}

			stats, err := a.reloads.Reload(ctx, sub, retention)
			if err != nil {
				return fmt.Errorf("reload %s: %w", sub.FeedLink, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: fetched=%d new=%d updated=%d deleted=%d not_modified=%t\n",
				stats.FeedLink, stats.Fetched, stats.New, stats.Updated, stats.Deleted, stats.NotModified)
			return nil
		},
	}

	cmd.Flags().BoolVar(&retention, "retention", true, "apply the retention policy")

	return cmd
}

func newFlushSyncCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "flush-sync",
		Short: "Send pending read, starred and label changes to the sync service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.cfg.Sync.Enabled {
				return errors.New("sync is not enabled")
			}

			ctx, cancel := signalContext(opts.logger)
			defer cancel()

			a, err := newApp(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			status, err := a.outbox.Flush(ctx)
			if err != nil {
				return fmt.Errorf("flush sync items: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d of %d sync items\n", status.Applied, status.Total)
			return nil
		},
	}
}

func newSubscribeCommand(opts *rootOptions) *cobra.Command {
	var (
		title string
		sync  bool
	)

	cmd := &cobra.Command{
		Use:   "subscribe <feed-link>",
		Short: "Subscribe to a feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(opts.logger)
			defer cancel()

			a, err := newApp(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			sub := domain.Subscription{FeedLink: args[0], Title: title, SyncEnabled: sync}
			if err := a.subscriptions.Subscribe(ctx, sub); err != nil {
				return err
			}
			opts.logger.Info("subscribed", "feed", sub.FeedLink, "sync", sub.SyncEnabled)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "subscription title")
	cmd.Flags().BoolVar(&sync, "sync", false, "reconcile the feed with the sync service")

	return cmd
}

func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
