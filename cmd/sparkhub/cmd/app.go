package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sparkhub/sparkhub-cli/internal/adapter/inbound/metrics"
	"github.com/sparkhub/sparkhub-cli/internal/adapter/outbound/history"
	"github.com/sparkhub/sparkhub-cli/internal/adapter/outbound/rest"
	"github.com/sparkhub/sparkhub-cli/internal/adapter/outbound/sparkhub"
	"github.com/sparkhub/sparkhub-cli/internal/adapter/outbound/state"
	"github.com/sparkhub/sparkhub-cli/internal/config"
	"github.com/sparkhub/sparkhub-cli/internal/domain/nav"
	"github.com/sparkhub/sparkhub-cli/internal/domain/session"
	"github.com/sparkhub/sparkhub-cli/internal/notify"
	"github.com/sparkhub/sparkhub-cli/internal/service"
)

// app is the assembled client: one shared pipeline, one session store, one
// navigator. Built once per invocation by newApp.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	notifier notify.Notifier
	sess     *session.Store
	state    *state.FileStore
	nav      *nav.Navigator
	pipeline *rest.Pipeline
	client   *sparkhub.Client

	auth          *service.AuthService
	profile       *service.ProfileService
	notifications *service.NotificationService

	hist       *history.Store
	metricsSrv *metrics.Server
}

// newApp loads config, restores the persisted session, and wires the
// pipeline with the session-invalidation hook.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(cfg)

	logger := newLogger(cfg)
	notifier := notify.NewTerminal(os.Stderr)

	statePath := cfg.Session.Path
	if statePath == "" {
		statePath = state.DefaultPath()
	}
	stateStore := state.NewFileStore(statePath, logger)

	snapshot, err := stateStore.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	sess := session.Restore(snapshot, logger)
	navigator := nav.NewNavigator(sess, notifier, logger)

	a := &app{
		cfg:      cfg,
		logger:   logger,
		notifier: notifier,
		sess:     sess,
		state:    stateStore,
		nav:      navigator,
	}

	opts, err := a.pipelineOptions(cfg, logger)
	if err != nil {
		return nil, err
	}
	pipeline, err := rest.New(cfg.API.BaseURL, sess, notifier, logger, opts...)
	if err != nil {
		return nil, err
	}
	a.pipeline = pipeline
	a.client = sparkhub.NewClient(pipeline)

	a.auth = service.NewAuthService(a.client, sess, stateStore, logger)
	a.profile = service.NewProfileService(a.client, sess, stateStore, logger)
	a.notifications = service.NewNotificationService(a.client, sess, stateStore, logger)
	return a, nil
}

// pipelineOptions assembles the pipeline options from config: timeout,
// cache, metrics, history recording, and the 401 hook that clears the
// session and redirects to login.
func (a *app) pipelineOptions(cfg *config.Config, logger *slog.Logger) ([]rest.Option, error) {
	timeout, err := cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}
	cacheTTL, err := cfg.ReadCacheTTL()
	if err != nil {
		return nil, err
	}

	opts := []rest.Option{
		rest.WithTimeout(timeout),
		rest.WithReadCache(cacheTTL, 256),
		rest.WithSessionInvalidHook(func(ctx context.Context, message string) {
			a.sess.Logout()
			if err := a.state.Save(a.sess.Snapshot()); err != nil {
				logger.Warn("session file not cleared", "error", err)
			}
			to := a.nav.ForceLogin()
			logger.Debug("session invalidated", "redirect", to)
		}),
	}

	if cfg.History.Enabled {
		histPath := cfg.History.Path
		if histPath == "" {
			histPath = history.DefaultPath()
		}
		hist, err := history.New(histPath)
		if err != nil {
			return nil, err
		}
		a.hist = hist
		opts = append(opts, rest.WithCallRecorder(hist))
	}

	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, rest.WithMetrics(rest.NewMetrics(reg)))
		a.metricsSrv = metrics.NewServer(cfg.Metrics.Addr, reg, logger)
		if err := a.metricsSrv.Start(); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

// close releases everything newApp opened.
func (a *app) close() {
	if a.metricsSrv != nil {
		if err := a.metricsSrv.Shutdown(context.Background()); err != nil {
			a.logger.Warn("metrics shutdown failed", "error", err)
		}
	}
	if a.hist != nil {
		if retention, err := a.cfg.HistoryRetention(); err == nil {
			_, _ = a.hist.Prune(context.Background(), retention)
		}
		if err := a.hist.Close(); err != nil {
			a.logger.Warn("history close failed", "error", err)
		}
	}
}

// visit runs the route guard for the view backing a command. A denial has
// already been surfaced as a notification; the returned error only stops
// the command and sets the exit code.
func (a *app) visit(path string) error {
	_, err := a.nav.Navigate(path)
	return err
}

func applyFlagOverrides(cfg *config.Config) {
	if sessionPath != "" {
		cfg.Session.Path = sessionPath
	}
	if outputFlag != "" {
		cfg.Output = outputFlag
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// runApp wraps a command body with app construction and teardown.
func runApp(fn func(a *app) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}
