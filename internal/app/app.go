package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/vogue/internal/api"
	"github.com/five82/vogue/internal/chat"
	"github.com/five82/vogue/internal/config"
	"github.com/five82/vogue/internal/logging"
	"github.com/five82/vogue/internal/session"
	"github.com/five82/vogue/internal/state"
	"github.com/five82/vogue/internal/ui"
)

// Options configure the vogue application.
type Options struct {
	ConfigPath string
	APIURL     string // overrides api_url when set
	Theme      string // overrides theme when set
}

// Run boots the storefront TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if url := strings.TrimSpace(opts.APIURL); url != "" {
		cfg.APIURL = url
	}
	if theme := strings.TrimSpace(opts.Theme); theme != "" {
		cfg.Theme = theme
	}

	logger, flush, err := logging.New(logging.Options{
		File:  cfg.LogFile,
		Level: cfg.LogLevel,
		Mode:  cfg.LogMode,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer flush()

	store, closeStorage, err := newStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	logger.Info("vogue starting",
		zap.String("api_url", cfg.APIURL),
		zap.String("session_backend", cfg.SessionBackend),
		zap.Bool("authenticated", store.Snapshot().Session.IsAuthenticated),
	)

	StartRefresher(ctx, store, cfg.CatalogRefresh, logger.Named("refresher"))

	return ui.Run(ctx, ui.Options{
		Store:     store,
		Responder: chat.Local{},
		Logger:    logger.Named("ui"),
		Theme:     cfg.Theme,
	})
}

// newStore wires the backend client and session storage into a store. The
// returned func closes the storage.
func newStore(cfg config.Config, logger *zap.Logger) (*state.Store, func(), error) {
	client, err := api.NewClient(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("init api client: %w", err)
	}

	storage, err := session.Open(cfg.SessionBackend, cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open session storage: %w", err)
	}
	closeStorage := func() {
		if err := storage.Close(); err != nil {
			logger.Warn("close session storage", zap.Error(err))
		}
	}

	store, err := state.New(state.Options{
		Storage: storage,
		Backend: client,
		Logger:  logger.Named("store"),
	})
	if err != nil {
		closeStorage()
		return nil, nil, fmt.Errorf("init store: %w", err)
	}
	return store, closeStorage, nil
}
