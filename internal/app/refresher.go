package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/five82/vogue/internal/state"
)

const maxBackoff = 10 * time.Minute

// catalogStore is the slice of *state.Store the refresher needs.
type catalogStore interface {
	Snapshot() state.Snapshot
	LoadProducts(ctx context.Context) (state.Snapshot, error)
}

// StartRefresher reloads the catalog every interval until ctx is cancelled.
// It returns immediately. Ticks are skipped while the admin panel is open so
// a reload cannot supersede a product the admin is creating. Failures back
// off exponentially.
func StartRefresher(ctx context.Context, store catalogStore, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			if refreshCatalog(ctx, store, logger) {
				failures = 0
			} else {
				failures++
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// refreshCatalog runs one reload and reports whether the store is current.
func refreshCatalog(ctx context.Context, store catalogStore, logger *zap.Logger) bool {
	if store.Snapshot().Panels.AdminPanelOpen {
		logger.Debug("catalog refresh skipped, admin panel open")
		return true
	}
	snap, err := store.LoadProducts(ctx)
	switch {
	case err == nil:
		logger.Debug("catalog refreshed", zap.Int("products", len(snap.Products)))
		return true
	case errors.Is(err, state.ErrSuperseded), ctx.Err() != nil:
		return true
	default:
		logger.Warn("catalog refresh failed", zap.Error(err))
		return false
	}
}

// calculateBackoff doubles base per consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
