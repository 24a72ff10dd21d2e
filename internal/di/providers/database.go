package providers

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/giftwell/giftwell-server/internal/config"
	"github.com/giftwell/giftwell-server/internal/logger"
	"github.com/giftwell/giftwell-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the SQLite-backed store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(cfg.Data.BasePath, 0o755); err != nil {
		return nil, err
	}

	st, err := sqlite.Open(cfg.DatabasePath(), log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database opened", "path", cfg.DatabasePath())

	return &StoreHandle{Store: st}, nil
}
