package providers

import (
	"github.com/samber/do/v2"

	"github.com/giftwell/giftwell-server/internal/logger"
	"github.com/giftwell/giftwell-server/internal/realtime"
)

// RegistryHandle wraps the subscription registry with Shutdownable.
type RegistryHandle struct {
	*realtime.Registry
}

// Shutdown implements do.Shutdownable.
func (h *RegistryHandle) Shutdown() error {
	h.Registry.Shutdown()
	return nil
}

// ProvideRegistry provides the live-update subscription registry.
func ProvideRegistry(i do.Injector) (*RegistryHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	return &RegistryHandle{Registry: realtime.NewRegistry(log.Logger)}, nil
}
