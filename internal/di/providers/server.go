package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/giftwell/giftwell-server/internal/api"
	"github.com/giftwell/giftwell-server/internal/config"
	"github.com/giftwell/giftwell-server/internal/logger"
	"github.com/giftwell/giftwell-server/internal/realtime"
	"github.com/giftwell/giftwell-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	registryHandle := do.MustInvoke[*RegistryHandle](i)

	authService := do.MustInvoke[*service.AuthService](i)
	wishlistService := do.MustInvoke[*service.WishlistService](i)
	giftingService := do.MustInvoke[*service.GiftingService](i)

	services := &api.Services{
		Auth:     authService,
		Wishlist: wishlistService,
		Gifting:  giftingService,
	}

	wsHandler := realtime.NewHandler(registryHandle.Registry, wishlistService, log.Logger, cfg.Server.AllowedOrigins)

	handler := api.NewServer(cfg, services, wsHandler, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
