// Package di provides dependency injection configuration for the GiftWell server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/giftwell/giftwell-server/internal/auth"
	"github.com/giftwell/giftwell-server/internal/config"
	"github.com/giftwell/giftwell-server/internal/di/providers"
	"github.com/giftwell/giftwell-server/internal/logger"
	"github.com/giftwell/giftwell-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Realtime layer
	do.Provide(injector, providers.ProvideRegistry)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideBroadcaster)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideWishlistService)
	do.Provide(injector, providers.ProvideGiftingService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of every provider in dependency order.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.RegistryHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	_ = do.MustInvoke[*service.Broadcaster](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.WishlistService](injector)
	_ = do.MustInvoke[*service.GiftingService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
