package providers

import (
	"github.com/samber/do/v2"

	"github.com/giftwell/giftwell-server/internal/auth"
	"github.com/giftwell/giftwell-server/internal/logger"
	"github.com/giftwell/giftwell-server/internal/service"
)

// ProvideBroadcaster provides the wishlist change broadcaster.
func ProvideBroadcaster(i do.Injector) (*service.Broadcaster, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	registryHandle := do.MustInvoke[*RegistryHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBroadcaster(storeHandle.Store, registryHandle.Registry, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokens, log.Logger), nil
}

// ProvideWishlistService provides the wishlist service.
func ProvideWishlistService(i do.Injector) (*service.WishlistService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	broadcaster := do.MustInvoke[*service.Broadcaster](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewWishlistService(storeHandle.Store, broadcaster, log.Logger), nil
}

// ProvideGiftingService provides the reservation and contribution service.
func ProvideGiftingService(i do.Injector) (*service.GiftingService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	broadcaster := do.MustInvoke[*service.Broadcaster](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewGiftingService(storeHandle.Store, broadcaster, log.Logger), nil
}
