package components

import (
	"serial-inventory/internal/handler"
	"serial-inventory/internal/handler/api"
	"serial-inventory/internal/handler/middleware"
	"serial-inventory/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewSerialHandler,
		api.NewCheckoutHandler,
		api.NewVariantHandler,
		api.NewCatalogHandler,
		api.NewExportHandler,
		api.NewWebhookHandler,
		handler.NewHandlers,
		middleware.NewAuthMiddleware,
		NewWebhookMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewWebhookMiddleware(cfg config.Config) *middleware.WebhookMiddleware {
	return middleware.NewWebhookMiddleware(cfg.Webhook.Secret)
}
