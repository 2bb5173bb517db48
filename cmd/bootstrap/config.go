package bootstrap

import (
	"log/slog"

	"serial-inventory/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logIntegrations),
)

// logIntegrations records which optional integrations this process runs with.
func logIntegrations(cfg config.Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		"assignment_policy", cfg.Serial.AssignmentPolicy,
		"enforce_inventory_cap", cfg.Serial.EnforceInventoryCap,
		"reservation_hold", cfg.Serial.ReservationHold.String(),
		"redis", cfg.Redis.Enabled(),
		"kafka", cfg.Kafka.Enabled(),
		"webhook_dedupe_ttl", cfg.Webhook.DedupeTTL.String(),
	)
}
