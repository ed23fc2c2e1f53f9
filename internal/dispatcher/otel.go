package dispatcher

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// meter returns the dispatcher's meter from the global OTel provider.
// When no provider is configured this is a no-op meter.
func meter() metric.Meter {
	return otel.Meter("github.com/karlo195/StardewMods/internal/dispatcher")
}
