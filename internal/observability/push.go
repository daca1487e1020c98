package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PushMetrics pushes the default registry to a Prometheus Pushgateway.
// Batch jobs cannot be scraped, so a successful run pushes its counters
// under the configured job name. Callers skip this when no gateway is
// configured.
func PushMetrics(gatewayURL, job string) error {
	if err := push.New(gatewayURL, job).Gatherer(prometheus.DefaultGatherer).Push(); err != nil {
		return fmt.Errorf("push metrics to %s: %w", gatewayURL, err)
	}
	return nil
}
