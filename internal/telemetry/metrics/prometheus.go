package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus creates the registry served on /metrics: build info, go runtime
// (gc and scheduler only), process stats, a constant service info gauge labeled with
// the environment, and any extra collectors such as the pgx pool collector.
func SetupPrometheus(environment string, extra ...prometheus.Collector) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	serviceInfo := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "evolvx_service_info",
		Help:        "Constant 1, labeled with the service environment",
		ConstLabels: prometheus.Labels{"environment": environment},
	})
	serviceInfo.Set(1)

	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(
				collectors.MetricsGC,
				collectors.MetricsScheduler,
			),
		),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		serviceInfo,
	)
	for _, c := range extra {
		promRegistry.MustRegister(c)
	}

	return promRegistry
}
