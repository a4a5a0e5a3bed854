package consumer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const outcomeOK = "ok"

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "catalog_consumer",
		Name:      "requests_total",
		Help:      "Facade operations by outcome (ok or failure kind).",
	},
	[]string{"operation", "outcome"},
)
