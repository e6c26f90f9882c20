package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	toolInvocations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcptoolkit_tool_invocations_total",
		Help: "Tool invocations by tool name and outcome (ok or error).",
	}, []string{"tool", "outcome"})

	toolDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mcptoolkit_tool_duration_seconds",
		Help:    "Wall-clock duration of tool invocations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"tool"})
)
