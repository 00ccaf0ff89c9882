package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eddiebot_chat_requests_total",
		Help: "Chat requests handled, by resolved category (blocked included).",
	}, []string{"category"})

	llmFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eddiebot_llm_failures_total",
		Help: "Chat requests answered with the degraded reply after a model failure.",
	})

	emptyContexts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eddiebot_empty_context_total",
		Help: "Chat requests where every source fetch failed and synthesis was skipped.",
	})
)
