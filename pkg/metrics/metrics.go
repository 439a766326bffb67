package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "centerbeliever", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "centerbeliever", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// UpstreamCalls counts outbound calls to managed services (wordpress,
	// captcha, minio) by outcome (ok|error).
	UpstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "centerbeliever", Name: "upstream_calls_total", Help: "Number of outbound calls to external services by outcome."},
		[]string{"service", "outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(UpstreamCalls)
}

// ObserveUpstream records one outbound call result for the named service.
func ObserveUpstream(service string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamCalls.WithLabelValues(service, outcome).Inc()
}
