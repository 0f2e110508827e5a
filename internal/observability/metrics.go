// Package observability provides Prometheus metrics for the auth service.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// LoginsTotal counts login attempts by outcome (ok, invalid, rate_limited, error).
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lintra_logins_total",
			Help: "Login attempts",
		},
		[]string{"outcome"},
	)

	// RegistrationsTotal counts registration attempts by outcome (ok, duplicate, invalid, error).
	RegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lintra_registrations_total",
			Help: "Registration attempts",
		},
		[]string{"outcome"},
	)

	// TokenVerificationsTotal counts token verifications by result
	// (ok, expired, malformed, failed, missing).
	TokenVerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lintra_token_verifications_total",
			Help: "Token verifications",
		},
		[]string{"result"},
	)

	// RateLimitRejectedTotal counts login attempts rejected by the rate limiter.
	RateLimitRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lintra_ratelimit_rejected_total",
			Help: "Rate limit rejections",
		},
	)
)

func init() {
	prometheus.MustRegister(
		LoginsTotal,
		RegistrationsTotal,
		TokenVerificationsTotal,
		RateLimitRejectedTotal,
	)
}
