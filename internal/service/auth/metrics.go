package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Admin login attempts partitioned by result",
		},
		[]string{"result"},
	)

	lockouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_lockouts_total",
			Help: "Accounts locked after repeated failed logins",
		},
	)

	sessionInvalid = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_session_invalid_total",
			Help: "Session tokens rejected on refresh",
		},
	)
)
