package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счётчики админки. outcome: ok | error.
var (
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_admin_mutations_total",
		Help: "Admin mutations by action and outcome.",
	}, []string{"action", "outcome"})

	SessionLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shop_admin_session_loads_total",
		Help: "Completed session loads.",
	})

	GateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shop_admin_gate_decisions_total",
		Help: "Session gate decisions.",
	}, []string{"decision"})
)

// Outcome переводит ошибку в метку outcome.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
