package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	visitasTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pistas_visitas_total",
		Help: "Total number of pista visits recorded",
	})
	exitosTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pistas_exitos_total",
		Help: "Total number of successful pista completions recorded",
	})
	fallosTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pistas_fallos_total",
		Help: "Total number of failed pista completions recorded",
	})
	loginsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pistas_logins_total",
		Help: "Total number of successful administrator logins",
	})
	loginsFallidosTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pistas_logins_fallidos_total",
		Help: "Total number of failed administrator login attempts",
	})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(visitasTotal, exitosTotal, fallosTotal, loginsTotal, loginsFallidosTotal)
}

// IncVisita increments the recorded visits counter.
func IncVisita() { visitasTotal.Inc() }

// IncExito increments the successful completions counter.
func IncExito() { exitosTotal.Inc() }

// IncFallo increments the failed completions counter.
func IncFallo() { fallosTotal.Inc() }

// IncLogin increments the successful logins counter.
func IncLogin() { loginsTotal.Inc() }

// IncLoginFallido increments the failed logins counter.
func IncLoginFallido() { loginsFallidosTotal.Inc() }
