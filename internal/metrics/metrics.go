package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)
	Mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_mutations_total",
			Help: "Total task field flips by change kind",
		},
		[]string{"kind"},
	)
	HistoryAppends = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "task_history_appends_total",
			Help: "Total history entries appended",
		},
	)
	LiveSnapshots = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "live_snapshots_pushed_total",
			Help: "Total query snapshots pushed to websocket subscribers",
		},
	)
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(Mutations)
	prometheus.MustRegister(HistoryAppends)
	prometheus.MustRegister(LiveSnapshots)
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
}
