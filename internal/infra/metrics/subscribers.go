package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		subscribersExpiredTotal,
	)
}

var subscribersExpiredTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "subscribers_expired_total",
		Help: "Total number of subscriber rows reconciled to expired by the expiry worker.",
	},
)

func IncSubscribersExpired(n int) {
	subscribersExpiredTotal.Add(float64(n))
}
