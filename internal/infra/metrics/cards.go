package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		cardsGeneratedTotal,
		cardsRedeemedTotal,
		redeemFailuresTotal,
	)
}

var (
	cardsGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cards_generated_total",
			Help: "Total number of prepaid cards created by bulk generation.",
		},
	)

	cardsRedeemedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cards_redeemed_total",
			Help: "Total number of successful card redemptions.",
		},
	)

	redeemFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "card_redeem_failures_total",
			Help: "Failed redemption attempts by reason (not_found/already_used/inconsistent_state/error).",
		},
		[]string{"reason"},
	)
)

func AddCardsGenerated(n int) {
	cardsGeneratedTotal.Add(float64(n))
}

func IncCardRedeemed() {
	cardsRedeemedTotal.Inc()
}

func IncRedeemFailure(reason string) {
	redeemFailuresTotal.WithLabelValues(reason).Inc()
}
