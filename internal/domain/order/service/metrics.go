package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersPlacedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of orders placed",
		},
	)

	paymentRelinksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_payment_relinks_total",
			Help: "Total number of background payment relink attempts by result",
		},
		[]string{"result"},
	)

	paymentStatusRefreshesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_payment_status_refreshes_total",
			Help: "Total number of mirrored payment statuses refreshed from the ledger",
		},
	)
)
