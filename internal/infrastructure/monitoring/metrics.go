package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_search_queries_total",
			Help: "Total number of catalog search queries dispatched",
		},
	)

	SearchStaleResponsesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_search_stale_responses_total",
			Help: "Total number of search responses discarded as stale",
		},
	)

	SearchFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_search_failures_total",
			Help: "Total number of failed catalog searches",
		},
	)

	CartItemsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_cart_items_added_total",
			Help: "Total number of items added to carts",
		},
	)

	SalesSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_sales_submitted_total",
			Help: "Total number of successfully submitted sales",
		},
	)

	SaleFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_sale_failures_total",
			Help: "Total number of failed sale submissions",
		},
		[]string{"reason"},
	)

	SaleAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pos_sale_amount",
			Help:    "Distribution of submitted sale totals in currency units",
			Buckets: prometheus.ExponentialBuckets(1, 2.5, 10),
		},
	)

	CashSessionsOpenedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_cash_sessions_opened_total",
			Help: "Total number of cash sessions opened",
		},
	)

	CashSessionsClosedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_cash_sessions_closed_total",
			Help: "Total number of cash sessions closed",
		},
	)

	UnauthorizedResponsesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_unauthorized_responses_total",
			Help: "Total number of 401 responses forcing re-authentication",
		},
	)
)

const (
	ReasonSessionClosed    = "session_closed"
	ReasonEmptyCart        = "empty_cart"
	ReasonInsufficientCash = "insufficient_cash"
	ReasonService          = "service_error"
	ReasonTransport        = "transport_error"
)
