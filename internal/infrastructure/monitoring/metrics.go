package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	PaymentsProcessedTotal *prometheus.CounterVec
	LoansClosedTotal       prometheus.Counter
	OverdueLoansTotal      prometheus.Counter
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loan_manager_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		PaymentsProcessedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_manager_payments_processed_total",
				Help: "Total number of processed payments by type and outcome.",
			},
			[]string{"type", "status"},
		),
		LoansClosedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loan_manager_loans_closed_total",
				Help: "Total number of loans closed by a settlement payment.",
			},
		),
		OverdueLoansTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loan_manager_overdue_loans_flagged_total",
				Help: "Total number of open loans flagged past their due date by the batch sweep.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordPayment(paymentType, status string) {
	Business.PaymentsProcessedTotal.WithLabelValues(paymentType, status).Inc()
}

func RecordLoanClosed() {
	Business.LoansClosedTotal.Inc()
}

func RecordOverdueLoan() {
	Business.OverdueLoansTotal.Inc()
}
