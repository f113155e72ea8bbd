package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	PaymentStatusAccepted     = "accepted"
	PaymentStatusOverpayment  = "overpayment"
	PaymentStatusSettled      = "already_settled"
	PaymentStatusInvalid      = "invalid"
	PaymentStatusStoreFailure = "error"

	OrphanKindLoan    = "loan"
	OrphanKindPayment = "payment"

	DBStatusSuccess = "success"
	DBStatusError   = "error"
)

type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type LedgerMetrics struct {
	CustomersRegisteredTotal prometheus.Counter
	LoansRecordedTotal       prometheus.Counter
	PaymentsTotal            *prometheus.CounterVec
	CascadeFailuresTotal     prometheus.Counter
	OrphansSweptTotal        *prometheus.CounterVec
}

var (
	HTTP = HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_ledger_http_requests_total",
				Help: "Total number of HTTP requests received.",
			},
			[]string{"method", "path", "code"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "credit_ledger_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "code"},
		),
	}

	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "credit_ledger_db_query_duration_seconds",
				Help:    "Histogram of record store query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Ledger = LedgerMetrics{
		CustomersRegisteredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "credit_ledger_customers_registered_total",
				Help: "Total number of customers registered.",
			},
		),
		LoansRecordedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "credit_ledger_loans_recorded_total",
				Help: "Total number of loans recorded.",
			},
		),
		PaymentsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_ledger_payments_total",
				Help: "Payment attempts partitioned by outcome.",
			},
			[]string{"status"},
		),
		CascadeFailuresTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "credit_ledger_cascade_failures_total",
				Help: "Customer deletions that stopped part way through the cascade.",
			},
		),
		OrphansSweptTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_ledger_orphans_swept_total",
				Help: "Loans and payments removed because their customer no longer exists.",
			},
			[]string{"kind"},
		),
	}
)

func RecordHTTPRequest(method, path, code string, duration time.Duration) {
	HTTP.RequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTP.RequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordCustomerRegistered() {
	Ledger.CustomersRegisteredTotal.Inc()
}

func RecordLoanRecorded() {
	Ledger.LoansRecordedTotal.Inc()
}

func RecordPayment(status string) {
	Ledger.PaymentsTotal.WithLabelValues(status).Inc()
}

func RecordCascadeFailure() {
	Ledger.CascadeFailuresTotal.Inc()
}

func RecordOrphansSwept(kind string, count int) {
	if count <= 0 {
		return
	}
	Ledger.OrphansSweptTotal.WithLabelValues(kind).Add(float64(count))
}
