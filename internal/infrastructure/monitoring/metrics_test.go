package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTP.RequestsTotal.WithLabelValues("GET", "/customers", "200"))

	RecordHTTPRequest("GET", "/customers", "200", 15*time.Millisecond)

	after := testutil.ToFloat64(HTTP.RequestsTotal.WithLabelValues("GET", "/customers", "200"))
	assert.Equal(t, before+1, after)
}

func TestLedgerCounters(t *testing.T) {
	registered := testutil.ToFloat64(Ledger.CustomersRegisteredTotal)
	loans := testutil.ToFloat64(Ledger.LoansRecordedTotal)
	cascade := testutil.ToFloat64(Ledger.CascadeFailuresTotal)

	RecordCustomerRegistered()
	RecordLoanRecorded()
	RecordLoanRecorded()
	RecordCascadeFailure()

	assert.Equal(t, registered+1, testutil.ToFloat64(Ledger.CustomersRegisteredTotal))
	assert.Equal(t, loans+2, testutil.ToFloat64(Ledger.LoansRecordedTotal))
	assert.Equal(t, cascade+1, testutil.ToFloat64(Ledger.CascadeFailuresTotal))
}

func TestRecordPayment(t *testing.T) {
	accepted := testutil.ToFloat64(Ledger.PaymentsTotal.WithLabelValues(PaymentStatusAccepted))
	over := testutil.ToFloat64(Ledger.PaymentsTotal.WithLabelValues(PaymentStatusOverpayment))

	RecordPayment(PaymentStatusAccepted)
	RecordPayment(PaymentStatusOverpayment)
	RecordPayment(PaymentStatusOverpayment)

	assert.Equal(t, accepted+1, testutil.ToFloat64(Ledger.PaymentsTotal.WithLabelValues(PaymentStatusAccepted)))
	assert.Equal(t, over+2, testutil.ToFloat64(Ledger.PaymentsTotal.WithLabelValues(PaymentStatusOverpayment)))
}

func TestRecordOrphansSwept(t *testing.T) {
	before := testutil.ToFloat64(Ledger.OrphansSweptTotal.WithLabelValues(OrphanKindPayment))

	RecordOrphansSwept(OrphanKindPayment, 3)
	RecordOrphansSwept(OrphanKindPayment, 0)

	assert.Equal(t, before+3, testutil.ToFloat64(Ledger.OrphansSweptTotal.WithLabelValues(OrphanKindPayment)))
}
