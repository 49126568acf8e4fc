package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("test")

	m.MovementAppended("OUTBOUND", "sale", 3)
	m.MovementAppended("OUTBOUND", "sale", 2)
	m.MovementRejected("insufficient_balance")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.movementsTotal.WithLabelValues("OUTBOUND", "sale")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.movementUnits.WithLabelValues("OUTBOUND")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejectionsTotal.WithLabelValues("insufficient_balance")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New("test")
	m.ObserveHTTP("GET", "/api/v1/stock/balance/:product_id", 200, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `test_http_requests_total{method="GET",path="/api/v1/stock/balance/:product_id",status="200"} 1`))
}
