package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordLogin(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordLogin("password", true)
	m.RecordLogin("password", false)
	m.RecordLogin("apikey", true)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.LoginAttemptsTotal.WithLabelValues("password", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LoginAttemptsTotal.WithLabelValues("password", "failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LoginAttemptsTotal.WithLabelValues("apikey", "success")))
}

func TestMetrics_RecordCORS(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordCORS(true, true)
	m.RecordCORS(false, false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CORSRequestsTotal.WithLabelValues("allowed", "true")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CORSRequestsTotal.WithLabelValues("denied", "false")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(nil)
	m.LogoutsTotal.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sflow_logouts_total 1")
}
