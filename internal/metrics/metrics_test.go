package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/regcheck/internal/metrics"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_Counters(t *testing.T) {
	m := metrics.New()
	m.ObserveAccepted(time.Millisecond)
	m.ObserveAccepted(time.Millisecond)
	m.ObserveRejected("rules", []string{"too_short", "too_short", "pattern"}, time.Millisecond)
	m.ObserveRejected("malformed", nil, time.Millisecond)

	out := scrape(t, m)
	assert.Contains(t, out, `regcheck_registrations_total{outcome="accepted"} 2`)
	assert.Contains(t, out, `regcheck_registrations_total{outcome="rules"} 1`)
	assert.Contains(t, out, `regcheck_registrations_total{outcome="malformed"} 1`)
	assert.Contains(t, out, `regcheck_violations_total{code="too_short"} 2`)
	assert.Contains(t, out, `regcheck_violations_total{code="pattern"} 1`)
	assert.Contains(t, out, `regcheck_validation_duration_seconds_count 4`)
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a, b := metrics.New(), metrics.New()
	a.ObserveAccepted(time.Millisecond)

	assert.Contains(t, scrape(t, a), `regcheck_registrations_total{outcome="accepted"} 1`)
	assert.NotContains(t, scrape(t, b), `regcheck_registrations_total{outcome="accepted"}`)
	assert.NotSame(t, a.Registry(), b.Registry())
}
