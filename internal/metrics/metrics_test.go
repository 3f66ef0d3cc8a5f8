package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveLogin(t *testing.T) {
	m := New()

	m.ObserveLogin(OutcomeResolved)
	m.ObserveLogin(OutcomeResolved)
	m.ObserveLogin(OutcomeNotFound)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Logins.WithLabelValues(OutcomeResolved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logins.WithLabelValues(OutcomeNotFound)))
}

func TestInstancesDoNotShareRegistries(t *testing.T) {
	// A second New must not panic on duplicate registration
	first := New()
	second := New()

	first.ObserveProgress("level")

	assert.Equal(t, 1.0, testutil.ToFloat64(first.ProgressUpdates.WithLabelValues("level")))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.ProgressUpdates.WithLabelValues("level")))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.ObserveLogin(OutcomeResolved)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `classquiz_logins_total{outcome="resolved"} 1`)
}
