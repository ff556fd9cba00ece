package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())

	m.Observe("calc", nil, "")
	m.Observe("calc", nil, "")
	m.Observe("calc", errors.New("boom"), "missing_field")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Commands.WithLabelValues("calc", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Commands.WithLabelValues("calc", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("calc", "missing_field")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.Observe("rr", nil, "")
		m.Size(1, nil)
		m.Ratio(2)
		m.SetProfiles(3)
	})
}

func TestHandler(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry())
	m.SetProfiles(3)
	rr := 1.5
	m.Size(0.25, &rr)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "riskbot_profiles 3")
	assert.Contains(t, body, "riskbot_position_size_count 1")
	assert.Contains(t, body, "riskbot_reward_risk_ratio_count 1")
}
