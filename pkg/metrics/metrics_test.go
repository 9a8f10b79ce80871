package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "test")

	m.IncReservationAttempt("created")
	m.IncReservationAttempt("created")
	m.IncReservationAttempt("slot_unavailable")
	m.IncStatusTransition("pending", "confirmed", "admin")
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/available-slots", http.StatusOK, 10*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ReservationAttempts.WithLabelValues("created")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ReservationAttempts.WithLabelValues("slot_unavailable")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StatusTransitions.WithLabelValues("pending", "confirmed", "admin")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/available-slots", "200")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncReservationAttempt("created")
		m.IncStatusTransition("pending", "cancelled", "requester")
		m.ObserveHTTPRequest(http.MethodPost, "/", http.StatusCreated, time.Second)
		m.ObserveDBQuery("select", time.Millisecond, nil)
	})
}
