package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveUpstream(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequests.WithLabelValues("tavily", "ok"))
	ObserveUpstream("tavily", "ok", time.Now().Add(-20*time.Millisecond))
	after := testutil.ToFloat64(UpstreamRequests.WithLabelValues("tavily", "ok"))

	assert.Equal(t, before+1, after)
}

func TestRecordFallback(t *testing.T) {
	before := testutil.ToFloat64(Fallbacks.WithLabelValues("weather"))
	RecordFallback("weather")
	RecordFallback("weather")

	assert.Equal(t, before+2, testutil.ToFloat64(Fallbacks.WithLabelValues("weather")))
}
