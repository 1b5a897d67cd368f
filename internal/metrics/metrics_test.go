package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func TestRecordMatchRequest(t *testing.T) {
	before := testutil.ToFloat64(MatchRequestsTotal.WithLabelValues(OutcomeOK))

	RecordMatchRequest(OutcomeOK, 12*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(MatchRequestsTotal.WithLabelValues(OutcomeOK)))
}

func TestRecordCacheEvent(t *testing.T) {
	before := testutil.ToFloat64(MatchCacheEventsTotal.WithLabelValues(CacheHit))

	RecordCacheEvent(CacheHit)
	RecordCacheEvent(CacheHit)

	assert.Equal(t, before+2, testutil.ToFloat64(MatchCacheEventsTotal.WithLabelValues(CacheHit)))
}

func sampleCount(t *testing.T) uint64 {
	t.Helper()
	var m dto.Metric
	if err := MatchResultsTotal.Write(&m); err != nil {
		t.Fatalf("failed to read histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordResultCount(t *testing.T) {
	before := sampleCount(t)
	RecordResultCount(7)
	assert.Equal(t, before+1, sampleCount(t))
}
