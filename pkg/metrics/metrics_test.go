package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.NoteOp("create", nil)
	m.NoteOp("create", errors.New("x"))
	m.NoteOp("create", nil)
	m.AIRequest("expand", "ok")
	m.ObserveHTTP("GET", "/api/notes", "200", 5*time.Millisecond)
	m.SetNotesTotal(12)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.noteOps.WithLabelValues("create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.noteOps.WithLabelValues("create", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiRequests.WithLabelValues("expand", "ok")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.notesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/notes", "200")))
}

func TestMetrics_WatchGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	v := 3.0
	m.WatchGauge("test_depth", "test", func() float64 { return v })

	n, err := testutil.GatherAndCount(reg, namespace+"_test_depth")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
