package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve_CountsByActionAndOutcome(t *testing.T) {
	r := New()
	r.Observe("install_schema", OutcomeSuccess, time.Second)
	r.Observe("install_schema", OutcomeSuccess, time.Second)
	r.Observe("install_schema", "install_failure", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.runs.WithLabelValues("install_schema", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("install_schema", "install_failure")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.duration))
}

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()
	a.Observe("redeploy", OutcomeSuccess, 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.runs.WithLabelValues("redeploy", OutcomeSuccess)))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.Observe("redeploy", OutcomeFailure, 10*time.Millisecond)
	path := filepath.Join(t.TempDir(), "xbt.prom")

	require.NoError(t, r.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `xbt_workflow_runs_total{action="redeploy",outcome="failure"} 1`)
}

func TestWriteTextfile_Error(t *testing.T) {
	err := New().WriteTextfile(filepath.Join(t.TempDir(), "missing", "xbt.prom"))
	require.Error(t, err)
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.Observe("redeploy", OutcomeSuccess, 0)
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteTextfile("/nonexistent/x.prom"))
	assert.NoError(t, New().WriteTextfile(""))
}
