package metrics

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/0chain/bucketxfer/types"
	"github.com/0chain/bucketxfer/util"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	util.Fs = afero.NewMemMapFs()
	os.Exit(m.Run())
}

func TestMetrics_ObserveOutcome(t *testing.T) {
	m := New()

	m.ObserveOutcome(types.TransferredOutcome("a", 100), time.Second)
	m.ObserveOutcome(types.TransferredOutcome("b", 50), time.Second)
	m.ObserveOutcome(types.SkippedOutcome("c/"), 0)
	m.ObserveOutcome(types.FailedOutcome("d", errors.New("boom")), 0)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.objects.WithLabelValues("transferred")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.objects.WithLabelValues("skipped")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.objects.WithLabelValues("failed")))
	assert.Equal(t, float64(150), testutil.ToFloat64(m.bytes))
}

func TestMetrics_WindowsAndListed(t *testing.T) {
	m := New()
	m.SetListed(12)
	m.WindowDone()
	m.WindowDone()

	assert.Equal(t, float64(12), testutil.ToFloat64(m.listed))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.windows))
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.WindowDone()

	assert.Equal(t, float64(1), testutil.ToFloat64(a.windows))
	assert.Equal(t, float64(0), testutil.ToFloat64(b.windows))
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.SetListed(3)

	require.NoError(t, util.Fs.MkdirAll("/textfile", 0755))
	path := "/textfile/bucketxfer.prom"
	require.NoError(t, m.WriteTextfile(path))

	data, err := afero.ReadFile(util.Fs, path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "bucketxfer_listed_objects 3"))

	entries, err := afero.ReadDir(util.Fs, "/textfile")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "bucketxfer.prom", entries[0].Name())
}
