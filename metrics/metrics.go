package metrics

import (
	"path/filepath"
	"time"

	"github.com/0chain/bucketxfer/types"
	"github.com/0chain/bucketxfer/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/afero"
)

const namespace = "bucketxfer"

// Metrics holds the collectors for a single run. Each run gets its own
// registry so concurrent runs never share counters.
type Metrics struct {
	Registry *prometheus.Registry

	objects      *prometheus.CounterVec
	bytes        prometheus.Counter
	copyDuration prometheus.Histogram
	windows      prometheus.Counter
	listed       prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		objects: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "objects_total",
			Help:      "Objects processed, by outcome.",
		}, []string{"outcome"}),
		bytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_transferred_total",
			Help:      "Bytes written to the destination bucket.",
		}),
		copyDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "copy_duration_seconds",
			Help:      "Time spent on a single object copy attempt.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		windows: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "windows_total",
			Help:      "Copy windows completed.",
		}),
		listed: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "listed_objects",
			Help:      "Objects returned by the source listing.",
		}),
	}
}

func (m *Metrics) ObserveOutcome(o types.TransferOutcome, took time.Duration) {
	m.objects.WithLabelValues(o.Kind.String()).Inc()
	if o.Kind == types.Transferred {
		m.bytes.Add(float64(o.Size))
		m.copyDuration.Observe(took.Seconds())
	}
}

func (m *Metrics) WindowDone() {
	m.windows.Inc()
}

func (m *Metrics) SetListed(n int) {
	m.listed.Set(float64(n))
}

// WriteTextfile dumps the registry in the text exposition format, suitable
// for the node exporter textfile collector. The file is written to a temp
// name first and renamed so the collector never reads a partial file.
func (m *Metrics) WriteTextfile(path string) error {
	families, err := m.Registry.Gather()
	if err != nil {
		return err
	}

	tmp, err := afero.TempFile(util.Fs, filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return err
	}
	defer util.Fs.Remove(tmp.Name())

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(tmp, mf); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return util.Fs.Rename(tmp.Name(), path)
}
