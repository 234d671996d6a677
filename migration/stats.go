package migration

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/0chain/bucketxfer/types"
)

// RunStats collects per-run counters. One instance per run, safe for
// concurrent Record calls.
type RunStats struct {
	mu sync.Mutex

	totalObjects int
	transferred  int
	skipped      int
	errors       int
	bytes        int64
	failures     []types.TransferOutcome
	startTime    time.Time

	now func() time.Time
}

func NewRunStats() *RunStats {
	return newRunStats(time.Now)
}

func newRunStats(now func() time.Time) *RunStats {
	return &RunStats{startTime: now(), now: now}
}

// SetTotal is called once, from the listing length, before any copy starts.
func (s *RunStats) SetTotal(n int) {
	s.mu.Lock()
	s.totalObjects = n
	s.mu.Unlock()
}

func (s *RunStats) Record(o types.TransferOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch o.Kind {
	case types.Transferred:
		s.transferred++
		s.bytes += o.Size
	case types.Skipped:
		s.skipped++
	case types.Failed:
		s.errors++
		s.failures = append(s.failures, o)
	}
}

type Summary struct {
	StartTime        time.Time
	TotalObjects     int
	Transferred      int
	Skipped          int
	Errors           int
	BytesTransferred int64
	DurationSeconds  int64
	// Rate is in objects per minute.
	Rate     float64
	Failures []types.TransferOutcome
}

func (s *RunStats) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := int64(s.now().Sub(s.startTime) / time.Second)
	if d < 0 {
		d = 0
	}

	failures := make([]types.TransferOutcome, len(s.failures))
	copy(failures, s.failures)

	return Summary{
		StartTime:        s.startTime,
		TotalObjects:     s.totalObjects,
		Transferred:      s.transferred,
		Skipped:          s.skipped,
		Errors:           s.errors,
		BytesTransferred: s.bytes,
		DurationSeconds:  d,
		Rate:             transferRate(s.transferred, d),
		Failures:         failures,
	}
}

func transferRate(transferred int, durationSeconds int64) float64 {
	if durationSeconds == 0 {
		return 0
	}
	return float64(transferred) / (float64(durationSeconds) / 60)
}

func (s Summary) String() string {
	var b strings.Builder
	b.WriteString("=== Transfer Statistics ===\n")
	fmt.Fprintf(&b, "Total Objects: %d\n", s.TotalObjects)
	fmt.Fprintf(&b, "Transferred: %d\n", s.Transferred)
	fmt.Fprintf(&b, "Skipped: %d\n", s.Skipped)
	fmt.Fprintf(&b, "Errors: %d\n", s.Errors)
	fmt.Fprintf(&b, "Duration: %dm %ds\n", s.DurationSeconds/60, s.DurationSeconds%60)
	fmt.Fprintf(&b, "Rate: %.2f objects/minute\n", s.Rate)
	return b.String()
}
