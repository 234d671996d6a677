package migration

import (
	"context"
	"fmt"
	"time"

	zlogger "github.com/0chain/bucketxfer/logger"
	"github.com/0chain/bucketxfer/metrics"
	"github.com/0chain/bucketxfer/s3"
	"github.com/0chain/bucketxfer/types"
	"github.com/0chain/bucketxfer/util"
	"github.com/google/uuid"
)

// Migration is a single transfer run. It holds no package level state, so
// several runs may coexist.
type Migration struct {
	RunID string

	source      s3.Bucket
	destination s3.Bucket
	config      MigrationConfig

	copier  *Copier
	worker  *MigrationWorker
	runner  *BatchRunner
	metrics *metrics.Metrics

	now func() time.Time
}

func NewMigration(source, destination s3.Bucket, mConfig MigrationConfig, m *metrics.Metrics) (*Migration, error) {
	if err := mConfig.validate(); err != nil {
		return nil, err
	}
	if m == nil {
		m = metrics.New()
	}

	worker, err := NewMigrationWorker(util.Fs, mConfig.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("could not create work dir %v. Error: %v", mConfig.WorkDir, err)
	}

	mig := &Migration{
		RunID:       uuid.New().String(),
		source:      source,
		destination: destination,
		config:      mConfig,
		copier:      NewCopier(source, destination, worker, mConfig.RetryCount),
		worker:      worker,
		metrics:     m,
		now:         time.Now,
	}
	mig.runner = &BatchRunner{
		Width:    mConfig.MaxConcurrent,
		Pause:    mConfig.BatchPause,
		OnWindow: mig.windowDone,
	}
	return mig, nil
}

func (m *Migration) Worker() *MigrationWorker {
	return m.worker
}

// Migrate lists the source and copies every object in windows. Listing
// failure is fatal; per-object failures only show up in the returned stats.
func (m *Migration) Migrate(ctx context.Context) (*RunStats, error) {
	zlogger.Logger.Info("Starting bucket transfer, run ", m.RunID)
	zlogger.Logger.Infof("Source: %v", m.source.Name())
	zlogger.Logger.Infof("Destination: %v", m.destination.Name())
	zlogger.Logger.Infof("Batch size: %d, Max concurrent: %d", m.config.BatchSize, m.config.MaxConcurrent)

	stats := newRunStats(m.now)

	objects, err := ListAllObjects(ctx, m.source, m.config.BatchSize)
	if err != nil {
		return stats, err
	}
	stats.SetTotal(len(objects))
	m.metrics.SetListed(len(objects))

	if len(objects) == 0 {
		zlogger.Logger.Info("No objects found to transfer.")
		return stats, nil
	}

	zlogger.Logger.Info("Starting transfer...")
	err = m.runner.Run(ctx, objects, func(ctx context.Context, rec types.ObjectRecord) {
		start := m.now()
		outcome := m.copier.Copy(ctx, rec)
		stats.Record(outcome)
		m.metrics.ObserveOutcome(outcome, m.now().Sub(start))
	})
	if err != nil {
		return stats, err
	}

	zlogger.Logger.Info("Transfer completed!")
	return stats, nil
}

func (m *Migration) windowDone(index, size, done, total int) {
	m.metrics.WindowDone()
	zlogger.Logger.Infof("Progress: %.1f%% (%d/%d)", float64(done)/float64(total)*100, done, total)
}
