package controller

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/0chain/bucketxfer/export"
	zlogger "github.com/0chain/bucketxfer/logger"
	"github.com/0chain/bucketxfer/metrics"
	"github.com/0chain/bucketxfer/migration"
	"github.com/0chain/bucketxfer/model"
	zerror "github.com/0chain/bucketxfer/zErrors"
)

// Run dispatches on mode. Only fatal errors are returned; per-object
// failures are reported in the printed summary.
func Run(ctx context.Context, cfg model.AppConfig, mode model.RunMode, out io.Writer) error {
	switch mode.Kind {
	case model.RunTransfer:
		_, err := RunTransfer(ctx, cfg, out)
		return err
	case model.RunList:
		return RunList(ctx, cfg, mode, out)
	}
	return zerror.New(zerror.InvalidConfigErrCode, fmt.Sprintf("unknown run mode %d", mode.Kind))
}

func RunTransfer(ctx context.Context, cfg model.AppConfig, out io.Writer) (migration.Summary, error) {
	source, err := openBucket(ctx, model.SideSource, cfg.Source)
	if err != nil {
		return migration.Summary{}, err
	}
	destination, err := openBucket(ctx, model.SideDestination, cfg.Destination)
	if err != nil {
		return migration.Summary{}, err
	}

	m := metrics.New()
	mig, err := migration.NewMigration(source, destination, migration.MigrationConfig{
		BatchSize:     cfg.Batch.BatchSize,
		MaxConcurrent: cfg.Batch.MaxConcurrent,
		BatchPause:    cfg.Batch.Pause,
		RetryCount:    cfg.Batch.RetryCount,
		WorkDir:       cfg.WorkDir,
	}, m)
	if err != nil {
		return migration.Summary{}, err
	}

	stats, err := mig.Migrate(ctx)
	if err != nil {
		zlogger.Logger.Error("Transfer failed: ", err)
		return migration.Summary{}, err
	}

	summary := stats.Summary()
	fmt.Fprintln(out)
	fmt.Fprint(out, summary.String())

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			zlogger.Logger.Error("could not write metrics file ", cfg.MetricsFile, " Error: ", err)
		}
	}
	if cfg.ReportFile != "" {
		report := export.NewReport(mig.RunID, source.Name(), destination.Name(), summary)
		if err := export.WriteReport(cfg.ReportFile, report); err != nil {
			zlogger.Logger.Error("could not write report ", cfg.ReportFile, " Error: ", err)
		} else {
			zlogger.Logger.Info("Run report written to ", cfg.ReportFile)
		}
	}

	return summary, nil
}

func RunList(ctx context.Context, cfg model.AppConfig, mode model.RunMode, out io.Writer) error {
	endpoint := cfg.Source
	if mode.Side == model.SideDestination {
		endpoint = cfg.Destination
	}

	bucket, err := openBucket(ctx, mode.Side, endpoint)
	if err != nil {
		return err
	}

	objects, err := migration.ListAllObjects(ctx, bucket, cfg.Batch.BatchSize)
	if err != nil {
		return err
	}

	if !mode.Export {
		return export.WriteListing(out, objects)
	}

	path := mode.OutputPath
	if path == "" {
		path = export.DefaultCSVName(bucket.Name(), mode.Side, time.Now())
	}
	if err := export.ExportCSV(objects, path); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Exported %d objects to %s\n", len(objects), path)
	return err
}
