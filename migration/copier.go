package migration

import (
	"context"
	"fmt"

	zlogger "github.com/0chain/bucketxfer/logger"
	"github.com/0chain/bucketxfer/s3"
	"github.com/0chain/bucketxfer/types"
	"github.com/0chain/bucketxfer/util"
	zerror "github.com/0chain/bucketxfer/zErrors"
)

// Copier moves single objects from source to destination by key.
type Copier struct {
	source      s3.Bucket
	destination s3.Bucket
	worker      *MigrationWorker
	retry       retryPolicy
}

func NewCopier(source, destination s3.Bucket, worker *MigrationWorker, retryCount int) *Copier {
	return &Copier{
		source:      source,
		destination: destination,
		worker:      worker,
		retry:       retryPolicy{retries: retryCount},
	}
}

// Exists checks the destination for key. A missing object is (false, nil);
// every other failure is returned as an error.
func (c *Copier) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := c.retry.do(ctx, func() error {
		var err error
		exists, err = c.destination.Exists(ctx, key)
		return err
	})
	return exists, err
}

// Copy never returns an error: every failure is folded into a Failed outcome
// for this key only.
func (c *Copier) Copy(ctx context.Context, rec types.ObjectRecord) types.TransferOutcome {
	if rec.IsDirectoryMarker() {
		zlogger.Logger.Infof("Skipping %v - directory marker", rec.Key)
		return types.SkippedOutcome(rec.Key)
	}

	c.worker.CopyStart()
	defer c.worker.CopyDone()

	exists, err := c.Exists(ctx, rec.Key)
	if err != nil {
		err = zerror.New(zerror.ExistenceCheckFailedErrCode, err.Error())
		zlogger.Logger.Error("Error transferring ", rec.Key, ": ", err)
		return types.FailedOutcome(rec.Key, err)
	}
	if exists {
		zlogger.Logger.Infof("Skipping %v - already exists", rec.Key)
		return types.SkippedOutcome(rec.Key)
	}

	var written int64
	err = c.retry.do(ctx, func() error {
		var err error
		written, err = c.transfer(ctx, rec)
		return err
	})
	if err != nil {
		zlogger.Logger.Error("Error transferring ", rec.Key, ": ", err)
		return types.FailedOutcome(rec.Key, err)
	}

	zlogger.Logger.Infof("Transferred: %v (%v)", rec.Key, util.FormatBytes(rec.Size))
	return types.TransferredOutcome(rec.Key, written)
}

func (c *Copier) transfer(ctx context.Context, rec types.ObjectRecord) (int64, error) {
	obj, err := c.source.GetObject(ctx, rec.Key)
	if err != nil {
		return 0, zerror.New(zerror.FetchFailedErrCode, err.Error())
	}
	if obj.Body == nil {
		return 0, zerror.New(zerror.FetchFailedErrCode, "empty response body")
	}

	f, size, release, err := c.worker.Spool(rec.Key, obj.Body)
	obj.Body.Close()
	if err != nil {
		return 0, zerror.New(zerror.FetchFailedErrCode, fmt.Sprintf("reading body: %v", err))
	}
	defer release()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = rec.ContentType
	}
	metadata := obj.Metadata
	if metadata == nil {
		metadata = rec.Metadata
	}

	if err := c.destination.PutObject(ctx, rec.Key, f, size, contentType, metadata); err != nil {
		return 0, zerror.New(zerror.WriteFailedErrCode, err.Error())
	}
	return size, nil
}
