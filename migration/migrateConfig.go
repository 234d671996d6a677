package migration

import (
	"fmt"
	"time"

	zerror "github.com/0chain/bucketxfer/zErrors"
)

const (
	DefaultBatchSize     = 100
	DefaultMaxConcurrent = 10
	DefaultBatchPause    = time.Second
)

type MigrationConfig struct {
	// BatchSize is the listing page size.
	BatchSize int
	// MaxConcurrent is the width of each copy window.
	MaxConcurrent int
	// BatchPause is slept between windows, never after the last one.
	BatchPause time.Duration
	// RetryCount is the number of extra attempts per storage call. 0 disables retries.
	RetryCount int
	WorkDir    string
}

func (c MigrationConfig) validate() error {
	if c.BatchSize <= 0 {
		return zerror.New(zerror.InvalidConfigErrCode, fmt.Sprintf("batch size must be positive, got %d", c.BatchSize))
	}
	if c.MaxConcurrent <= 0 {
		return zerror.New(zerror.InvalidConfigErrCode, fmt.Sprintf("max concurrent must be positive, got %d", c.MaxConcurrent))
	}
	if c.RetryCount < 0 {
		return zerror.New(zerror.InvalidConfigErrCode, fmt.Sprintf("retry count must not be negative, got %d", c.RetryCount))
	}
	if c.WorkDir == "" {
		return zerror.New(zerror.InvalidConfigErrCode, "work dir is required")
	}
	return nil
}
