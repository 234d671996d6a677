package s3

import (
	"context"
	"fmt"

	"github.com/0chain/bucketxfer/model"
)

// NewBucket builds the client for cfg.Driver; an empty driver means aws.
func NewBucket(ctx context.Context, cfg model.EndpointConfig) (Bucket, error) {
	switch cfg.Driver {
	case "", model.DriverAWS:
		c, err := GetAwsClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	case model.DriverMinio:
		c, err := GetMinioClient(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q for %v", cfg.Driver, cfg.Name)
}
