package controller

import (
	"context"

	"github.com/0chain/bucketxfer/model"
	"github.com/0chain/bucketxfer/s3"
)

const (
	DefaultSourceRegion      = "nyc3"
	DefaultDestinationRegion = "us-east-1"
)

func GetDefaultRegion(side model.Side, region string) string {
	if region != "" {
		return region
	}
	if side == model.SideSource {
		return DefaultSourceRegion
	}
	return DefaultDestinationRegion
}

var newBucket = s3.NewBucket

func openBucket(ctx context.Context, side model.Side, cfg model.EndpointConfig) (s3.Bucket, error) {
	cfg.Region = GetDefaultRegion(side, cfg.Region)
	if cfg.Name == "" {
		cfg.Name = string(side)
	}
	return newBucket(ctx, cfg)
}
