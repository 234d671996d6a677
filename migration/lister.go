package migration

import (
	"context"
	"fmt"

	zlogger "github.com/0chain/bucketxfer/logger"
	"github.com/0chain/bucketxfer/s3"
	"github.com/0chain/bucketxfer/types"
	zerror "github.com/0chain/bucketxfer/zErrors"
)

// ListAllObjects pages through the whole bucket and returns every record in
// the order the provider returned them. Any page error aborts the listing.
func ListAllObjects(ctx context.Context, bucket s3.Bucket, pageSize int) ([]types.ObjectRecord, error) {
	zlogger.Logger.Infof("Listing all objects in bucket: %v", bucket.Name())

	var (
		all   []types.ObjectRecord
		token string
	)
	for {
		page, err := bucket.ListPage(ctx, token, pageSize)
		if err != nil {
			zlogger.Logger.Error("Error listing objects: ", err)
			return nil, zerror.New(zerror.ListingFailedErrCode, fmt.Sprintf("listing %v: %v", bucket.Name(), err))
		}

		if len(page.Objects) > 0 {
			all = append(all, page.Objects...)
			zlogger.Logger.Infof("Found %d objects in this batch. Total so far: %d", len(page.Objects), len(all))
		}

		if page.NextToken == "" {
			break
		}
		if page.NextToken == token {
			return nil, zerror.New(zerror.ListingFailedErrCode,
				fmt.Sprintf("listing %v: continuation token %q did not advance", bucket.Name(), token))
		}
		token = page.NextToken
	}

	zlogger.Logger.Infof("Total objects found: %d", len(all))
	return all, nil
}
