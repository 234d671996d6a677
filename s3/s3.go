package s3

import (
	"context"
	"io"

	"github.com/0chain/bucketxfer/types"
)

// Bucket is one side of a transfer: a single bucket on an S3-compatible provider.
//
//go:generate mockgen -destination mocks/mock_bucket.go -package mock_s3 github.com/0chain/bucketxfer/s3 Bucket
type Bucket interface {
	Name() string
	// ListPage returns up to pageSize records starting at token. An empty token starts the listing.
	ListPage(ctx context.Context, token string, pageSize int) (*types.ObjectPage, error)
	// Exists reads metadata only. A missing key is (false, nil); any other failure is an error.
	Exists(ctx context.Context, key string) (bool, error)
	GetObject(ctx context.Context, key string) (*types.Object, error)
	PutObject(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string, metadata map[string]string) error
}
