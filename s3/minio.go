package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	zlogger "github.com/0chain/bucketxfer/logger"
	"github.com/0chain/bucketxfer/model"
	"github.com/0chain/bucketxfer/types"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultMinioHost = "s3.amazonaws.com"

// MinioClient talks to S3-compatible providers through minio-go.
type MinioClient struct {
	bucket string
	core   *minio.Core
}

func GetMinioClient(cfg model.EndpointConfig) (*MinioClient, error) {
	host, secure, err := parseEndpoint(cfg.EndpointURL)
	if err != nil {
		return nil, err
	}

	lookup := minio.BucketLookupAuto
	if cfg.ForcePathStyle {
		lookup = minio.BucketLookupPath
	}

	core, err := minio.NewCore(host, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       secure,
		Region:       cfg.Region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, err
	}

	zlogger.Logger.Infof("Minio client initialized with bucket: %v, region: %v, host: %v, secure: %v",
		cfg.BucketName, cfg.Region, host, secure)

	return &MinioClient{bucket: cfg.BucketName, core: core}, nil
}

// parseEndpoint turns an endpoint URL into the host form minio expects.
// A missing scheme is treated as https.
func parseEndpoint(endpoint string) (host string, secure bool, err error) {
	if endpoint == "" {
		return defaultMinioHost, true, nil
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("invalid endpoint %q: missing host", endpoint)
	}
	if u.Path != "" && u.Path != "/" {
		return "", false, fmt.Errorf("invalid endpoint %q: path not allowed", endpoint)
	}
	return u.Host, u.Scheme == "https", nil
}

func (m *MinioClient) Name() string {
	return m.bucket
}

func (m *MinioClient) ListPage(ctx context.Context, token string, pageSize int) (*types.ObjectPage, error) {
	res, err := m.core.ListObjectsV2(m.bucket, "", "", token, "", pageSize)
	if err != nil {
		return nil, err
	}

	page := &types.ObjectPage{Objects: make([]types.ObjectRecord, 0, len(res.Contents))}
	for _, obj := range res.Contents {
		page.Objects = append(page.Objects, types.ObjectRecord{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
			ETag:         obj.ETag,
		})
	}
	if res.IsTruncated {
		page.NextToken = res.NextContinuationToken
	}
	return page, nil
}

func (m *MinioClient) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.core.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		switch minio.ToErrorResponse(err).Code {
		case "NoSuchKey", "NotFound":
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *MinioClient) GetObject(ctx context.Context, key string) (*types.Object, error) {
	body, info, _, err := m.core.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}

	return &types.Object{
		Body:          body,
		ContentType:   info.ContentType,
		ContentLength: info.Size,
		Metadata:      map[string]string(info.UserMetadata),
	}, nil
}

func (m *MinioClient) PutObject(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string, metadata map[string]string) error {
	_, err := m.core.Client.PutObject(ctx, m.bucket, key, body, size, minio.PutObjectOptions{
		ContentType:  contentType,
		UserMetadata: metadata,
	})
	return err
}
