package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	zlogger "github.com/0chain/bucketxfer/logger"
	"github.com/0chain/bucketxfer/model"
	"github.com/0chain/bucketxfer/types"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	awsS3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

const (
	uploadPartSize    = 16 * 1024 * 1024
	uploadConcurrency = 4
)

// s3API is the subset of *awsS3.Client used here.
type s3API interface {
	ListObjectsV2(ctx context.Context, params *awsS3.ListObjectsV2Input, optFns ...func(*awsS3.Options)) (*awsS3.ListObjectsV2Output, error)
	HeadObject(ctx context.Context, params *awsS3.HeadObjectInput, optFns ...func(*awsS3.Options)) (*awsS3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *awsS3.GetObjectInput, optFns ...func(*awsS3.Options)) (*awsS3.GetObjectOutput, error)
	manager.UploadAPIClient
}

var _ s3API = (*awsS3.Client)(nil)

type AwsClient struct {
	bucket   string
	region   string
	client   s3API
	uploader *manager.Uploader
}

func GetAwsClient(ctx context.Context, cfg model.EndpointConfig) (*AwsClient, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx,
		awsConfig.WithRegion(cfg.Region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("configuration error %v region: %v", err, cfg.Region)
	}

	client := awsS3.NewFromConfig(awsCfg, func(o *awsS3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			// third-party providers reject the default trailing checksums
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
			o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})

	zlogger.Logger.Infof("Aws client initialized with bucket: %v, region: %v, endpoint: %v, pathStyle: %v",
		cfg.BucketName, cfg.Region, cfg.EndpointURL, cfg.ForcePathStyle)

	return newAwsClient(cfg.BucketName, cfg.Region, client), nil
}

func newAwsClient(bucket, region string, client s3API) *AwsClient {
	return &AwsClient{
		bucket: bucket,
		region: region,
		client: client,
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.PartSize = uploadPartSize
			u.Concurrency = uploadConcurrency
		}),
	}
}

func (a *AwsClient) Name() string {
	return a.bucket
}

func (a *AwsClient) ListPage(ctx context.Context, token string, pageSize int) (*types.ObjectPage, error) {
	input := &awsS3.ListObjectsV2Input{
		Bucket:  aws.String(a.bucket),
		MaxKeys: aws.Int32(int32(pageSize)),
	}
	if token != "" {
		input.ContinuationToken = aws.String(token)
	}

	out, err := a.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, err
	}

	page := &types.ObjectPage{
		Objects:   make([]types.ObjectRecord, 0, len(out.Contents)),
		NextToken: aws.ToString(out.NextContinuationToken),
	}
	for _, obj := range out.Contents {
		page.Objects = append(page.Objects, types.ObjectRecord{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
			ETag:         aws.ToString(obj.ETag),
		})
	}
	return page, nil
}

func (a *AwsClient) Exists(ctx context.Context, key string) (bool, error) {
	_, err := a.client.HeadObject(ctx, &awsS3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (a *AwsClient) GetObject(ctx context.Context, key string) (*types.Object, error) {
	out, err := a.client.GetObject(ctx, &awsS3.GetObjectInput{Bucket: aws.String(a.bucket), Key: aws.String(key)})
	if err != nil {
		return nil, err
	}

	return &types.Object{
		Body:          out.Body,
		ContentType:   aws.ToString(out.ContentType),
		ContentLength: aws.ToInt64(out.ContentLength),
		Metadata:      out.Metadata,
	}, nil
}

func (a *AwsClient) PutObject(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string, metadata map[string]string) error {
	input := &awsS3.PutObjectInput{
		Bucket:   aws.String(a.bucket),
		Key:      aws.String(key),
		Body:     body,
		Metadata: metadata,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	zlogger.Logger.Debugf("uploading %v (%d bytes) to %v", key, size, a.bucket)

	_, err := a.uploader.Upload(ctx, input)
	return err
}

func isNotFound(err error) bool {
	var notFound *s3types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *s3types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}
