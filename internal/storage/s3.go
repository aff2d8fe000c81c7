package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/apperror"
	appconfig "github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader puts images into an S3-compatible bucket.
type S3Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Uploader(ctx context.Context, cfg *appconfig.Config) (*S3Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.S3Region)}
	if cfg.S3AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load object storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = cfg.S3UsePathStyle
	})

	return &S3Uploader{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: publicBucketURL(cfg),
	}, nil
}

// publicBucketURL is the prefix objects are readable under.
func publicBucketURL(cfg *appconfig.Config) string {
	switch {
	case cfg.S3PublicURL != "":
		return strings.TrimRight(cfg.S3PublicURL, "/")
	case cfg.S3Endpoint != "" && cfg.S3UsePathStyle:
		return strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	case cfg.S3Endpoint != "":
		ep := strings.TrimRight(cfg.S3Endpoint, "/")
		if i := strings.Index(ep, "://"); i >= 0 {
			return ep[:i+3] + cfg.S3Bucket + "." + ep[i+3:]
		}
		return cfg.S3Bucket + "." + ep
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}
}

func (u *S3Uploader) Upload(ctx context.Context, folder string, img *Image) (string, error) {
	key := objectKey(folder, newObjectName(img))
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(img.Data),
		ContentType:   aws.String(img.ContentType),
		ContentLength: aws.Int64(int64(len(img.Data))),
	})
	if err != nil {
		return "", apperror.Internal("failed to upload image", err)
	}
	return u.publicURL + "/" + key, nil
}
