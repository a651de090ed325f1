package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location"`
	ETag     string `json:"etag,omitempty"`
}

// Uploader stores public objects such as team logos.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
}

type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	PublicBaseURL   string
	// Endpoint targets an S3-compatible store instead of AWS.
	Endpoint string
}

type S3Uploader struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

func NewS3Uploader(cfg S3Config) (*S3Uploader, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.Region == "" {
		return nil, errors.New("s3 credentials and region are required")
	}
	if cfg.Bucket == "" || cfg.PublicBaseURL == "" {
		return nil, errors.New("s3 bucket and public base url are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (*UploadResult, error) {
	result, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	etag := ""
	if result.ETag != nil {
		etag = strings.Trim(*result.ETag, `"`)
	}

	location, err := PublicURL(u.publicBaseURL, key)
	if err != nil {
		return nil, err
	}
	return &UploadResult{Key: key, Location: location, ETag: etag}, nil
}

func (u *S3Uploader) Delete(ctx context.Context, key string) error {
	if _, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// PublicURL joins key onto the bucket's public base URL.
func PublicURL(baseURL, key string) (string, error) {
	if baseURL == "" || key == "" {
		return "", errors.New("base url and key are required")
	}
	joined, err := url.JoinPath(baseURL, strings.TrimPrefix(key, "/"))
	if err != nil {
		return "", fmt.Errorf("build public url: %w", err)
	}
	return joined, nil
}

// LogoKey returns a unique object key such as "logos/team/12/<uuid>.png".
func LogoKey(kind string, id int64, contentType string) string {
	return fmt.Sprintf("logos/%s/%d/%s%s", kind, id, uuid.NewString(), extensionFor(contentType))
}
