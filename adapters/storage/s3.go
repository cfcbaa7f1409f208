package storage

import (
	"bytes"
	"context"
	"io"
	"strings"

	"burntest/internal/config"
	"burntest/internal/errors"
	"burntest/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

const reportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// s3API is the part of the S3 client the store uses
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Store keeps reports as objects under a key prefix of one bucket
type S3Store struct {
	client s3API
	bucket string
	prefix string
	logger *zap.Logger
}

var _ ports.ReportStore = (*S3Store)(nil)

// NewS3Client builds an S3 client from the default credential chain. A custom endpoint
// switches to path-style addressing.
func NewS3Client(ctx context.Context, cfg config.ReportConfig) (*s3.Client, error) {
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.Region))
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.UsePathStyle = true
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// NewS3Store creates a store over client
func NewS3Store(client s3API, bucket, prefix string, logger *zap.Logger) *S3Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3Store{client: client, bucket: bucket, prefix: prefix, logger: logger.Named("s3_reports")}
}

func (s *S3Store) Save(ctx context.Context, name string, content io.Reader) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	// the SDK signs the payload, so it needs a seekable body
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return errors.StorageError("failed to read report", err)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(reportContentType),
	})
	if err != nil {
		return errors.StorageError("failed to upload report", err)
	}
	s.logger.Debug("report uploaded", zap.String("key", s.key(name)), zap.Int("bytes", buf.Len()))
	return nil
}

// List returns the objects directly under the prefix
func (s *S3Store) List(ctx context.Context) ([]ports.ReportObject, error) {
	var objects []ports.ReportObject
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.StorageError("failed to list reports", err)
		}
		for _, obj := range page.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			if name == "" || strings.Contains(name, "/") {
				continue
			}
			objects = append(objects, ports.ReportObject{
				Name:      name,
				Size:      aws.ToInt64(obj.Size),
				CreatedAt: aws.ToTime(obj.LastModified),
			})
		}
	}
	return objects, nil
}

func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var missing *types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, errors.NotFound("report")
		}
		return nil, errors.StorageError("failed to download report", err)
	}
	return out.Body, nil
}

// Delete removes the object; DeleteObject succeeds for absent keys, so existence is
// checked first
func (s *S3Store) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	key := s.key(name)
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		var missing *types.NotFound
		if errors.As(err, &missing) {
			return errors.NotFound("report")
		}
		return errors.StorageError("failed to stat report", err)
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return errors.StorageError("failed to delete report", err)
	}
	s.logger.Debug("report deleted", zap.String("key", key))
	return nil
}

func (s *S3Store) key(name string) string {
	return s.prefix + name
}
