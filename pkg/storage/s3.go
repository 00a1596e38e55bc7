package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/edustack/platform/pkg/observability"
)

var tracer = otel.Tracer("edustack/storage")

// S3Store serves course materials from an S3-compatible bucket
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	config  Config
	logger  *observability.Logger
	metrics *observability.Metrics

	// urlCache memoizes presigned URLs for half their lifetime so a
	// cached URL always has time left when the client uses it.
	urlCache *lru.LRU[string, string]
}

// NewS3Store creates a new S3-backed object store
func NewS3Store(cfg Config, logger *observability.Logger, metrics *observability.Metrics) (*S3Store, error) {
	ctx := context.Background()

	var awsCfg aws.Config
	var err error

	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		// Static credentials for MinIO, Supabase, or AWS with explicit keys
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.S3Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.S3AccessKey,
				cfg.S3SecretKey,
				"",
			)),
		)
	} else {
		// Default credential chain (IAM roles, env vars)
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.S3Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		if cfg.S3UsePathStyle {
			o.UsePathStyle = true
		}
	})

	cacheSize := cfg.URLCacheSize
	if cacheSize <= 0 {
		cacheSize = DefaultConfig().URLCacheSize
	}
	presignTTL := cfg.PresignTTL
	if presignTTL <= 0 {
		presignTTL = DefaultConfig().PresignTTL
	}
	cfg.PresignTTL = presignTTL

	return &S3Store{
		client:   client,
		presign:  s3.NewPresignClient(client),
		bucket:   cfg.S3Bucket,
		config:   cfg,
		logger:   logger.WithField("component", "s3_store"),
		metrics:  metrics,
		urlCache: lru.NewLRU[string, string](cacheSize, nil, presignTTL/2),
	}, nil
}

// Backend names the implementation
func (s *S3Store) Backend() string {
	return "s3"
}

// List returns all objects in the bucket, following pagination
func (s *S3Store) List(ctx context.Context) ([]ObjectInfo, error) {
	ctx, span := tracer.Start(ctx, "S3Store.List",
		trace.WithAttributes(
			attribute.String("s3.bucket", s.bucket),
		),
	)
	defer span.End()

	start := time.Now()
	var objects []ObjectInfo

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to list objects")
			s.recordError("list")
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			info := ObjectInfo{
				Key: aws.ToString(obj.Key),
			}
			if obj.Size != nil {
				info.Size = *obj.Size
			}
			if obj.LastModified != nil {
				info.LastModified = *obj.LastModified
			}
			objects = append(objects, info)
		}
	}

	span.SetAttributes(attribute.Int("s3.object_count", len(objects)))
	span.SetStatus(codes.Ok, "objects listed")
	s.recordOp("list", time.Since(start))
	return objects, nil
}

// SignURL returns a presigned GET URL for the given object
func (s *S3Store) SignURL(ctx context.Context, key string) (string, error) {
	if url, ok := s.urlCache.Get(key); ok {
		if s.metrics != nil {
			s.metrics.CacheHitsTotal.WithLabelValues("presign_url").Inc()
		}
		return url, nil
	}
	if s.metrics != nil {
		s.metrics.CacheMissesTotal.WithLabelValues("presign_url").Inc()
	}

	ctx, span := tracer.Start(ctx, "S3Store.SignURL",
		trace.WithAttributes(
			attribute.String("s3.bucket", s.bucket),
			attribute.String("s3.key", key),
		),
	)
	defer span.End()

	start := time.Now()
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.config.PresignTTL
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to presign object")
		s.recordError("presign")
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}

	s.urlCache.Add(key, req.URL)
	span.SetStatus(codes.Ok, "url presigned")
	s.recordOp("presign", time.Since(start))
	return req.URL, nil
}

// HealthCheck verifies bucket connectivity
func (s *S3Store) HealthCheck(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *S3Store) recordOp(op string, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.StorageOperationsTotal.WithLabelValues(op, "s3").Inc()
	s.metrics.StorageOperationDuration.WithLabelValues(op, "s3").Observe(elapsed.Seconds())
}

func (s *S3Store) recordError(op string) {
	if s.metrics == nil {
		return
	}
	s.metrics.StorageErrorsTotal.WithLabelValues(op, "s3").Inc()
}
