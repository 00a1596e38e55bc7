// Package storage provides the object storage layer for course materials.
//
// # Overview
//
// This package defines the ObjectStore abstraction and its two implementations:
// an S3-compatible backend used in real deployments and a mock backend that
// serves deterministic URLs when no object storage is configured. The selection
// between the two happens once, at construction time, based on whether the
// configuration carries S3 credentials.
//
// # ObjectStore Interface
//
//	type ObjectStore interface {
//		List(ctx context.Context) ([]ObjectInfo, error)
//		SignURL(ctx context.Context, key string) (string, error)
//		HealthCheck(ctx context.Context) error
//		Backend() string
//	}
//
// # S3 Backend
//
// S3Store talks to any S3-compatible endpoint (AWS, MinIO, Supabase storage)
// through the AWS SDK v2. Listings use ListObjectsV2 with pagination, and
// download URLs are presigned GET requests with a bounded lifetime. Presigned
// URLs are memoized in an in-process expirable LRU so repeated listings do not
// re-sign every object.
//
// # Mock Backend
//
// MockStore serves a fixed set of sample materials and builds URLs by joining
// the configured base URL with the object name. It never fails, which keeps
// local development working without any storage credentials.
//
// # Listing Cache
//
// ListingCache stores serialized listings in Redis with a short TTL. It is a
// read-through cache: callers consult it first and fall back to the store on
// a miss. Losing Redis only costs latency, never correctness.
//
// # Related Packages
//
//   - pkg/storage/postgres: Relational persistence for user accounts
//   - pkg/api: Materials endpoints built on this layer
package storage
