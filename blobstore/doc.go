// Package blobstore provides the storage abstraction behind dataset loading.
//
// BlobStore is the interface for reading and writing whole array files.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with atomic writes
//   - MemoryStore: in-memory, for tests
//   - minio.Store: MinIO and S3-compatible object storage
//   - s3.Store: Amazon S3 with managed uploads
//
// Implementations return an error satisfying errors.Is(err, ErrNotFound)
// when a named blob does not exist.
package blobstore
