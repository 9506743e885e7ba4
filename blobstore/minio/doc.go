// Package minio implements blobstore.BlobStore for MinIO and S3-compatible
// object storage.
package minio
