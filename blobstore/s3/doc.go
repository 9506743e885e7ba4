// Package s3 implements blobstore.BlobStore for Amazon S3.
//
// Writes go through the S3 transfer manager so large array files upload in
// parallel parts.
package s3
