// Package blobstore reads datasets from and writes results to named blobs.
//
// Built-in implementations:
//
//   - LocalStore: local filesystem, mmap-backed reads, atomic writes
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3 (aws-sdk-go-v2)
//   - minio.Store: MinIO and other S3-compatible servers
//
// Blobs are read through NewReader, which streams from any Blob without
// loading it fully into memory first.
package blobstore
