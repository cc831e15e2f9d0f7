// Package minio implements blobstore.BlobStore with the MinIO client, for
// MinIO and other S3-compatible servers.
//
//	store, err := minio.New("localhost:9000", "datasets", minio.Options{
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	})
package minio
