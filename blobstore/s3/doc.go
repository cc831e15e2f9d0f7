// Package s3 implements blobstore.BlobStore on Amazon S3.
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("datasets/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
// Reads use ranged GetObject requests. Writes go through the S3 upload
// manager, which switches to multipart uploads for large reports.
package s3
