package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hupe1980/clusteval"
	"github.com/hupe1980/clusteval/blobstore"
	"github.com/hupe1980/clusteval/blobstore/minio"
	"github.com/hupe1980/clusteval/blobstore/s3"
)

// storeFactory opens the store behind a bucket.
type storeFactory func(ctx context.Context, bucket string) (blobstore.BlobStore, error)

func (a *app) defaultStores() map[string]storeFactory {
	return map[string]storeFactory{
		"s3": func(ctx context.Context, bucket string) (blobstore.BlobStore, error) {
			var opts []func(*s3.Options)
			if a.cfg.S3.Region != "" {
				opts = append(opts, s3.WithRegion(a.cfg.S3.Region))
			}
			if a.cfg.S3.Endpoint != "" {
				opts = append(opts, s3.WithEndpoint(a.cfg.S3.Endpoint))
			}
			store, err := s3.New(ctx, bucket, opts...)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
		"minio": func(_ context.Context, bucket string) (blobstore.BlobStore, error) {
			if a.cfg.MinIO.Endpoint == "" {
				return nil, fmt.Errorf("%w: minio.endpoint is not set", clusteval.ErrInvalidArguments)
			}
			store, err := minio.New(a.cfg.MinIO.Endpoint, bucket, minio.Options{
				AccessKey: a.cfg.MinIO.AccessKey,
				SecretKey: a.cfg.MinIO.SecretKey,
				Region:    a.cfg.MinIO.Region,
				Secure:    a.cfg.MinIO.Secure,
			})
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	}
}

// resolve maps a location to a store and a blob name within it.
//
//	data/points.txt          local file
//	file:///tmp/points.txt   local file
//	s3://bucket/points.txt   object in bucket
func (a *app) resolve(ctx context.Context, uri string) (blobstore.BlobStore, string, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok || scheme == "file" {
		if ok {
			uri = rest
		}
		if uri == "" {
			return nil, "", fmt.Errorf("%w: empty path", clusteval.ErrInvalidArguments)
		}
		return blobstore.NewLocalStore(filepath.Dir(uri)), filepath.Base(uri), nil
	}

	factory, known := a.stores[scheme]
	if !known {
		return nil, "", fmt.Errorf("%w: unsupported scheme %q", clusteval.ErrInvalidArguments, scheme)
	}

	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return nil, "", fmt.Errorf("%w: %q needs a bucket and a key", clusteval.ErrInvalidArguments, uri)
	}

	store, err := factory(ctx, bucket)
	if err != nil {
		return nil, "", err
	}
	return store, key, nil
}
