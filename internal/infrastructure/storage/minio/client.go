// Package minio stores raw resume files in S3-compatible object storage.
package minio

import (
	"context"
	"fmt"
	"io"
	"time"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/turtacn/TalentMatch-AI/internal/config"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// Store wraps a minio client bound to the resume bucket.
type Store struct {
	client *miniogo.Client
	bucket string
}

// NewStore connects to object storage and ensures the resume bucket exists.
func NewStore(ctx context.Context, cfg config.MinioConfig) (*Store, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeStorageError, "create object storage client")
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeStorageError, "check bucket")
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, miniogo.MakeBucketOptions{}); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrCodeStorageError, "create bucket")
		}
	}
	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// ObjectKey builds the storage key for one resume file.
func ObjectKey(jobSeekerID, resumeID, fileName string) string {
	return fmt.Sprintf("resumes/%s/%s/%s", jobSeekerID, resumeID, fileName)
}

// Put uploads a resume file.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, miniogo.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeStorageError, "upload object")
	}
	return nil
}

// Get streams a stored resume file.  The caller closes the reader.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeStorageError, "fetch object")
	}
	return obj, nil
}

// Delete removes a stored resume file.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, miniogo.RemoveObjectOptions{}); err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeStorageError, "delete object")
	}
	return nil
}

// PresignedGetURL returns a time-limited download link for a stored file.
func (s *Store) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, nil)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrCodeStorageError, "presign download")
	}
	return u.String(), nil
}
