package media

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// MinioStorage implements Storage against a MinIO / S3-compatible bucket
type MinioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinioStorage connects to the object store
func NewMinioStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect to object store")
	}
	return &MinioStorage{client: client, bucket: bucket}, nil
}

// Remove deletes an object by id
func (s *MinioStorage) Remove(ctx context.Context, objectID string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectID, minio.RemoveObjectOptions{})
	return errors.Wrapf(err, "remove object %s", objectID)
}
