package storage

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store archives uploaded medical images to an S3-compatible bucket.
// Archiving is optional; when enabled, the image is copied out before
// the local temp file is removed. Analysis results are never stored.
type Store struct {
	client     *minio.Client
	bucketName string
	region     string
}

func New(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*Store, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &Store{client: cli, bucketName: bucket, region: region}, nil
}

// Archive uploads the image under key with its original MIME type.
func (s *Store) Archive(ctx context.Context, localPath, key, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.FPutObject(ctx, s.bucketName, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("http://%s/%s/%s", s.client.EndpointURL().Host, s.bucketName, key), nil
}

// ArchiveAndRemove uploads the image, then removes the local temp file.
// The removal must happen even when the upload fails: the boundary
// guarantees temp cleanup on every path.
func (s *Store) ArchiveAndRemove(ctx context.Context, localPath, key, contentType string) (string, error) {
	url, archiveErr := s.Archive(ctx, localPath, key, contentType)
	if err := os.Remove(localPath); err != nil {
		log.Printf("warning: failed to remove local file %s: %v", localPath, err)
	}
	return url, archiveErr
}
