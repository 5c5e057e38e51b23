// Package object talks to the object-storage collaborator holding
// incident images. The service only hands out presigned PUT URLs; the
// upload itself happens between the client and the store.
package object

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/mufaddal-lashkar/safirah-server/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type ImageStore struct {
	client *minio.Client
	bucket string
	expiry time.Duration
	logger *slog.Logger
}

func NewImageStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ImageStore, error) {
	client, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
		Secure: cfg.Minio.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Minio.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Minio.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
		logger.Info("Created bucket", slog.String("bucket", cfg.Minio.Bucket))
	}

	return &ImageStore{
		client: client,
		bucket: cfg.Minio.Bucket,
		expiry: cfg.Minio.PresignCD,
		logger: logger,
	}, nil
}

// PresignUpload returns the object key and a time-limited PUT URL for it.
func (s *ImageStore) PresignUpload(ctx context.Context, userID uuid.UUID) (string, *url.URL, error) {
	key := fmt.Sprintf("incidents/%s/%s", userID, uuid.New())

	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, s.expiry)
	if err != nil {
		s.logger.Error("presign put failed", slog.String("key", key), slog.Any("error", err))
		return "", nil, fmt.Errorf("presign put: %w", err)
	}
	return key, u, nil
}
