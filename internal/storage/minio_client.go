package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"noticeboard/internal/config"
)

// Storage keeps article image objects.
type Storage interface {
	UploadImage(ctx context.Context, articleID int64, fileName string, file io.Reader, size int64) (objectName string, imageURL string, err error)
	DeleteImage(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client *minio.Client
	config config.MinIO
}

// NewMinIOClient connects to MinIO and creates the image bucket when it does
// not exist yet.
func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.BucketName, err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.BucketName, err)
		}
	}

	return &MinIOClient{client: client, config: cfg}, nil
}

// ObjectName builds the key an uploaded image is stored under.
func ObjectName(articleID int64, fileName string, now time.Time) string {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	return fmt.Sprintf("articles/%d/%d/%02d/%s%s",
		articleID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		fileExt)
}

// ContentType guesses the MIME type from the file extension.
func ContentType(fileName string) string {
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName)))
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}

// ObjectURL returns the public URL of an object in the bucket.
func ObjectURL(cfg config.MinIO, objectName string) string {
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, cfg.Endpoint, cfg.BucketName, objectName)
}

func (m *MinIOClient) UploadImage(ctx context.Context, articleID int64, fileName string, file io.Reader, size int64) (string, string, error) {
	now := time.Now()
	objectName := ObjectName(articleID, fileName, now)

	_, err := m.client.PutObject(ctx, m.config.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: ContentType(fileName),
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"article-id":        fmt.Sprint(articleID),
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("upload to minio: %w", err)
	}

	return objectName, ObjectURL(m.config, objectName), nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.config.BucketName, objectName,
		minio.RemoveObjectOptions{
			GovernanceBypass: true,
		})
	if err != nil {
		return fmt.Errorf("delete from minio: %w", err)
	}
	return nil
}
