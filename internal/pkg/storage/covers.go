// Package storage keeps article cover images in an S3-compatible
// object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pressroom/newshub/internal/pkg/env"
)

const coverBucket = "covers"

// CoverStore uploads and removes article cover images.
type CoverStore interface {
	UploadCover(ctx context.Context, articleID uint, fileName string, file io.Reader, size int64) (string, string, error)
	DeleteCover(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client    *minio.Client
	publicURL string
}

var (
	globalStore *MinIOClient
	storeOnce   sync.Once
	storeErr    error
)

// GetCoverStore returns the shared MinIO-backed cover store.
func GetCoverStore() (CoverStore, error) {
	storeOnce.Do(func() {
		globalStore, storeErr = newMinIOClient()
	})
	return globalStore, storeErr
}

func newMinIOClient() (*MinIOClient, error) {
	endpoint := env.GetEnv("MINIO_ENDPOINT", "localhost:9000")
	accessKey := env.GetEnv("MINIO_ACCESS_KEY", "")
	secretKey := env.GetEnv("MINIO_SECRET_KEY", "")
	useSSL := env.GetEnv("MINIO_USE_SSL", "false") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to object storage: %w", err)
	}

	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	publicURL := env.GetEnv("MINIO_PUBLIC_URL", fmt.Sprintf("%s://%s", scheme, endpoint))

	return &MinIOClient{
		client:    client,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// UploadCover stores one cover image and returns the object name plus
// its public URL.
func (m *MinIOClient) UploadCover(ctx context.Context, articleID uint, fileName string, file io.Reader, size int64) (string, string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now()
	objectName := fmt.Sprintf("articles/%d/%d/%02d/%s%s",
		articleID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		fileExt)

	_, err := m.client.PutObject(ctx, coverBucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"article-id":        fmt.Sprintf("%d", articleID),
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload cover image: %w", err)
	}

	coverURL := fmt.Sprintf("%s/%s/%s", m.publicURL, coverBucket, objectName)

	return objectName, coverURL, nil
}

// DeleteCover removes a cover image from the store.
func (m *MinIOClient) DeleteCover(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, coverBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete cover image: %w", err)
	}
	return nil
}
