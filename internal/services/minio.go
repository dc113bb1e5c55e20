package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/url"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

const (
	MaxImageSize   = 5 << 20
	imageURLExpiry = 24 * time.Hour
)

var (
	ErrImageStoreDisabled = errors.New("image storage is not configured")
	ErrUnsupportedImage   = errors.New("unsupported image type")
	ErrImageTooLarge      = errors.New("image exceeds 5 MB")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageStore keeps product images in a MinIO bucket. Products reference
// images by object key.
type ImageStore struct {
	client *minio.Client
	bucket string
}

func NewImageStore(client *minio.Client, bucket string) *ImageStore {
	if client == nil {
		return nil
	}
	return &ImageStore{client: client, bucket: bucket}
}

// ImageKey builds the object key of a new image of productID.
func ImageKey(productID uint, contentType string) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}
	return fmt.Sprintf("products/%d/%s%s", productID, uuid.NewString(), ext), nil
}

// Upload sniffs the file type, stores it and returns its object key.
func (s *ImageStore) Upload(ctx context.Context, productID uint, file *multipart.FileHeader) (string, error) {
	if s == nil {
		return "", ErrImageStoreDisabled
	}
	if file.Size > MaxImageSize {
		return "", ErrImageTooLarge
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	contentType := mtype.String()
	if parent := mtype.Parent(); parent != nil && imageExtensions[contentType] == "" {
		contentType = parent.String()
	}

	key, err := ImageKey(productID, contentType)
	if err != nil {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	if _, err := s.client.PutObject(ctx, s.bucket, key, f, file.Size,
		minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("minio upload: %w", err)
	}
	log.Printf("🪣 Image stored: %s/%s", s.bucket, key)
	return key, nil
}

// Remove deletes an image; an empty key is ignored.
func (s *ImageStore) Remove(ctx context.Context, key string) error {
	if s == nil || key == "" {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// URL returns a presigned download URL for key. Without a configured store
// the key itself is returned.
func (s *ImageStore) URL(ctx context.Context, key string) string {
	if s == nil || key == "" {
		return key
	}
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, imageURLExpiry, url.Values{})
	if err != nil {
		log.Printf("⚠️ Presign %s failed: %v", key, err)
		return ""
	}
	return u.String()
}
