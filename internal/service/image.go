package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/forkful/backend/config"
)

// ErrNoFile is returned when an upload request carries no file.
var ErrNoFile = errors.New("no file provided")

// ImageKind namespaces stored objects by what they illustrate.
type ImageKind string

const (
	RecipeImage ImageKind = "recipes"
	AvatarImage ImageKind = "avatars"
)

// S3API is the slice of the S3 client the image service uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// ImageService stores uploaded images in S3 and returns their public
// addresses. Object keys embed the owner and a millisecond timestamp;
// two uploads landing on the same millisecond is an accepted collision
// risk, surfaced as a store error rather than an overwrite.
type ImageService struct {
	client S3API
	bucket string
}

// NewImageService creates a new ImageService instance.
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{
		client: s3Config.Client,
		bucket: s3Config.BucketName,
	}
}

// Upload stores the file under a key derived from the owning user, the
// current time and the original file extension, refusing to overwrite an
// existing object. It returns the stored object's public address.
func (s *ImageService) Upload(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader, kind ImageKind) (string, error) {
	if file == nil {
		return "", ErrNoFile
	}

	key := s.objectKey(userID, file.Filename, kind)

	if exists, err := s.objectExists(ctx, key); err != nil {
		return "", fmt.Errorf("failed to check for existing object: %w", err)
	} else if exists {
		return "", fmt.Errorf("object already exists at %s", key)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() { _ = src.Close() }()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(file.Size),
		CacheControl:  aws.String("max-age=3600"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
	log.Printf("[ImageService] Stored image at %s", publicURL)
	return publicURL, nil
}

// objectKey derives a collision-resistant storage path from the identity,
// current time and original file extension.
func (s *ImageService) objectKey(userID uuid.UUID, filename string, kind ImageKind) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s/%d.%s", kind, userID, time.Now().UnixMilli(), ext)
}

func (s *ImageService) objectExists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
