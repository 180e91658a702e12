package services

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"movie-catalog/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// PresignedUpload is what a client needs to PUT a poster image directly
// into the bucket.
type PresignedUpload struct {
	PresignedURL string    `json:"presigned_url"`
	PublicURL    string    `json:"public_url"`
	Object       string    `json:"object" example:"movies/1/poster_1a2b3c4d.jpg"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type MinIOService struct {
	client    *minio.Client
	bucket    string
	publicURL string
	expiry    time.Duration
	logger    *logrus.Logger
}

func NewMinIOService(cfg *config.MinIOConfig, logger *logrus.Logger) (*MinIOService, error) {
	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"bucket":   cfg.BucketName,
		"useSSL":   cfg.UseSSL,
	}).Info("MinIO client initialized successfully")

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http://"
		if cfg.UseSSL {
			scheme = "https://"
		}
		publicURL = scheme + endpoint
	}

	service := &MinIOService{
		client:    minioClient,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		expiry:    cfg.PresignExpiry,
		logger:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := service.ensureBucket(ctx, cfg.Region); err != nil {
		logger.WithError(err).Warn("Failed to configure bucket, but continuing...")
	}

	return service, nil
}

func (s *MinIOService) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		s.logger.WithField("bucket", s.bucket).Info("Bucket created successfully")
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [
			{
				"Effect": "Allow",
				"Principal": {"AWS": ["*"]},
				"Action": ["s3:GetObject"],
				"Resource": ["arn:aws:s3:::%s/movies/*"]
			}
		]
	}`, s.bucket)

	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}

	s.logger.WithField("bucket", s.bucket).Info("Bucket policy set to public read")
	return nil
}

// PresignPosterUpload returns a presigned PUT URL for a new poster object
// under the movie's prefix.
func (s *MinIOService) PresignPosterUpload(ctx context.Context, movieID uint, filename string) (*PresignedUpload, error) {
	object := posterObjectName(movieID, filename, uuid.New())

	presignedURL, err := s.client.PresignedPutObject(ctx, s.bucket, object, s.expiry)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate presigned URL")
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"movie_id": movieID,
		"object":   object,
		"expiry":   s.expiry,
	}).Info("Generated presigned URL")

	return &PresignedUpload{
		PresignedURL: presignedURL.String(),
		PublicURL:    fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, object),
		Object:       object,
		ExpiresAt:    time.Now().UTC().Add(s.expiry),
	}, nil
}

// RemovePosters deletes every object stored under the movie's prefix.
func (s *MinIOService) RemovePosters(ctx context.Context, movieID uint) error {
	prefix := posterPrefix(movieID)

	var removed int
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return fmt.Errorf("failed to list posters: %w", obj.Err)
		}
		if err := s.client.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			s.logger.WithError(err).WithField("object", obj.Key).Error("Failed to delete file")
			return fmt.Errorf("failed to delete file: %w", err)
		}
		removed++
	}

	s.logger.WithFields(logrus.Fields{
		"movie_id": movieID,
		"removed":  removed,
	}).Info("Posters deleted from MinIO")
	return nil
}

func posterPrefix(movieID uint) string {
	return fmt.Sprintf("movies/%d/", movieID)
}

// posterObjectName keeps the client's base name for readability and adds a
// short random suffix so uploads never overwrite each other.
func posterObjectName(movieID uint, filename string, id uuid.UUID) string {
	base := path.Base(filepath.ToSlash(filename))
	ext := strings.ToLower(filepath.Ext(base))
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ' || r == '.':
			return '_'
		}
		return -1
	}, name)
	if name == "" {
		name = "poster"
	}
	return fmt.Sprintf("%s%s_%s%s", posterPrefix(movieID), name, id.String()[:8], ext)
}
