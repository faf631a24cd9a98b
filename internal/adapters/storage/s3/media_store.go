// Package s3 stores uploaded media files in an S3-compatible bucket.
package s3

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vidora-app/vidora_backend/internal/apperrors"
	"github.com/vidora-app/vidora_backend/internal/dto"
	"github.com/vidora-app/vidora_backend/internal/platform/config"
	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
	"github.com/vidora-app/vidora_backend/internal/utils"
)

// keyRandomLength is the number of random characters in each object key.
const keyRandomLength = 24

type MediaStore struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

var _ portssvc.MediaStorage = (*MediaStore)(nil)

func NewMediaStore(ctx context.Context, cfg *config.Config) (*MediaStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			// MinIO and most self-hosted gateways only route path-style requests.
			o.UsePathStyle = true
		}
	})

	return &MediaStore{
		client:     client,
		bucket:     cfg.S3Bucket,
		publicBase: strings.TrimSuffix(cfg.MediaPublicBase, "/"),
	}, nil
}

// Store writes the upload under a random key inside folder and returns the
// public URL of the object. The original filename only contributes its
// extension, never its name.
func (m *MediaStore) Store(ctx context.Context, folder string, upload *dto.MediaUpload) (string, error) {
	if upload == nil || upload.Reader == nil {
		return "", fmt.Errorf("missing media upload: %w", apperrors.ErrValidation)
	}

	random, err := utils.GenerateSecureRandomString(keyRandomLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate object key: %w", err)
	}
	key := folder + "/" + random + strings.ToLower(path.Ext(upload.Filename))

	input := &s3.PutObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
		Body:   upload.Reader,
	}
	if upload.ContentType != "" {
		input.ContentType = aws.String(upload.ContentType)
	}
	if upload.Size > 0 {
		input.ContentLength = aws.Int64(upload.Size)
	}

	if _, err := m.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to store media object %s: %w", key, apperrors.ErrUpload)
	}

	return m.publicBase + "/" + key, nil
}
