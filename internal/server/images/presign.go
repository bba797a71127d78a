// Package images hands out presigned S3 upload URLs for listing photos.
// Browsers PUT the file straight to the bucket and then store the returned
// public URL as the listing's image.
package images

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/realty/internal/common"
	"github.com/google/uuid"
)

const uploadExpiry = 15 * time.Minute

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// seams for tests
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	now = time.Now
)

type Config struct {
	Region        string
	AccessKey     string
	SecretKey     string
	Endpoint      string
	Bucket        string
	PublicBaseURL string
}

// Upload describes where a photo should be PUT and where it will be served
// from afterwards.
type Upload struct {
	Key         string    `json:"key"`
	UploadURL   string    `json:"upload_url"`
	PublicURL   string    `json:"public_url"`
	ContentType string    `json:"content_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type Service struct {
	cfg Config
}

func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

func (s *Service) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.cfg.Endpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// StorageKey builds a date-partitioned random object key.
func StorageKey(t time.Time, ext string) string {
	return fmt.Sprintf("listings/%04d/%02d/%02d/%s%s", t.Year(), t.Month(), t.Day(), uuid.New(), ext)
}

// PresignUpload returns a short-lived PUT URL for a photo of the given
// content type. Only JPEG, PNG and WebP are accepted.
func (s *Service) PresignUpload(ctx context.Context, contentType string) (Upload, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := extensions[contentType]
	if !ok {
		return Upload{}, fmt.Errorf("%w: unsupported image type %q", common.ErrorValidation, contentType)
	}

	pc, err := s.presignClient(ctx)
	if err != nil {
		return Upload{}, fmt.Errorf("s3 client: %w", err)
	}

	issued := now()
	key := StorageKey(issued, ext)
	bucket := s.cfg.Bucket

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(uploadExpiry))
	if err != nil {
		return Upload{}, fmt.Errorf("presign upload: %w", err)
	}

	return Upload{
		Key:         key,
		UploadURL:   req.URL,
		PublicURL:   strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key,
		ContentType: contentType,
		ExpiresAt:   issued.Add(uploadExpiry),
	}, nil
}
