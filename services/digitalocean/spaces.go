package digitalocean

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/sahilchouksey/college-directory/config"
)

// SpacesClient handles DigitalOcean Spaces operations
type SpacesClient struct {
	s3Client *s3.S3
	bucket   string
	region   string
	endpoint string
	cdnURL   string
}

// SpacesConfig holds configuration for Spaces client
type SpacesConfig struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string
	CDNURL    string
}

// ConfigFromEnv builds a SpacesConfig from the DO_SPACES_* variables
func ConfigFromEnv(env *config.EnviornmentVariable) SpacesConfig {
	region := env.DO_SPACES_REGION
	if region == "" {
		region = "us-east-1"
	}
	return SpacesConfig{
		AccessKey: env.DO_SPACES_KEY,
		SecretKey: env.DO_SPACES_SECRET,
		Bucket:    env.DO_SPACES_BUCKET,
		Region:    region,
		Endpoint:  strings.TrimPrefix(strings.TrimPrefix(env.DO_SPACES_ENDPOINT, "https://"), "http://"),
		CDNURL:    strings.TrimSuffix(env.DO_SPACES_CDN_URL, "/"),
	}
}

// NewSpacesClient creates a new Spaces client
func NewSpacesClient(config SpacesConfig) (*SpacesClient, error) {
	if config.Bucket == "" || config.Endpoint == "" {
		return nil, fmt.Errorf("spaces bucket and endpoint must be configured")
	}

	// Create AWS session with DigitalOcean Spaces endpoint
	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
		Endpoint:         aws.String("https://" + config.Endpoint),
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Spaces session: %w", err)
	}

	return &SpacesClient{
		s3Client: s3.New(sess),
		bucket:   config.Bucket,
		region:   config.Region,
		endpoint: config.Endpoint,
		cdnURL:   config.CDNURL,
	}, nil
}

// UploadFile stores an object in the bucket and returns its URL.
// Uploaded files stay private; the URL is for operators holding bucket credentials.
func (s *SpacesClient) UploadFile(ctx context.Context, key string, data io.ReadSeeker, contentType string) (string, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        data,
		ACL:         aws.String("private"),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.GetFileURL(key), nil
}

// UploadBytes uploads bytes to Spaces
func (s *SpacesClient) UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return s.UploadFile(ctx, key, bytes.NewReader(data), contentType)
}

// GetFileURL returns the URL for a file, preferring the CDN when configured
func (s *SpacesClient) GetFileURL(key string) string {
	if s.cdnURL != "" {
		return fmt.Sprintf("%s/%s", s.cdnURL, key)
	}
	return fmt.Sprintf("https://%s.%s/%s", s.bucket, s.endpoint, key)
}

// ImportArchiveKey is the object key an uploaded import file is archived under
func ImportArchiveKey(batchID uuid.UUID, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "csv"
	}
	return fmt.Sprintf("imports/%s.%s", batchID, ext)
}
