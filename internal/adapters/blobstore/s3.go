// Package blobstore stores uploaded files (payment proofs, attachments) in
// S3-compatible object storage and hands back public URLs.
package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
)

// Config for the S3 blob store.
type Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string // S3-compatible endpoint, e.g. https://object.pscloud.io
}

// S3Store implements the blob store port against an S3-compatible service.
type S3Store struct {
	client *s3.S3
	cfg    Config
}

func NewS3Store(cfg Config) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Endpoint:    aws.String(cfg.Endpoint),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return &S3Store{client: s3.New(sess), cfg: cfg}, nil
}

var _ portssvc.BlobStore = (*S3Store)(nil)

func (s *S3Store) Upload(ctx context.Context, folder, fileName string, data []byte, contentType string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %w", err)
	}

	host := strings.TrimPrefix(s.cfg.Endpoint, "https://")
	return fmt.Sprintf("https://%s.%s/%s", s.cfg.Bucket, host, filePath), nil
}
