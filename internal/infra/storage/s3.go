package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
)

const backupPrefix = "backups/"

// S3Uploader envia cópias de segurança para um bucket S3 compatível
// (AWS, R2, MinIO).
type S3Uploader struct {
	client *s3.Client
	bucket string
}

// NewS3Uploader devolve nil quando nenhum bucket está configurado.
func NewS3Uploader(cfg *config.Config) *S3Uploader {
	if !cfg.BackupUploadEnabled() {
		return nil
	}

	opts := s3.Options{
		Region: cfg.BackupS3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.BackupS3AccessKey,
			cfg.BackupS3SecretKey,
			"",
		),
	}
	if cfg.BackupS3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.BackupS3Endpoint)
		opts.UsePathStyle = true
	}

	return &S3Uploader{
		client: s3.New(opts),
		bucket: cfg.BackupS3Bucket,
	}
}

func (u *S3Uploader) Key(name string) string {
	return backupPrefix + name
}

func (u *S3Uploader) Upload(ctx context.Context, name string, body io.Reader) (string, error) {
	key := u.Key(name)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String("application/vnd.sqlite3"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload backup to s3://%s/%s: %w", u.bucket, key, err)
	}
	return key, nil
}
