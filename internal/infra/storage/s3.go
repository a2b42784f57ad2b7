package storage

import (
	"context"
	"fmt"
	"time"

	appconfig "course-platform/config"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(appconfig.AWS_REGION))
	if err != nil {
		return nil, err
	}
	return s3.NewPresignClient(s3.NewFromConfig(cfg)), nil
}

// PresignUpload returns a time-limited PUT URL the admin frontend uploads
// the asset bytes to directly; the API never proxies file content.
func PresignUpload(ctx context.Context, key, mimeType string, expires time.Duration) (string, error) {
	if appconfig.S3_BUCKET == "" {
		return "", fmt.Errorf("S3_BUCKET not configured")
	}
	client, err := presignClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      &appconfig.S3_BUCKET,
		Key:         &key,
		ContentType: &mimeType,
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// PresignDownload returns a time-limited GET URL with a download filename.
// Only handed out after the access evaluator grants the lesson.
func PresignDownload(ctx context.Context, key, filename string, expires time.Duration) (string, error) {
	if appconfig.S3_BUCKET == "" {
		return "", fmt.Errorf("S3_BUCKET not configured")
	}
	client, err := presignClient(ctx)
	if err != nil {
		return "", err
	}

	disposition := fmt.Sprintf("attachment; filename=%q", filename)
	req, err := client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     &appconfig.S3_BUCKET,
		Key:                        &key,
		ResponseContentDisposition: &disposition,
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
