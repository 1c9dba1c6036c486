package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const keyCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// S3 stores images in an S3-compatible bucket (R2) and serves them from a
// public base URL in front of it
type S3 struct {
	C        *s3.Client
	Uploader *manager.Uploader
	Bucket   *string
	BaseURL  string
}

func NewS3() (*S3, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			viper.GetString("cloudflare.access_key_id"),
			viper.GetString("cloudflare.secret_access_key"),
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	bucket := aws.String(viper.GetString("cloudflare.bucket"))

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", viper.GetString("cloudflare.account_id")))
		o.Region = "auto"
	})

	_, err = client.HeadBucket(context.TODO(), &s3.HeadBucketInput{
		Bucket: bucket,
	})
	if err != nil {
		var apiErr smithy.APIError

		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
			return nil, fmt.Errorf("bucket '%s' does not exist", *bucket)
		}

		return nil, fmt.Errorf("failed to check if bucket exists, %w", err)
	}

	return &S3{
		C:        client,
		Uploader: manager.NewUploader(client),
		Bucket:   bucket,
		BaseURL:  strings.TrimSuffix(viper.GetString("cloudflare.public_base_url"), "/"),
	}, nil
}

func (u *S3) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	key, err := gonanoid.Generate(keyCharset, 16)
	if err != nil {
		return "", ErrUploadFailed
	}

	_, err = u.Uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        u.Bucket,
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		zap.L().Error("Failed to upload image to bucket", zap.Error(err))
		return "", ErrUploadFailed
	}

	return u.BaseURL + "/" + key, nil
}
