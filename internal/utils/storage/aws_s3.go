package storage

import (
	"Menu-Builder-Backend/internal/utils"
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

var (
	AllowImage = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
	AllowPDF   = []string{"application/pdf"}
)

type (
	AwsS3 interface {
		PutObject(ctx context.Context, objectKey string, body []byte, contentType string) error
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
	}

	awsS3 struct {
		client        *s3.Client
		bucket        string
		region        string
		publicBaseURL string
	}
)

// NewAwsS3 builds a client for AWS S3 or any S3 compatible store
// (R2, MinIO) when AWS_S3_ENDPOINT is set.
func NewAwsS3() AwsS3 {
	region := utils.GetConfigOrDefault("AWS_S3_REGION", "auto")
	endpoint := utils.GetConfig("AWS_S3_ENDPOINT")

	cfg, err := config.LoadDefaultConfig(
		context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				utils.GetConfig("AWS_ACCESS_KEY"),
				utils.GetConfig("AWS_SECRET_KEY"),
				"",
			),
		),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load s3 config")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &awsS3{
		client:        client,
		bucket:        utils.GetConfig("AWS_S3_BUCKET"),
		region:        region,
		publicBaseURL: strings.TrimRight(utils.GetConfig("S3_PUBLIC_BASE_URL"), "/"),
	}
}

func (a *awsS3) PutObject(ctx context.Context, objectKey string, body []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", objectKey, err)
	}
	return nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	escaped := (&url.URL{Path: objectKey}).EscapedPath()
	if a.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", a.publicBaseURL, escaped)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, escaped)
}

// DetectMimeType sniffs the content, ignoring whatever the client declared.
func DetectMimeType(data []byte) *mimetype.MIME {
	return mimetype.Detect(data)
}

func IsAllowed(m *mimetype.MIME, allowTypes ...string) bool {
	for _, t := range allowTypes {
		if m.Is(t) {
			return true
		}
	}
	return false
}
