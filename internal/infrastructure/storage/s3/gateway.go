// Package s3 implementa o gateway de upload sobre armazenamento compatível com S3
// (AWS S3, MinIO, Cloudflare R2). Os objetos são gravados em uma pasta fixa e
// servidos a partir de uma URL pública estável.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/config"
)

const defaultContentType = "application/octet-stream"

// objectAPI é o subconjunto do cliente S3 usado pelo gateway
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// Gateway implementa ports.UploadGateway
type Gateway struct {
	client  objectAPI
	bucket  string
	baseURL string
	newID   func() string
}

var _ ports.UploadGateway = (*Gateway)(nil)

// NewGateway cria o cliente S3 a partir da configuração de storage
func NewGateway(ctx context.Context, cfg config.StorageConfig) (*Gateway, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newGateway(client, cfg.Bucket, publicBaseURL(cfg)), nil
}

func newGateway(client objectAPI, bucket, baseURL string) *Gateway {
	return &Gateway{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		newID:   uuid.NewString,
	}
}

// publicBaseURL decide de onde os objetos serão servidos
func publicBaseURL(cfg config.StorageConfig) string {
	switch {
	case cfg.PublicBaseURL != "":
		return cfg.PublicBaseURL
	case cfg.Endpoint != "" && cfg.UsePathStyle:
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	case cfg.Endpoint != "":
		u, err := url.Parse(cfg.Endpoint)
		if err != nil || u.Host == "" {
			return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		}
		return fmt.Sprintf("%s://%s.%s", u.Scheme, cfg.Bucket, u.Host)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

func (g *Gateway) Upload(ctx context.Context, req ports.UploadRequest) (*ports.UploadResult, error) {
	key := g.objectKey(req.Folder, req.FileName)

	contentType := req.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}

	_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(g.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(req.Content),
		ContentLength: aws.Int64(int64(len(req.Content))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	return &ports.UploadResult{
		FileID: key,
		URL:    g.objectURL(key),
	}, nil
}

func (g *Gateway) Delete(ctx context.Context, fileID string) error {
	if fileID == "" {
		return errors.New("empty file id")
	}

	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(fileID),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", fileID, err)
	}
	return nil
}

// objectKey monta <pasta>/<uuid>-<nome> preservando o nome original do arquivo
func (g *Gateway) objectKey(folder, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}

	folder = strings.Trim(folder, "/")
	key := g.newID() + "-" + name
	if folder == "" {
		return key
	}
	return folder + "/" + key
}

func (g *Gateway) objectURL(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return g.baseURL + "/" + strings.Join(segments, "/")
}
