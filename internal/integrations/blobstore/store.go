package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	// ErrPut возвращается при ошибке загрузки объекта
	ErrPut = errors.New("blobstore: failed to put object")

	// ErrConfig возвращается при ошибке инициализации клиента
	ErrConfig = errors.New("blobstore: failed to load aws config")
)

// S3API часть клиента S3, которая нужна хранилищу
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config параметры бакета
type Config struct {
	Bucket        string
	Region        string
	Endpoint      string // S3-совместимое хранилище (minio), пусто - AWS
	PublicBaseURL string // базовый URL публичных ссылок, пусто - адрес бакета
}

// Store публикация файлов в S3
type Store struct {
	client S3API
	cfg    Config
}

// New создает хранилище с учетными данными из окружения
func New(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewWithClient(client, cfg), nil
}

// NewWithClient создает хранилище поверх готового клиента
func NewWithClient(client S3API, cfg Config) *Store {
	return &Store{client: client, cfg: cfg}
}

// Put загружает объект и возвращает его публичный URL
func (s *Store) Put(ctx context.Context, key, contentType string, payload []byte) (string, error) {
	key = strings.TrimLeft(key, "/")

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.cfg.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(payload),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrPut, key, err)
	}

	return s.URL(key), nil
}

// URL публичный адрес объекта
func (s *Store) URL(key string) string {
	key = strings.TrimLeft(key, "/")
	switch {
	case s.cfg.PublicBaseURL != "":
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key
	case s.cfg.Endpoint != "":
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.cfg.Endpoint, "/"), s.cfg.Bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
	}
}
