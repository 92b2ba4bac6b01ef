// Package blobstore stores uploaded binary objects (profile pictures) in an
// S3-compatible bucket and hands back their public URLs.
package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/dmitrijs2005/notely/internal/server/config"
)

// Store persists an object under key and returns the URL it is served from.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// S3Store writes objects with PutObject. The client is built on first use so
// the server can start while the object store is still coming up.
type S3Store struct {
	region        string
	user          string
	password      string
	bucket        string
	baseEndpoint  string
	publicBaseURL string

	mu     sync.Mutex
	client *s3.Client
}

func NewS3Store(cfg *sc.Config) *S3Store {
	return &S3Store{
		region:        cfg.S3Region,
		user:          cfg.S3RootUser,
		password:      cfg.S3RootPassword,
		bucket:        cfg.S3Bucket,
		baseEndpoint:  cfg.S3BaseEndpoint,
		publicBaseURL: cfg.PublicBaseURL,
	}
}

func (s *S3Store) getClient(ctx context.Context) (*s3.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.user,
			s.password,
			"",
		)))
	if err != nil {
		return nil, err
	}

	s.client = newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.baseEndpoint)
		o.UsePathStyle = true
	})

	return s.client, nil
}

func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 client: %w", err)
	}

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}

	return s.PublicURL(key), nil
}

// PublicURL returns the URL key is served from: under PublicBaseURL when set,
// otherwise path-style under the S3 endpoint.
func (s *S3Store) PublicURL(key string) string {
	base := s.publicBaseURL
	if base == "" {
		base = strings.TrimRight(s.baseEndpoint, "/") + "/" + s.bucket
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
