package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const defaultRegion = "us-east-1"

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in, optFns...)
	}
)

// S3Config describes an S3-compatible bucket (AWS, MinIO, Ceph).
type S3Config struct {
	Bucket       string
	Prefix       string
	Region       string
	Endpoint     string // empty for AWS itself
	AccessKey    string
	SecretKey    string
	UsePathStyle bool // MinIO and Ceph need path-style addressing
}

// S3 stores objects under an optional key prefix in one bucket.
type S3 struct {
	client *s3.Client
	bucket string
	prefix string
}

var _ Engine = (*S3)(nil)

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: empty bucket", ErrInvalidSettings)
	}

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func (e *S3) key(name string) string {
	if e.prefix == "" {
		return name
	}
	return e.prefix + "/" + name
}

// Put uploads src as prefix/name. Request signing needs a seekable body, so
// plain readers are spooled to a temporary file first.
func (e *S3) Put(ctx context.Context, name string, src io.Reader) (Path, error) {
	key := e.key(name)

	body, cleanup, err := seekable(src)
	if err != nil {
		return Path{}, fmt.Errorf("%w: spool %s: %w", ErrPut, key, err)
	}
	defer cleanup()

	_, err = putObject(e.client, ctx, &s3.PutObjectInput{
		Bucket: aws.String(e.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return Path{}, fmt.Errorf("%w: putting object %s: %w", ErrPut, key, err)
	}

	return Path{Kind: KindS3, Value: key}, nil
}

// Delete removes the object. S3 reports success for missing keys.
func (e *S3) Delete(ctx context.Context, p Path) error {
	if err := checkKind(KindS3, p); err != nil {
		return err
	}

	_, err := deleteObject(e.client, ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(e.bucket),
		Key:    aws.String(p.Value),
	})
	if err != nil {
		return fmt.Errorf("%w: deleting object %s: %w", ErrDelete, p.Value, err)
	}

	return nil
}

func seekable(src io.Reader) (io.ReadSeeker, func(), error) {
	if rs, ok := src.(io.ReadSeeker); ok {
		return rs, func() {}, nil
	}

	tmp, err := os.CreateTemp("", "bookshelf-s3-*")
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}

	if _, err := io.Copy(tmp, src); err != nil {
		cleanup()
		return nil, nil, err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, nil, err
	}

	return tmp, cleanup, nil
}
