package blobs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/distincto/internal/client/models"
	"github.com/dmitrijs2005/distincto/internal/common"
)

const timestampMetaKey = "timestamp"

// ObjectAPI is the part of *s3.Client the S3 backend uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Options configures NewS3Client.
type S3Options struct {
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

// NewS3Client builds a path-style client suitable for MinIO as well as AWS.
func NewS3Client(ctx context.Context, o S3Options) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(o.Region)}
	if o.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.BaseEndpoint != "" {
			so.BaseEndpoint = aws.String(o.BaseEndpoint)
		}
		so.UsePathStyle = true
	}), nil
}

// S3Repository stores each blob as one object under prefix + path.
type S3Repository struct {
	api    ObjectAPI
	bucket string
	prefix string
	now    func() int64
}

func NewS3Repository(api ObjectAPI, bucket, prefix string) *S3Repository {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Repository{api: api, bucket: bucket, prefix: prefix, now: models.NowMillis}
}

func (r *S3Repository) key(path string) string {
	return r.prefix + path
}

func (r *S3Repository) Put(ctx context.Context, path string, data []byte, mimeType string) error {
	if path == "" {
		return failure("put", path, common.ErrMissingPath)
	}

	_, err := r.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(r.key(path)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(resolveMIME(data, mimeType)),
		Metadata:      map[string]string{timestampMetaKey: strconv.FormatInt(r.now(), 10)},
	})
	if err != nil {
		return failure("put", path, err)
	}
	return nil
}

func (r *S3Repository) Get(ctx context.Context, path string) (*models.Blob, error) {
	out, err := r.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key(path)),
	})
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, failure("get", path, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, failure("get", path, err)
	}

	b := &models.Blob{Path: path, Data: data, MimeType: aws.ToString(out.ContentType)}
	if ts, ok := out.Metadata[timestampMetaKey]; ok {
		b.Timestamp, _ = strconv.ParseInt(ts, 10, 64)
	}
	return b, nil
}

func (r *S3Repository) Delete(ctx context.Context, path string) error {
	_, err := r.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key(path)),
	})
	if err != nil && !isNotFound(err) {
		return failure("delete", path, err)
	}
	return nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey"
	}
	return false
}
