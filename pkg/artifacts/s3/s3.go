// Package s3 provides an artifacts.Publisher backed by S3 compatible object
// storage through the minio-go SDK.
package s3

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/samhab/hslu-devops-evaluation/pkg/artifacts"
	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
	"github.com/samhab/hslu-devops-evaluation/pkg/logger"
	"github.com/samhab/hslu-devops-evaluation/pkg/serrors"
	"go.uber.org/zap"
)

// Options configure the object store connection.
type Options struct {
	// Endpoint is host[:port] or a URL; an https scheme enables TLS.
	Endpoint        string
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

// objectClient is the subset of *minio.Client used here.
type objectClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	FPutObject(ctx context.Context, bucketName, objectName, filePath string,
		opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Store uploads bundles into one bucket.
type Store struct {
	client objectClient
	bucket string
	region string
}

// Ensure Store conforms to the artifacts.Publisher interface at compile time.
var _ artifacts.Publisher = (*Store)(nil)

// New creates a Store connected to the configured endpoint.
func New(options Options) (*Store, error) {
	if options.Endpoint == "" {
		return nil, serrors.With(serrors.ErrMissingConfig, "artifact store endpoint is required")
	}
	if options.Bucket == "" {
		return nil, serrors.With(serrors.ErrMissingConfig, "artifact store bucket is required")
	}

	endpoint := options.Endpoint
	useSSL := options.UseSSL
	if u, err := url.Parse(options.Endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			useSSL = true
		}
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(options.AccessKeyID, options.SecretAccessKey, ""),
		Secure: useSSL,
		Region: options.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create minio client: %w", err)
	}

	return &Store{client: client, bucket: options.Bucket, region: options.Region}, nil
}

// Publish creates the bucket when missing and uploads every file of the bundle.
func (s *Store) Publish(ctx context.Context, runID domain.RunID, bundle artifacts.Bundle) ([]string, error) {
	ctx = logger.WithFields(ctx, zap.String("bucket", s.bucket), zap.String("bundle", bundle.Name))

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(bundle.Files))
	for _, file := range bundle.Files {
		key := ObjectKey(bundle.Name, runID, file)
		contentType := contentTypeOf(file)
		info, err := s.client.FPutObject(ctx, s.bucket, key, file, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return keys, serrors.Wrap(serrors.ErrUnavailable, err, "could not upload %s", filepath.Base(file))
		}
		logger.Info(ctx, "Uploaded artifact", zap.String("key", key), zap.Int64("size", info.Size))
		keys = append(keys, key)
	}

	return keys, nil
}

func (s *Store) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return serrors.Wrap(serrors.ErrUnavailable, err, "could not check bucket %s", s.bucket)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return serrors.Wrap(serrors.ErrUnavailable, err, "could not create bucket %s", s.bucket)
	}

	return nil
}

// contentTypeOf maps a file name to its MIME type. CSV is not part of Go's
// builtin table, so it is resolved here.
func contentTypeOf(file string) string {
	ext := filepath.Ext(file)
	if ext == ".csv" {
		return "text/csv"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}

	return "application/octet-stream"
}

// ObjectKey returns the key a file of a bundle is stored under.
func ObjectKey(bundle string, runID domain.RunID, file string) string {
	return path.Join(bundle, runID.String(), filepath.Base(file))
}
