package s3

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/samhab/hslu-devops-evaluation/pkg/artifacts"
	"github.com/samhab/hslu-devops-evaluation/pkg/domain"
	"github.com/samhab/hslu-devops-evaluation/pkg/serrors"
	"github.com/stretchr/testify/require"
)

type upload struct {
	bucket, key, file, contentType string
}

type fakeClient struct {
	exists    bool
	existsErr error
	made      []string
	putErr    error
	uploads   []upload
}

func (f *fakeClient) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeClient) MakeBucket(_ context.Context, bucket string, _ minio.MakeBucketOptions) error {
	f.made = append(f.made, bucket)

	return nil
}

func (f *fakeClient) FPutObject(_ context.Context, bucket, key, file string,
	opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	f.uploads = append(f.uploads, upload{bucket: bucket, key: key, file: file, contentType: opts.ContentType})

	return minio.UploadInfo{Bucket: bucket, Key: key, Size: 1}, nil
}

func writeReports(t *testing.T) []string {
	t.Helper()

	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "evaluation_results.csv"),
		filepath.Join(dir, "uno_test_overview.csv"),
	}
	for _, f := range files {
		require.NoError(t, os.WriteFile(f, []byte("\n"), 0o600))
	}

	return files
}

func TestStore_Publish(t *testing.T) {
	client := &fakeClient{}
	s := &Store{client: client, bucket: "evaluations"}
	run := domain.NewRun(domain.VariantGitHub, "", time.Time{})
	files := writeReports(t)

	keys, err := s.Publish(context.Background(), run.ID, artifacts.Bundle{Name: "evaluation-results", Files: files})
	require.NoError(t, err)
	require.Equal(t, []string{"evaluations"}, client.made)
	require.Equal(t, []string{
		"evaluation-results/" + run.ID.String() + "/evaluation_results.csv",
		"evaluation-results/" + run.ID.String() + "/uno_test_overview.csv",
	}, keys)

	require.Len(t, client.uploads, 2)
	for i, u := range client.uploads {
		require.Equal(t, "evaluations", u.bucket)
		require.Equal(t, files[i], u.file)
		require.True(t, strings.HasPrefix(u.contentType, "text/csv"), u.contentType)
	}
}

func TestStore_Publish_ExistingBucket(t *testing.T) {
	client := &fakeClient{exists: true}
	s := &Store{client: client, bucket: "evaluations"}

	_, err := s.Publish(context.Background(), domain.NewRun(domain.VariantGitHub, "", time.Time{}).ID,
		artifacts.Bundle{Name: "b", Files: writeReports(t)})
	require.NoError(t, err)
	require.Empty(t, client.made)
}

func TestStore_Publish_Errors(t *testing.T) {
	runID := domain.NewRun(domain.VariantGitHub, "", time.Time{}).ID

	s := &Store{client: &fakeClient{existsErr: errors.New("connection refused")}, bucket: "b"}
	_, err := s.Publish(context.Background(), runID, artifacts.Bundle{Name: "b", Files: writeReports(t)})
	require.ErrorIs(t, err, serrors.ErrUnavailable)

	s = &Store{client: &fakeClient{exists: true, putErr: errors.New("access denied")}, bucket: "b"}
	keys, err := s.Publish(context.Background(), runID, artifacts.Bundle{Name: "b", Files: writeReports(t)})
	require.ErrorIs(t, err, serrors.ErrUnavailable)
	require.Equal(t, "could not upload evaluation_results.csv", serrors.Message(err))
	require.Empty(t, keys)
}

func TestNew(t *testing.T) {
	_, err := New(Options{Bucket: "b"})
	require.ErrorIs(t, err, serrors.ErrMissingConfig)

	_, err = New(Options{Endpoint: "localhost:9000"})
	require.ErrorIs(t, err, serrors.ErrMissingConfig)

	s, err := New(Options{Endpoint: "https://s3.example.com", Bucket: "b", AccessKeyID: "k", SecretAccessKey: "s"})
	require.NoError(t, err)
	require.Equal(t, "b", s.bucket)
}
