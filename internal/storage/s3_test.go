package storage

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/minio"

	"github.com/mvbarros/audioclin/pkg/audiogram"
)

// setupMinio starts a MinIO container and creates a test bucket
func setupMinio(t *testing.T) (endpoint, bucket string) {
	t.Helper()

	ctx := context.Background()

	container, err := minio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		minio.WithUsername("minioadmin"),
		minio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	endpoint, err = container.ConnectionString(ctx)
	require.NoError(t, err)

	t.Setenv("AWS_ACCESS_KEY_ID", "minioadmin")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "minioadmin")

	bucket = "audioclin-test-" + uuid.New().String()[:8]

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion("us-east-1"))
	require.NoError(t, err)

	url := "http://" + endpoint
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = &url
		o.UsePathStyle = true
	})
	_, err = client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)})
	require.NoError(t, err)

	return endpoint, bucket
}

func TestReportStorage_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	endpoint, bucket := setupMinio(t)

	store, err := NewReportStorage(S3Config{
		Bucket:   bucket,
		Endpoint: endpoint,
	})
	require.NoError(t, err)

	ctx := context.Background()

	var grid audiogram.Store
	grid.SetPoint(audiogram.EarRight, audiogram.ConductionAir, audiogram.Point{Frequency: 1000, Intensity: 25})
	svg := []byte(audiogram.RenderReport(&grid))
	key := "reports/" + uuid.New().String() + ".svg"

	require.NoError(t, store.UploadReport(ctx, key, svg))

	t.Run("presigned URL serves the uploaded report", func(t *testing.T) {
		url, err := store.GenerateDownloadURL(ctx, key)
		require.NoError(t, err)

		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, svg, body)
	})

	t.Run("re-export overwrites the previous report", func(t *testing.T) {
		grid.SetPoint(audiogram.EarLeft, audiogram.ConductionAir, audiogram.Point{Frequency: 2000, Intensity: 50})
		updated := []byte(audiogram.RenderReport(&grid))
		require.NoError(t, store.UploadReport(ctx, key, updated))

		url, err := store.GenerateDownloadURL(ctx, key)
		require.NoError(t, err)

		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, updated, body)
	})

	t.Run("deleted report is gone", func(t *testing.T) {
		require.NoError(t, store.DeleteReport(ctx, key))

		url, err := store.GenerateDownloadURL(ctx, key)
		require.NoError(t, err)

		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
