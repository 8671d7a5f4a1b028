package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"milahouse/internal/app/policies"
	"milahouse/internal/domain/booking"
)

// maxSnapshotSize bounds how much of the export object is read.
const maxSnapshotSize = 32 << 20

var ErrSnapshotTooLarge = errors.New("s3: snapshot object too large")

// ObjectGetter opens one object of a bucket.
type ObjectGetter interface {
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// Client wraps a MinIO/S3 client.
type Client struct {
	client *minio.Client
}

// NewClient configures a client using the provided endpoint and credentials.
func NewClient(endpoint string, useSSL bool, accessKey, secretKey string) (*Client, error) {
	cleanEndpoint := strings.TrimSpace(endpoint)
	if cleanEndpoint == "" {
		return nil, errors.New("s3: endpoint is required")
	}
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(accessKey), strings.TrimSpace(secretKey), ""),
		Secure: useSSL,
	}
	minioClient, err := minio.New(parseEndpoint(cleanEndpoint), opts)
	if err != nil {
		return nil, fmt.Errorf("s3: create client: %w", err)
	}
	return &Client{client: minioClient}, nil
}

func (c *Client) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := c.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("s3: get object: %w", err)
	}
	return obj, nil
}

// BucketExists backs the readiness check.
func (c *Client) BucketExists(ctx context.Context, bucket string) error {
	ok, err := c.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("s3: check bucket: %w", err)
	}
	if !ok {
		return fmt.Errorf("s3: bucket %q not found", bucket)
	}
	return nil
}

// SnapshotFeed reads the booking export the reservations backend drops into
// object storage as a JSON array of records.
type SnapshotFeed struct {
	Objects ObjectGetter
	Bucket  string
	Key     string
	Logger  *slog.Logger
}

func (f SnapshotFeed) Fetch(ctx context.Context) ([]booking.Record, error) {
	key := strings.Trim(strings.TrimSpace(f.Key), "/")
	if key == "" {
		return nil, errors.New("s3: object key is required")
	}
	body, err := f.Objects.GetObject(ctx, f.Bucket, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxSnapshotSize+1))
	if err != nil {
		return nil, fmt.Errorf("s3: read object: %w", err)
	}
	if len(data) > maxSnapshotSize {
		return nil, ErrSnapshotTooLarge
	}
	records, err := booking.Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("s3: decode snapshot: %w", err)
	}
	if f.Logger != nil {
		f.Logger.Debug("s3 snapshot fetched", "bucket", f.Bucket, "key", key, "records", len(records))
	}
	return records, nil
}

func parseEndpoint(endpoint string) string {
	if parsed, err := url.Parse(endpoint); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return endpoint
}

var (
	_ ObjectGetter          = (*Client)(nil)
	_ policies.SnapshotFeed = SnapshotFeed{}
)
