package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjects struct {
	body   string
	err    error
	bucket string
	key    string
}

func (f *fakeObjects) GetObject(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	f.bucket, f.key = bucket, key
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func TestSnapshotFeedFetch(t *testing.T) {
	tests := []struct {
		name    string
		objects *fakeObjects
		key     string
		records int
		wantErr bool
	}{
		{
			name:    "array",
			objects: &fakeObjects{body: `[{"roomId":1,"checkin":"2025-06-10","checkout":"2025-06-12"},{"checkin":"2025-01-01","checkout":"2025-01-02"}]`},
			key:     "/exports/bookings.json",
			records: 2,
		},
		{name: "empty array", objects: &fakeObjects{body: `[]`}, key: "b.json"},
		{name: "not an array", objects: &fakeObjects{body: `{"bookings":[]}`}, key: "b.json", wantErr: true},
		{name: "missing key", objects: &fakeObjects{body: `[]`}, key: " ", wantErr: true},
		{name: "storage error", objects: &fakeObjects{err: errors.New("denied")}, key: "b.json", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := SnapshotFeed{Objects: tt.objects, Bucket: "snapshots", Key: tt.key}
			recs, err := feed.Fetch(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, recs, tt.records)
			assert.Equal(t, "snapshots", tt.objects.bucket)
			assert.False(t, strings.HasPrefix(tt.objects.key, "/"))
		})
	}
}

func TestParseEndpoint(t *testing.T) {
	assert.Equal(t, "localhost:9000", parseEndpoint("http://localhost:9000"))
	assert.Equal(t, "minio:9000", parseEndpoint("minio:9000"))
}
