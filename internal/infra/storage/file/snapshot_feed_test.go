package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotFeedFetch(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "bookings.json")
	require.NoError(t, os.WriteFile(good, []byte(`[{"roomId":"1","checkin":"2025-06-10","checkout":"2025-06-12"}]`), 0o600))
	bad := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{`), 0o600))
	missing := filepath.Join(dir, "none.json")

	tests := []struct {
		name    string
		feed    SnapshotFeed
		records int
		wantErr bool
	}{
		{name: "valid", feed: SnapshotFeed{Path: good}, records: 1},
		{name: "broken", feed: SnapshotFeed{Path: bad}, wantErr: true},
		{name: "missing", feed: SnapshotFeed{Path: missing}, wantErr: true},
		{name: "missing optional", feed: SnapshotFeed{Path: missing, Optional: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := tt.feed.Fetch(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, recs, tt.records)
		})
	}
}
