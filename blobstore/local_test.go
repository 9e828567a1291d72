package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	ifs "github.com/hupe1980/dynbitset/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	testStore(t, NewLocalStore(t.TempDir()))
}

func TestLocalStore_Layout(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := NewLocalStore(root)

	require.NoError(t, store.Put(ctx, "nested/dir/set.snap", []byte("payload")))

	got, err := os.ReadFile(filepath.Join(root, "nested", "dir", "set.snap"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	entries, err := os.ReadDir(filepath.Join(root, "nested", "dir"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestLocalStore_IgnoresTempFiles(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := NewLocalStore(root)

	require.NoError(t, os.WriteFile(filepath.Join(root, ".tmp-123"), []byte("partial"), 0o600))
	require.NoError(t, store.Put(ctx, "a.snap", []byte("a")))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.snap"}, names)
}

func TestLocalStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "does-not-exist"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_EmptyBlob(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())

	require.NoError(t, store.Put(ctx, "empty", nil))
	blob, err := store.Open(ctx, "empty")
	require.NoError(t, err)
	defer blob.Close()
	assert.Equal(t, int64(0), blob.Size())
}

func TestLocalStore_FailedPutKeepsPrevious(t *testing.T) {
	tests := []struct {
		name  string
		fault ifs.Fault
	}{
		{"torn write", ifs.Fault{FailAfterBytes: 4}},
		{"sync", ifs.Fault{FailAfterBytes: -1, FailOnSync: true}},
		{"close", ifs.Fault{FailAfterBytes: -1, FailOnClose: true}},
		{"rename", ifs.Fault{FailAfterBytes: -1, FailOnRename: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			root := t.TempDir()
			ffs := ifs.NewFaultyFS(nil)
			store := newLocalStoreFS(root, ffs)

			require.NoError(t, store.Put(ctx, "set.snap", []byte("version one")))

			ffs.AddRule(tmpPrefix, tt.fault)
			err := store.Put(ctx, "set.snap", []byte("version two"))
			assert.ErrorIs(t, err, ifs.ErrInjected)

			got, err := os.ReadFile(filepath.Join(root, "set.snap"))
			require.NoError(t, err)
			assert.Equal(t, "version one", string(got))

			entries, err := os.ReadDir(root)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temporary file must be removed")
		})
	}
}
