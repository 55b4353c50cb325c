package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/enumcmp/pkg/fsutil"
)

const source = "class C { bool M(Mode m) => m.Equals(Mode.On); }\n"

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "C.cs")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, source)

		got, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, source, string(got))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(len(source)), info.Size)
		assert.Equal(t, os.FileMode(0o640), info.Mode.Perm())
		assert.NotEqual(t, [32]byte{}, info.Hash)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.cs"))
		assert.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, writeFile(t, source))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFileInfo_Changed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		strict bool
		mutate func(t *testing.T, path string, info *fsutil.FileInfo)
		want   bool
	}{
		{
			name:   "untouched",
			strict: true,
			mutate: func(*testing.T, string, *fsutil.FileInfo) {},
			want:   false,
		},
		{
			name:   "size changed",
			strict: false,
			mutate: func(t *testing.T, path string, _ *fsutil.FileInfo) {
				require.NoError(t, os.WriteFile(path, []byte(source+"// more\n"), 0o640))
			},
			want: true,
		},
		{
			name:   "deleted",
			strict: false,
			mutate: func(t *testing.T, path string, _ *fsutil.FileInfo) {
				require.NoError(t, os.Remove(path))
			},
			want: true,
		},
		{
			name:   "same size and mtime, different bytes, strict",
			strict: true,
			mutate: func(t *testing.T, path string, info *fsutil.FileInfo) {
				swapped := []byte(source)
				swapped[0] = 'C'
				require.NoError(t, os.WriteFile(path, swapped, 0o640))
				require.NoError(t, os.Chtimes(path, time.Now(), info.ModTime))
			},
			want: true,
		},
		{
			name:   "same size and mtime, different bytes, quick",
			strict: false,
			mutate: func(t *testing.T, path string, info *fsutil.FileInfo) {
				swapped := []byte(source)
				swapped[0] = 'C'
				require.NoError(t, os.WriteFile(path, swapped, 0o640))
				require.NoError(t, os.Chtimes(path, time.Now(), info.ModTime))
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, source)
			_, info, err := fsutil.ReadFile(context.Background(), path)
			require.NoError(t, err)

			tt.mutate(t, path, info)

			changed, err := info.Changed(context.Background(), tt.strict)
			require.NoError(t, err)
			assert.Equal(t, tt.want, changed)
		})
	}
}

func TestFileInfo_Changed_Nil(t *testing.T) {
	t.Parallel()

	var info *fsutil.FileInfo
	_, err := info.Changed(context.Background(), true)
	assert.ErrorIs(t, err, fsutil.ErrNilFileInfo)
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("replaces content and sets mode", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, source)
		fixed := "class C { bool M(Mode m) => m == Mode.On; }\n"

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte(fixed), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, fixed, string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())
	})

	t.Run("zero mode uses default", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "New.cs")
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte(source), 0))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, source)
		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "C.cs")
		assert.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte(source), 0))
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := writeFile(t, source)
		require.ErrorIs(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0), context.Canceled)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, source, string(got))
	})
}
