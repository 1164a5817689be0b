package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocal(t *testing.T) {
	t.Run("creates missing root", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "a", "b")
		_, err := NewLocal(root)
		require.NoError(t, err)
		st, err := os.Stat(root)
		require.NoError(t, err)
		assert.True(t, st.IsDir())
	})

	t.Run("existing root is fine", func(t *testing.T) {
		root := t.TempDir()
		_, err := NewLocal(root)
		assert.NoError(t, err)
		_, err = NewLocal(root)
		assert.NoError(t, err)
	})

	t.Run("empty root rejected", func(t *testing.T) {
		_, err := NewLocal("  ")
		assert.Error(t, err)
	})
}

func TestLocalStorage_PutDelete(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocal(root)
	require.NoError(t, err)
	ctx := context.Background()

	payload := []byte("hello artifact")
	info, err := s.Put(ctx, "uploads/x.png", bytes.NewReader(payload), PutObjectOptions{Size: int64(len(payload)), ContentType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, "uploads/x.png", info.Key)
	assert.Equal(t, int64(len(payload)), info.Size)
	assert.Equal(t, "image/png", info.ContentType)

	got, err := os.ReadFile(filepath.Join(root, "uploads", "x.png"))
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	entries, err := os.ReadDir(filepath.Join(root, "uploads"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	require.NoError(t, s.Delete(ctx, "uploads/x.png"))
	_, err = os.Stat(filepath.Join(root, "uploads", "x.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(ctx, "uploads/x.png"), "missing key is not an error")
}

func TestLocalStorage_KeyStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocal(root)
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "../../escape.txt", bytes.NewReader([]byte("x")), PutObjectOptions{Size: 1})
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	assert.NoError(t, err)

	_, err = s.Put(context.Background(), "/", bytes.NewReader(nil), PutObjectOptions{})
	assert.Error(t, err)
}

func TestLocalStorage_Sweep(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocal(root)
	require.NoError(t, err)
	ctx := context.Background()

	for _, k := range []string{"uploads/old.png", "uploads/new.png", "processed/old.png"} {
		_, err := s.Put(ctx, k, bytes.NewReader([]byte("data")), PutObjectOptions{Size: 4})
		require.NoError(t, err)
	}
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(root, "uploads", "old.png"), past, past))
	require.NoError(t, os.Chtimes(filepath.Join(root, "processed", "old.png"), past, past))

	cutoff := time.Now().Add(-24 * time.Hour)
	n, err := s.Sweep(ctx, "uploads", cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = os.Stat(filepath.Join(root, "uploads", "old.png"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "uploads", "new.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "processed", "old.png"))
	assert.NoError(t, err, "other prefixes untouched")

	n, err = s.Sweep(ctx, "missing", cutoff)
	assert.NoError(t, err)
	assert.Zero(t, n)
}
