package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimal valid PNG header plus padding so DetectContentType sees image/png
func pngBytes(t *testing.T, size int) []byte {
	t.Helper()
	header := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	buf := make([]byte, size)
	copy(buf, header)
	return buf
}

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "http://localhost:8460")

	name, err := store.Save(bytes.NewReader(pngBytes(t, 1024)), "photo.PNG")
	require.NoError(t, err)
	assert.True(t, filepath.Ext(name) == ".png")

	_, err = os.Stat(filepath.Join(dir, name))
	assert.NoError(t, err)

	assert.Equal(t, "http://localhost:8460/storage/places/"+name, store.URL(name))
}

func TestLocalStoreSaveIsIdempotent(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "")

	first, err := store.Save(bytes.NewReader(pngBytes(t, 100)), "a.png")
	require.NoError(t, err)
	second, err := store.Save(bytes.NewReader(pngBytes(t, 100)), "b.png")
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical content hashes to the same name")
}

func TestLocalStoreRejectsOversize(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "")

	_, err := store.Save(bytes.NewReader(pngBytes(t, MaxImageSize+1)), "big.png")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestLocalStoreAcceptsExactLimit(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "")

	_, err := store.Save(bytes.NewReader(pngBytes(t, MaxImageSize)), "exact.png")
	assert.NoError(t, err)
}

func TestLocalStoreRejectsNonImage(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "")

	_, err := store.Save(bytes.NewReader([]byte("#!/bin/sh\necho pwned")), "script.png")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestLocalStoreRemove(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "")

	name, err := store.Save(bytes.NewReader(pngBytes(t, 64)), "x.png")
	require.NoError(t, err)

	require.NoError(t, store.Remove(name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Remove(name), "removing a missing file is fine")
	assert.NoError(t, store.Remove(""))
}

func TestLocalStoreURLEmpty(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://example.test")
	assert.Empty(t, store.URL(""))
}
