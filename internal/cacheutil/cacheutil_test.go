// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// enableCache points the cache at a temp dir and switches it on.
func enableCache(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HNVCTL_CACHE_DIR", dir)
	t.Setenv("HNVCTL_CACHE", "1")
	return dir
}

func TestDir_WithHNVCTL_CACHE_DIR(t *testing.T) {
	customDir := t.TempDir()
	t.Setenv("HNVCTL_CACHE_DIR", customDir)

	result, ok := Dir()

	assert.True(t, ok)
	assert.Equal(t, customDir, result)
}

func TestDir_FallsBackToUserCacheDir(t *testing.T) {
	t.Setenv("HNVCTL_CACHE_DIR", "")

	result, ok := Dir()

	if ok {
		assert.True(t, filepath.IsAbs(result))
		assert.Equal(t, "hnvctl", filepath.Base(result))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"true", true},
		{"YES", true},
		{"on", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("HNVCTL_CACHE", tt.value)
			assert.Equal(t, tt.expected, Enabled())
		})
	}
}

func TestEnsureBaseDir(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		t.Setenv("HNVCTL_CACHE", "")
		base, ok, err := EnsureBaseDir()
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, base)
	})

	t.Run("creates directory", func(t *testing.T) {
		dir := filepath.Join(enableCache(t), "nested", "cache")
		t.Setenv("HNVCTL_CACHE_DIR", dir)

		base, ok, err := EnsureBaseDir()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, dir, base)
		assert.DirExists(t, dir)
	})
}

func TestWriteRead_RoundTrip(t *testing.T) {
	base := enableCache(t)
	subdirs := []string{"nc.example.com:8443", "admin"}
	key := "/networking/v1/logicalNetworks/"

	require.NoError(t, Write(subdirs, key, []byte(`{"value":[]}`)))

	p, exists := EntryPath(subdirs, key)
	assert.True(t, exists)
	assert.Equal(t, filepath.Join(base, "nc.example.com_8443", "admin", encodeKey(key)), p)

	entry, ok := Read(subdirs, key, time.Minute)
	require.True(t, ok)
	assert.Equal(t, key, entry.Key)
	assert.Equal(t, `{"value":[]}`, string(entry.Data))
	assert.False(t, entry.Written.IsZero())
}

func TestRead_Disabled(t *testing.T) {
	enableCache(t)
	require.NoError(t, Write([]string{"h"}, "k", []byte("x")))

	t.Setenv("HNVCTL_CACHE", "0")
	_, ok := Read([]string{"h"}, "k", 0)
	assert.False(t, ok)
}

func TestRead_Stale(t *testing.T) {
	enableCache(t)
	require.NoError(t, Write([]string{"h"}, "k", []byte("x")))

	p, _ := EntryPath([]string{"h"}, "k")
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(p, old, old))

	_, ok := Read([]string{"h"}, "k", time.Hour)
	assert.False(t, ok, "older than maxAge")

	_, ok = Read([]string{"h"}, "k", 0)
	assert.True(t, ok, "maxAge <= 0 accepts any age")
}

func TestWrite_Disabled(t *testing.T) {
	base := t.TempDir()
	t.Setenv("HNVCTL_CACHE_DIR", base)
	t.Setenv("HNVCTL_CACHE", "")

	require.NoError(t, Write([]string{"h"}, "k", []byte("x")))

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWrite_FilePermissions(t *testing.T) {
	enableCache(t)
	require.NoError(t, Write([]string{"h"}, "k", []byte("secret")))

	p, _ := EntryPath([]string{"h"}, "k")
	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestPurge(t *testing.T) {
	enableCache(t)
	require.NoError(t, Write([]string{"h"}, "old", []byte("x")))
	require.NoError(t, Write([]string{"h", "nested"}, "new", []byte("y")))

	oldPath, _ := EntryPath([]string{"h"}, "old")
	past := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, past, past))

	require.NoError(t, Purge(time.Hour))

	_, oldExists := EntryPath([]string{"h"}, "old")
	_, newExists := EntryPath([]string{"h", "nested"}, "new")
	assert.False(t, oldExists)
	assert.True(t, newExists)
}

func TestPurge_DisabledWithZeroAge(t *testing.T) {
	enableCache(t)
	require.NoError(t, Write([]string{"h"}, "k", []byte("x")))
	p, _ := EntryPath([]string{"h"}, "k")
	past := time.Now().Add(-100 * time.Hour)
	require.NoError(t, os.Chtimes(p, past, past))

	require.NoError(t, Purge(0))

	assert.FileExists(t, p)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t,
		[]string{"nc.example.com_443", "_", "_", "a_b"},
		sanitize([]string{"nc.example.com:443", "", "..", "a/b"}))
}

func TestEncodeKey(t *testing.T) {
	a := encodeKey("/networking/v1/virtualNetworks/")
	assert.Len(t, a, 64)
	assert.Equal(t, a, encodeKey("/networking/v1/virtualNetworks/"))
	assert.NotEqual(t, a, encodeKey("/networking/v1/logicalNetworks/"))
}
