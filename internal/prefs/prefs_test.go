package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hy4ri/taskdex/internal/layout"
)

var (
	_ layout.KV = (*DiskKV)(nil)
	_ layout.KV = (*MemKV)(nil)
)

func TestDiskKV(t *testing.T) {
	dir := t.TempDir()

	kv, err := OpenDisk(dir)
	require.NoError(t, err)

	_, ok := kv.Get(layout.KeyLeftWidth)
	assert.False(t, ok)

	require.NoError(t, kv.Set(layout.KeyLeftWidth, "32"))
	v, ok := kv.Get(layout.KeyLeftWidth)
	require.True(t, ok)
	assert.Equal(t, "32", v)

	// A second handle on the same directory sees the write.
	again, err := OpenDisk(dir)
	require.NoError(t, err)
	v, ok = again.Get(layout.KeyLeftWidth)
	require.True(t, ok)
	assert.Equal(t, "32", v)
	assert.ElementsMatch(t, []string{layout.KeyLeftWidth}, again.Keys())
}

func TestDiskKVPersistsLayout(t *testing.T) {
	kv, err := OpenDisk(t.TempDir())
	require.NoError(t, err)

	p := layout.Preferences{LeftWidth: 40, MidRatio: 0.3, LeftCollapsed: true}
	require.NoError(t, layout.Save(kv, p))
	assert.Equal(t, p, layout.Load(kv))
}

func TestMemKV(t *testing.T) {
	kv := NewMem()
	_, ok := kv.Get("missing")
	assert.False(t, ok)

	require.NoError(t, kv.Set("a", "1"))
	v, ok := kv.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}
