package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_MissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope", DefaultFileName))
	_, ok, err := s.Get(context.Background(), "notTodoItems")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SetCreatesDirAndKeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	p := filepath.Join(t.TempDir(), "nested", DefaultFileName)
	s := New(p)

	require.NoError(t, s.Set(ctx, "a", "1"))
	require.NoError(t, s.Set(ctx, "b", `[{"id":1}]`))
	require.NoError(t, s.Set(ctx, "a", "2"))

	// a fresh handle sees what the first one wrote
	s2 := New(p)
	v, ok, err := s2.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	v, ok, err = s2.Get(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)
}

func TestStore_EmptyFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(p, nil, 0o644))

	_, ok, err := New(p).Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_BrokenFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o644))

	_, _, err := New(p).Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json unmarshal")
}
