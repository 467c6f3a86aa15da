package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_AbsentFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "profile.json"))

	data, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestWriteRead(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "profile.json"))

	require.NoError(t, s.Write(context.Background(), []byte(`{"email":"a@b.com"}`)))

	data, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@b.com"}`, string(data))
}

func TestWrite_CreatesParentDirs(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nested", "deeper", "profile.json"))

	require.NoError(t, s.Write(context.Background(), []byte("blob")))

	data, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), data)
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	s := New(path)

	require.NoError(t, s.Write(context.Background(), []byte("first")))
	require.NoError(t, s.Write(context.Background(), []byte("second")))

	data, err := s.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)

	// The temporary file from the atomic write does not linger.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
