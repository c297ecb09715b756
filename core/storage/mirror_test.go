package storage

import (
	"context"
	"testing"

	"campaign-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIsAbsoluteURL(t *testing.T) {
	assert.True(t, IsAbsoluteURL("https://cdn.example.com/a.png"))
	assert.True(t, IsAbsoluteURL("http://cdn.example.com/a.png"))
	assert.False(t, IsAbsoluteURL("icons/svg/mystery-man.svg"))
	assert.False(t, IsAbsoluteURL("ftp://example.com/a.png"))
	assert.False(t, IsAbsoluteURL(""))
}

func TestObjectNameFor_Deterministic(t *testing.T) {
	a := objectNameFor("https://cdn.example.com/portrait.png?v=2")
	b := objectNameFor("https://cdn.example.com/portrait.png?v=2")
	assert.Equal(t, a, b)
	assert.Contains(t, a, ".png")

	c := objectNameFor("https://cdn.example.com/other.png")
	assert.NotEqual(t, a, c)
}

func TestMirrorURL_RejectsRelative(t *testing.T) {
	m := NewMirror(new(mocks.Client), "bucket")
	_, err := m.MirrorURL(context.Background(), "icons/svg/mystery-man.svg")
	assert.Error(t, err)
}

func TestMirrorURL_SkipsExisting(t *testing.T) {
	client := new(mocks.Client)
	// StatObject succeeding means the object is already mirrored; no fetch,
	// no PutObject.
	client.On("StatObject", mock.Anything, "bucket", mock.Anything, mock.Anything).
		Return(minio.ObjectInfo{Key: "mirrored/x"}, nil)

	m := NewMirror(client, "bucket")
	name, err := m.MirrorURL(context.Background(), "https://cdn.example.com/a.png")
	require.NoError(t, err)
	assert.NotEmpty(t, name)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEnsureBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "bucket").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "bucket", mock.Anything).Return(nil)

	m := NewMirror(client, "bucket")
	require.NoError(t, m.EnsureBucket(context.Background()))
	client.AssertExpectations(t)
}
