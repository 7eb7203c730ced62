package gateway

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUploadUsesRemoteEndpoint(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("images")
		require.NoError(t, err)
		assert.Equal(t, "receipt.jpg", header.Filename)
		w.Write([]byte(`{"data":{"urls":["https://cdn.example.com/receipt.jpg"]}}`))
	}))

	uploader := NewUploader(client, t.TempDir(), zap.NewNop())
	url, err := uploader.UploadImage(context.Background(), "receipt.jpg", []byte("jpegbytes"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/receipt.jpg", url)
}

func TestUploadFallsBackToLocalDir(t *testing.T) {
	tokens := &fakeTokens{}
	client := New("http://127.0.0.1:1", time.Second, tokens, zap.NewNop())
	dir := t.TempDir()

	uploader := NewUploader(client, dir, zap.NewNop())
	path, err := uploader.UploadImage(context.Background(), "receipt.jpg", []byte("jpegbytes"))

	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, ".jpg", filepath.Ext(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegbytes"), content)
}
