package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhafiz/muhafiz-api/internal/pkg/config"
)

func TestLocalStore_SaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir, "/uploads/")
	require.NoError(t, err)
	assert.Equal(t, "local", store.Backend())

	op, err := store.Save(context.Background(), "abc.jpg", strings.NewReader("jpeg-bytes"), -1, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc.jpg", op.URL)
	assert.Equal(t, int64(10), op.Size)

	content, err := os.ReadFile(filepath.Join(dir, "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(content))

	// names are never reused
	_, err = store.Save(context.Background(), "abc.jpg", strings.NewReader("again"), -1, "image/jpeg")
	assert.Error(t, err)

	require.NoError(t, store.Delete(context.Background(), "abc.jpg"))
	_, err = os.Stat(filepath.Join(dir, "abc.jpg"))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Delete(context.Background(), "abc.jpg"))
}

func TestLocalStore_RejectsPathNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	for _, name := range []string{"", "../escape.jpg", "nested/file.jpg", ".env"} {
		_, err := store.Save(context.Background(), name, strings.NewReader("x"), 1, "text/plain")
		assert.Error(t, err, name)
		assert.Error(t, store.Delete(context.Background(), name), name)
	}
}

type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string][]byte
	requests []string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)

	switch r.Method {
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = body
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3Store_SaveAndDelete(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	store, err := NewS3Store(context.Background(), config.S3Config{
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		Region:          "us-east-1",
		BucketName:      "media",
		EndpointURL:     srv.URL,
	})
	require.NoError(t, err)
	assert.Equal(t, "s3", store.Backend())
	require.NoError(t, store.Ping(context.Background()))

	payload := []byte("audio-bytes")
	op, err := store.Save(context.Background(), "clip.mp3", bytes.NewReader(payload), int64(len(payload)), "audio/mpeg")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/media/uploads/clip.mp3", op.URL)

	fake.mu.Lock()
	assert.Equal(t, payload, fake.objects["/media/uploads/clip.mp3"])
	fake.mu.Unlock()

	require.NoError(t, store.Delete(context.Background(), "clip.mp3"))
	fake.mu.Lock()
	_, exists := fake.objects["/media/uploads/clip.mp3"]
	fake.mu.Unlock()
	assert.False(t, exists)
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com", publicBaseURL(config.S3Config{PublicBaseURL: "https://cdn.example.com/"}))
	assert.Equal(t, "http://minio:9000/media", publicBaseURL(config.S3Config{EndpointURL: "http://minio:9000", BucketName: "media"}))
	assert.Equal(t, "https://media.s3.eu-central-1.amazonaws.com", publicBaseURL(config.S3Config{BucketName: "media", Region: "eu-central-1"}))
}

func TestNew_DefaultsToLocal(t *testing.T) {
	store, err := New(context.Background(), config.MediaConfig{Driver: config.MediaDriverLocal, UploadDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "local", store.Backend())
}
