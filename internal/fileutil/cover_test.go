package fileutil

import (
	"bytes"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngServer(t *testing.T, width, height int) *httptest.Server {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	payload := buf.Bytes()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
}

func TestDownloadCover(t *testing.T) {
	server := pngServer(t, 40, 60)
	defer server.Close()

	dir := t.TempDir()
	result, err := DownloadCover(CoverDownloadOptions{
		URL:       server.URL + "/poster.png",
		OutputDir: dir,
		Filename:  "Dark - cover.jpg",
		UserAgent: "test-agent",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Downloaded)
	assert.Equal(t, filepath.Join("attachments", "Dark - cover.jpg"), result.RelativePath)
	assert.True(t, FileExists(result.LocalPath))

	img, err := imaging.Open(result.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
}

func TestDownloadCoverResizes(t *testing.T) {
	server := pngServer(t, 800, 1200)
	defer server.Close()

	dir := t.TempDir()
	result, err := DownloadCover(CoverDownloadOptions{
		URL:       server.URL + "/poster.png",
		OutputDir: dir,
		Filename:  "Dark - cover.jpg",
		MaxWidth:  500,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	img, err := imaging.Open(result.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, 500, img.Bounds().Dx())
	assert.Equal(t, 750, img.Bounds().Dy(), "aspect ratio preserved")
}

func TestDownloadCoverSkipsExisting(t *testing.T) {
	server := pngServer(t, 10, 10)
	defer server.Close()

	dir := t.TempDir()
	attachments := filepath.Join(dir, "attachments")
	require.NoError(t, os.MkdirAll(attachments, 0755))
	existing := filepath.Join(attachments, "Dark - cover.jpg")
	require.NoError(t, os.WriteFile(existing, []byte("placeholder"), 0644))

	result, err := DownloadCover(CoverDownloadOptions{
		URL:       server.URL + "/poster.png",
		OutputDir: dir,
		Filename:  "Dark - cover.jpg",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Downloaded)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "placeholder", string(data), "existing cover untouched without UpdateCovers")
}

func TestDownloadCoverEmptyURL(t *testing.T) {
	result, err := DownloadCover(CoverDownloadOptions{OutputDir: t.TempDir()})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestDownloadCoverServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := DownloadCover(CoverDownloadOptions{
		URL:       server.URL + "/poster.png",
		OutputDir: t.TempDir(),
		Filename:  "Dark - cover.jpg",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 403")
}

func TestBuildCoverFilename(t *testing.T) {
	assert.Equal(t, "Dark - City - cover.jpg", BuildCoverFilename("Dark: City"))
}
