package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/pinterest-downloader/internal/models"
	"github.com/ignatzorin/pinterest-downloader/internal/pkg/apperror"
)

const inputURL = "https://pin.it/abc123"

func normalize(t *testing.T, payload string) *models.MediaResult {
	t.Helper()
	result, err := New().Normalize([]byte(payload), inputURL)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func TestNormalize_ExplicitVideoExtensionWins(t *testing.T) {
	result := normalize(t, `{"status":true,"result":{"title":"T","media":{"url":"https://i.pinimg.com/originals/a/b.jpg","extension":"mp4"}}}`)

	assert.True(t, result.IsVideo)
	assert.Equal(t, models.MediaTypeVideo, result.MediaType)
	assert.Equal(t, "mp4", result.Extension.ValueOrZero())
	assert.Equal(t, "video/mp4", result.MimeType.ValueOrZero())
	assert.Equal(t, models.DefaultVideoQuality, result.Quality)
}

func TestNormalize_ImageExtensionFromURLWithQuery(t *testing.T) {
	result := normalize(t, `{"status":true,"result":{"title":"T","media":{"url":"https://i.pinimg.com/736x/pic.png?w=200"}}}`)

	assert.False(t, result.IsVideo)
	assert.Equal(t, models.MediaTypeImage, result.MediaType)
	assert.Equal(t, "png", result.Extension.ValueOrZero())
	assert.Equal(t, "image/png", result.MimeType.ValueOrZero())
	assert.Equal(t, models.DefaultImageQuality, result.Quality)
}

func TestNormalize_VideoExtensionInQueryKeepsImage(t *testing.T) {
	result := normalize(t, `{"status":true,"result":{"media":{"url":"https://i.pinimg.com/originals/a.jpg?src=b.mp4"}}}`)

	assert.False(t, result.IsVideo)
	assert.Equal(t, models.MediaTypeImage, result.MediaType)
	assert.Equal(t, "jpg", result.Extension.ValueOrZero())
	assert.Equal(t, "image/jpeg", result.MimeType.ValueOrZero())
	assert.Equal(t, models.DefaultImageQuality, result.Quality)
}

func TestNormalize_NoDescriptionSentinel(t *testing.T) {
	result := normalize(t, `{"status":true,"result":{"title":"T","description":"No description","media":{"url":"https://x/y.jpg"}}}`)

	assert.False(t, result.Description.Valid)

	body, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"description":null`)
}

func TestNormalize_DescriptionKept(t *testing.T) {
	result := normalize(t, `{"status":true,"result":{"description":"  Sunset  ","media":{"url":"https://x/y.jpg"}}}`)

	assert.Equal(t, "Sunset", result.Description.ValueOrZero())
}

func TestNormalize_Defaults(t *testing.T) {
	result := normalize(t, `{"status":true,"result":{"media":{"url":"https://i.pinimg.com/originals/a/b"}}}`)

	assert.Equal(t, models.DefaultTitle, result.Title)
	assert.Equal(t, inputURL, result.SourceURL)
	assert.False(t, result.Extension.Valid)
	assert.False(t, result.MimeType.Valid)
	assert.False(t, result.FileSize.Valid)
	assert.False(t, result.FormattedSize.Valid)
	assert.False(t, result.Author.Valid)
	assert.False(t, result.Board.Valid)
	assert.False(t, result.IsVideo)
}

func TestNormalize_UpstreamFieldsPassThrough(t *testing.T) {
	result := normalize(t, `{"status":true,"result":{"title":"Cats","media":{"url":"https://v.pinimg.com/videos/mc/720p/x.mp4","quality":"720p","size":1536},"source_url":"https://www.pinterest.com/pin/1/"}}`)

	assert.Equal(t, "Cats", result.Title)
	assert.Equal(t, "720p", result.Quality)
	assert.Equal(t, int64(1536), result.FileSize.ValueOrZero())
	assert.Equal(t, "1.5 KB", result.FormattedSize.ValueOrZero())
	assert.Equal(t, "https://www.pinterest.com/pin/1/", result.SourceURL)
}

func TestNormalize_FormattedSizeFromUpstream(t *testing.T) {
	result := normalize(t, `{"status":true,"result":{"media":{"url":"https://x/y.jpg","size":"2048","formattedSize":"2 KB (approx)"}}}`)

	assert.Equal(t, int64(2048), result.FileSize.ValueOrZero())
	assert.Equal(t, "2 KB (approx)", result.FormattedSize.ValueOrZero())
}

func TestNormalize_NotFound(t *testing.T) {
	payloads := map[string]string{
		"status false":      `{"status":false,"result":{"title":"T","media":{"url":"https://x/y.jpg"}}}`,
		"status missing":    `{"result":{"title":"T","media":{"url":"https://x/y.jpg"}}}`,
		"result missing":    `{"status":true}`,
		"result not object": `{"status":true,"result":"oops"}`,
		"media url missing": `{"status":true,"result":{"title":"T","media":{}}}`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			result, err := New().Normalize([]byte(payload), inputURL)
			assert.Nil(t, result)
			assert.True(t, apperror.IsNotFound(err), "ожидался NOT_FOUND, получено %v", err)
		})
	}
}

func TestNormalize_MalformedBody(t *testing.T) {
	result, err := New().Normalize([]byte(`<html>bad gateway</html>`), inputURL)

	assert.Nil(t, result)
	assert.Equal(t, apperror.ErrCodeUpstream, apperror.CodeOf(err))
}

func TestIsVideo_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		ext      string
		url      string
		expected bool
	}{
		{"явное mp4", "mp4", "https://x/y.jpg", true},
		{"явное MOV с точкой", ".MOV", "https://x/y", true},
		{"явное jpg против /videos/", "jpg", "https://v.pinimg.com/videos/y.mp4", false},
		{"webm в конце URL", "", "https://x/y.webm", true},
		{"mkv перед query", "", "https://x/y.mkv?token=1", true},
		{"подстрока mp4 в середине не считается", "", "https://x/mp4.backup/y.jpg", false},
		{"mp4 в query не делает jpg видео", "", "https://i.pinimg.com/originals/a.jpg?src=b.mp4", false},
		{"MP4 в верхнем регистре", "", "https://x/Y.MP4", true},
		{"сегмент /videos/", "", "https://v.pinimg.com/videos/hls/x.m3u8", true},
		{"превью из /videos/ с jpg", "", "https://v.pinimg.com/videos/thumbnails/x.jpg", false},
		{"неизвестное явное расширение", "m3u8", "https://v.pinimg.com/videos/x.m3u8", true},
		{"по умолчанию изображение", "", "https://i.pinimg.com/originals/x", false},
		{"пустой URL", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsVideo(tt.ext, tt.url))
		})
	}
}

func TestInferExtension(t *testing.T) {
	tests := map[string]string{
		"https://x/y.png?w=200":          "png",
		"https://x/a.b/y.JPG":            "jpg",
		"https://x/y.mp4":                "mp4",
		"https://x/y":                    "",
		"https://pinimg.com":             "",
		"https://x/y.tar-gz":             "",
		"":                               "",
		"https://x/y.webp#fragment":      "webp",
		"https://x/%zz/y.gif?bad=escape": "gif",
	}

	for in, expected := range tests {
		assert.Equal(t, expected, InferExtension(in), "url: %q", in)
	}
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "0 Bytes", FormatFileSize(0))
	assert.Equal(t, "500 Bytes", FormatFileSize(500))
	assert.Equal(t, "1 KB", FormatFileSize(1024))
	assert.Equal(t, "1.5 KB", FormatFileSize(1536))
	assert.Equal(t, "1 MB", FormatFileSize(1024*1024))
	assert.Equal(t, "2.25 GB", FormatFileSize(2415919104))
	assert.Equal(t, "2048 GB", FormatFileSize(2*1024*1024*1024*1024))
}
