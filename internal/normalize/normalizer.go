package normalize

import (
	"fmt"
	"math"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/guregu/null/v6"
	"github.com/h2non/filetype"
	"github.com/tidwall/gjson"

	"github.com/ignatzorin/pinterest-downloader/internal/models"
	"github.com/ignatzorin/pinterest-downloader/internal/pkg/apperror"
)

var (
	trailingExt = regexp.MustCompile(`\.([A-Za-z0-9]+)(?:\?.*)?$`)
	alnum       = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// Normalizer приводит ответ апстрима к каноническому MediaResult.
// Не имеет состояния и безопасен для конкурентного использования.
type Normalizer struct{}

// New создаёт нормализатор.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize разбирает тело ответа апстрима. inputURL используется как sourceUrl,
// если апстрим его не вернул. Паника внутри разбора превращается в INTERNAL_ERROR.
func (n *Normalizer) Normalize(payload []byte, inputURL string) (result *models.MediaResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = apperror.Wrap(fmt.Errorf("normalize: panic: %v", r), apperror.ErrCodeInternal, apperror.MsgInternal)
		}
	}()

	if !gjson.ValidBytes(payload) {
		return nil, apperror.Wrap(fmt.Errorf("normalize: тело ответа не является JSON"), apperror.ErrCodeUpstream, apperror.MsgUpstreamFailure)
	}

	root := gjson.ParseBytes(payload)
	if !root.Get("status").Bool() {
		return nil, apperror.New(apperror.ErrCodeNotFound, apperror.MsgPinUnavailable)
	}

	data := root.Get("result")
	if !data.IsObject() {
		return nil, apperror.New(apperror.ErrCodeNotFound, apperror.MsgPinUnavailable)
	}

	media := data.Get("media")
	mediaURL := strings.TrimSpace(media.Get("url").String())
	if mediaURL == "" {
		return nil, apperror.Wrap(fmt.Errorf("normalize: в ответе нет media.url"), apperror.ErrCodeNotFound, apperror.MsgPinUnavailable)
	}

	explicitExt := cleanExtension(media.Get("extension").String())
	ext := explicitExt
	if ext == "" {
		ext = InferExtension(mediaURL)
	}
	isVideo := IsVideo(explicitExt, mediaURL)

	out := &models.MediaResult{
		Title:       textOr(data.Get("title"), models.DefaultTitle),
		Description: description(data.Get("description")),
		MediaURL:    mediaURL,
		IsVideo:     isVideo,
		MediaType:   models.MediaTypeImage,
		Quality:     textOr(media.Get("quality"), defaultQuality(isVideo)),
		SourceURL:   textOr(data.Get("source_url"), strings.TrimSpace(inputURL)),
	}
	if isVideo {
		out.MediaType = models.MediaTypeVideo
	}
	if ext != "" {
		out.Extension = null.StringFrom(ext)
		if mime := mimeType(ext); mime != "" {
			out.MimeType = null.StringFrom(mime)
		}
	}

	size := fileSize(media.Get("size"))
	if size > 0 {
		out.FileSize = null.IntFrom(size)
	}
	if formatted := strings.TrimSpace(media.Get("formattedSize").String()); formatted != "" {
		out.FormattedSize = null.StringFrom(formatted)
	} else if size > 0 {
		out.FormattedSize = null.StringFrom(FormatFileSize(size))
	}

	return out, nil
}

// IsVideo определяет тип медиа. Порядок проверок:
// явное расширение, расширение в конце пути URL (query не учитывается),
// сегмент /videos/ в пути. По умолчанию - изображение.
func IsVideo(explicitExt, mediaURL string) bool {
	explicitExt = cleanExtension(explicitExt)
	if models.IsVideoExtension(explicitExt) {
		return true
	}
	// Известное расширение изображения не должно противоречить isVideo.
	if models.IsImageExtension(explicitExt) {
		return false
	}

	inferred := InferExtension(mediaURL)
	if models.IsVideoExtension(inferred) {
		return true
	}
	if models.IsImageExtension(inferred) {
		return false
	}

	return strings.Contains(urlPath(mediaURL), "/videos/")
}

// InferExtension достаёт последнее расширение из пути URL (без query).
// Если расширения нет, возвращает пустую строку.
func InferExtension(mediaURL string) string {
	mediaURL = strings.TrimSpace(mediaURL)
	if mediaURL == "" {
		return ""
	}

	u, err := url.Parse(mediaURL)
	if err != nil {
		if m := trailingExt.FindStringSubmatch(mediaURL); m != nil {
			return strings.ToLower(m[1])
		}
		return ""
	}

	ext := strings.TrimPrefix(path.Ext(u.Path), ".")
	if !alnum.MatchString(ext) {
		return ""
	}
	return strings.ToLower(ext)
}

// FormatFileSize форматирует размер в байтах: 1536 -> "1.5 KB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	units := []string{"Bytes", "KB", "MB", "GB"}
	value := float64(bytes)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}

	value = math.Round(value*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + units[i]
}

func defaultQuality(isVideo bool) string {
	if isVideo {
		return models.DefaultVideoQuality
	}
	return models.DefaultImageQuality
}

// description отбрасывает пустое описание и заглушку апстрима.
func description(v gjson.Result) null.String {
	if v.Type != gjson.String {
		return null.String{}
	}
	text := strings.TrimSpace(v.String())
	if text == "" || text == models.NoDescriptionSentinel {
		return null.String{}
	}
	return null.StringFrom(text)
}

func textOr(v gjson.Result, fallback string) string {
	if v.Type == gjson.String || v.Type == gjson.Number {
		if text := strings.TrimSpace(v.String()); text != "" {
			return text
		}
	}
	return fallback
}

func fileSize(v gjson.Result) int64 {
	switch v.Type {
	case gjson.Number:
		return v.Int()
	case gjson.String:
		n, err := strconv.ParseInt(strings.TrimSpace(v.String()), 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func cleanExtension(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if !alnum.MatchString(ext) {
		return ""
	}
	return ext
}

func mimeType(ext string) string {
	if ext == "jpeg" {
		ext = "jpg"
	}
	kind := filetype.GetType(ext)
	if kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

func urlPath(mediaURL string) string {
	if u, err := url.Parse(mediaURL); err == nil {
		return strings.ToLower(u.Path)
	}
	return strings.ToLower(mediaURL)
}
