package models

// MediaType константы типов медиа
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Значения по умолчанию для канонического ответа
const (
	DefaultTitle        = "Pinterest Pin"
	DefaultVideoQuality = "HD"
	DefaultImageQuality = "High Quality"

	// NoDescriptionSentinel - строка, которой апстрим обозначает отсутствие описания.
	NoDescriptionSentinel = "No description"
)

// VideoExtensions список распознаваемых расширений видео
var VideoExtensions = map[string]struct{}{
	"mp4":  {},
	"mov":  {},
	"avi":  {},
	"webm": {},
	"mkv":  {},
}

// ImageExtensions список распознаваемых расширений изображений
var ImageExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
	"webp": {},
}

// IsVideoExtension проверяет, что расширение относится к видео.
func IsVideoExtension(ext string) bool {
	_, ok := VideoExtensions[ext]
	return ok
}

// IsImageExtension проверяет, что расширение относится к изображению.
func IsImageExtension(ext string) bool {
	_, ok := ImageExtensions[ext]
	return ok
}
