package service

import (
	"context"
	"strings"

	"github.com/ignatzorin/pinterest-downloader/internal/models"
	"github.com/ignatzorin/pinterest-downloader/internal/pkg/apperror"
	"github.com/ignatzorin/pinterest-downloader/internal/validation"
)

// PinFetcher получает сырой ответ апстрима по ссылке на пин.
type PinFetcher interface {
	Fetch(ctx context.Context, pinURL string) ([]byte, error)
}

// PinValidator проверяет ссылку до обращения к апстриму.
type PinValidator interface {
	Classify(input string) (validation.PinReference, bool)
}

// PayloadNormalizer приводит ответ апстрима к MediaResult.
type PayloadNormalizer interface {
	Normalize(payload []byte, inputURL string) (*models.MediaResult, error)
}

// DownloadService связывает валидацию, запрос к апстриму и нормализацию.
// Состояния между запросами нет.
type DownloadService struct {
	validator  PinValidator
	fetcher    PinFetcher
	normalizer PayloadNormalizer
}

func NewDownloadService(validator PinValidator, fetcher PinFetcher, normalizer PayloadNormalizer) *DownloadService {
	return &DownloadService{validator: validator, fetcher: fetcher, normalizer: normalizer}
}

// Download проверяет ссылку, делает один запрос к апстриму и возвращает канонический результат.
// Ошибки всегда *apperror.AppError.
func (s *DownloadService) Download(ctx context.Context, rawURL string) (*models.MediaResult, error) {
	pinURL := strings.TrimSpace(rawURL)
	if pinURL == "" {
		return nil, apperror.ErrURLRequired
	}

	if _, ok := s.validator.Classify(pinURL); !ok {
		return nil, apperror.ErrInvalidURL
	}

	payload, err := s.fetcher.Fetch(ctx, pinURL)
	if err != nil {
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeUpstream, apperror.MsgUpstreamFailure)
	}

	result, err := s.normalizer.Normalize(payload, pinURL)
	if err != nil {
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, apperror.MsgInternal)
	}

	return result, nil
}
