package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/ignatzorin/pinterest-downloader/internal/pkg/apperror"
)

const defaultMaxBodyBytes = 2 * 1024 * 1024

// Recorder принимает результат каждого обращения к апстриму.
type Recorder interface {
	ObserveUpstream(outcome string, d time.Duration)
}

// Client ходит во внешний сервис загрузки пинов.
// Ретраев нет: любая ошибка сразу возвращается классифицированной.
type Client struct {
	baseURL      string
	userAgent    string
	timeout      time.Duration
	maxBodyBytes int64
	httpClient   *http.Client
	recorder     Recorder
}

// Option настраивает клиента.
type Option func(*Client)

// WithRecorder подключает сбор метрик.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// WithMaxBodyBytes ограничивает размер читаемого тела ответа.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// WithHTTPClient подменяет транспорт. Таймаут клиента всё равно ограничен timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient создаёт экземпляр клиента.
func NewClient(baseURL string, timeout time.Duration, userAgent string, opts ...Option) *Client {
	c := &Client{
		baseURL:      baseURL,
		userAgent:    userAgent,
		timeout:      timeout,
		maxBodyBytes: defaultMaxBodyBytes,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch запрашивает у апстрима данные пина и возвращает сырое тело ответа.
// Ошибки всегда *apperror.AppError: TIMEOUT, NOT_FOUND, FORBIDDEN или UPSTREAM_ERROR.
func (c *Client) Fetch(ctx context.Context, pinURL string) ([]byte, error) {
	started := time.Now()
	body, err := c.fetch(ctx, pinURL)

	if c.recorder != nil {
		outcome := "ok"
		if err != nil {
			outcome = string(apperror.CodeOf(err))
		}
		c.recorder.ObserveUpstream(outcome, time.Since(started))
	}

	return body, err
}

func (c *Client) fetch(ctx context.Context, pinURL string) ([]byte, error) {
	endpoint, err := c.endpoint(pinURL)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUpstream, apperror.MsgUpstreamFailure)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUpstream, apperror.MsgUpstreamFailure)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, apperror.Wrap(fmt.Errorf("downloader: тело ответа превышает %d байт", c.maxBodyBytes), apperror.ErrCodeUpstream, apperror.MsgUpstreamFailure)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperror.Wrap(statusError(resp.StatusCode, body), apperror.ErrCodeNotFound, apperror.MsgPinNotFound)
	case resp.StatusCode == http.StatusForbidden:
		return nil, apperror.Wrap(statusError(resp.StatusCode, body), apperror.ErrCodeForbidden, apperror.MsgPinForbidden)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, apperror.Wrap(statusError(resp.StatusCode, body), apperror.ErrCodeUpstream, apperror.MsgUpstreamFailure)
	}

	return body, nil
}

// endpoint собирает URL апстрима с пином в query-параметре url.
func (c *Client) endpoint(pinURL string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("downloader: некорректный baseURL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("downloader: baseURL должен быть абсолютным: %q", c.baseURL)
	}

	q := u.Query()
	q.Set("url", pinURL)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// classifyTransportError отличает истёкший дедлайн от прочих сетевых ошибок.
func classifyTransportError(ctx context.Context, err error) error {
	if isTimeout(ctx, err) {
		return apperror.Wrap(err, apperror.ErrCodeTimeout, apperror.MsgTimeout)
	}
	return apperror.Wrap(err, apperror.ErrCodeUpstream, apperror.MsgUpstreamFailure)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// statusError берёт message из JSON тела ошибки, если он есть.
func statusError(status int, body []byte) error {
	if gjson.ValidBytes(body) {
		if msg := strings.TrimSpace(gjson.GetBytes(body, "message").String()); msg != "" {
			return fmt.Errorf("downloader: код ответа %d: %s", status, msg)
		}
	}
	return fmt.Errorf("downloader: код ответа %d", status)
}
