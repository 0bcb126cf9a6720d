package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ignatzorin/pinterest-downloader/internal/interface/http/response"
	"github.com/ignatzorin/pinterest-downloader/internal/logger"
	"github.com/ignatzorin/pinterest-downloader/internal/pkg/apperror"
)

const (
	defaultRateLimit  = 30
	defaultRatePeriod = time.Minute
)

// RateLimitMiddleware ограничивает число запросов с одного IP к одному маршруту.
// Каждый запрос к /api/download стоит одного обращения к апстриму, поэтому лимит
// считается отдельно для каждого маршрута, на котором висит middleware.
func RateLimitMiddleware(limit int64, period time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = defaultRateLimit
	}
	if period <= 0 {
		period = defaultRatePeriod
	}

	instance := limiter.New(memory.NewStore(), limiter.Rate{Period: period, Limit: limit})

	return func(c *gin.Context) {
		key := rateLimitKey(c)

		state, err := instance.Get(c, key)
		if err != nil {
			response.AbortWithError(c, apperror.Wrap(err, apperror.ErrCodeInternal, apperror.MsgInternal), false)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(state.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(state.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(state.Reset, 10))

		if state.Reached {
			logger.Get().WithFields(logrus.Fields{
				"key":        key,
				"request_id": c.GetString(ContextRequestIDKey),
			}).Warn("rate limit reached")

			response.AbortWithError(c, apperror.New(apperror.ErrCodeTooManyRequests, apperror.MsgTooManyRequests), false)
			return
		}

		c.Next()
	}
}

// rateLimitKey - маршрут и IP клиента. Для неизвестного маршрута берётся путь запроса.
func rateLimitKey(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	return route + "|" + c.ClientIP()
}
