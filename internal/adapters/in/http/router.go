package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const openAPIPath = "/api/v1/openapi.yaml"

type RouterConfig struct {
	// JWTSecret enables bearer token identities. Empty means every request is anonymous.
	JWTSecret string
	// RateLimit is the per-client request rate per second; 0 disables limiting.
	RateLimit        float64
	RateBurst        int
	ValidateRequests bool
	LogLevel         string
}

// NewRouter assembles the echo instance: middleware, API routes and the
// operational endpoints /health, /metrics, /api/v1/openapi.yaml and the
// Swagger UI under /swagger/.
func NewRouter(
	ctx context.Context,
	server *Server,
	metrics *Metrics,
	cfg RouterConfig,
	logger *zap.Logger,
) (*echo.Echo, error) {
	logger = logger.Named("http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(parseLogLevel(cfg.LogLevel))
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(requestLogger(logger))
	if cfg.RateLimit > 0 {
		e.Use(rateLimiter(cfg.RateLimit, cfg.RateBurst))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", metrics.Handler())
	e.GET(openAPIPath, func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", OpenAPIDocument())
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(swaggerDocument(openAPIPath)))

	apiMiddleware := make([]echo.MiddlewareFunc, 0, 2)
	if cfg.JWTSecret != "" {
		apiMiddleware = append(apiMiddleware, Identity([]byte(cfg.JWTSecret)))
	}
	if cfg.ValidateRequests {
		doc, err := LoadOpenAPI(ctx)
		if err != nil {
			return nil, err
		}
		validator, err := RequestValidator(doc)
		if err != nil {
			return nil, err
		}
		apiMiddleware = append(apiMiddleware, validator)
	}

	RegisterHandlers(e.Group("", apiMiddleware...), server)
	return e, nil
}

// swaggerDocument points the UI at the embedded document only. echoSwagger.URL
// would append to the default doc.json/doc.yaml list, which is served from a
// swag registry this service never fills.
func swaggerDocument(url string) func(*echoSwagger.Config) {
	return func(c *echoSwagger.Config) {
		c.URLs = []string{url}
	}
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Status >= http.StatusInternalServerError {
				logger.Warn("request", fields...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}

func rateLimiter(rps float64, burst int) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health" || c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/swagger")
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(rps),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
	})
}

func parseLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
