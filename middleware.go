package compuclinic

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// Cache policies. The content index may be served stale by shared caches
// while they revalidate in the background.
const (
	cacheIndex   = "public, s-maxage=3600, stale-while-revalidate=600"
	cacheStatic  = "public, max-age=31536000, immutable"
	cacheFeeds   = "public, max-age=3600"
	cachePages   = "public, max-age=300"
	cacheNoStore = "no-store"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())
	e.Pre(middleware.RemoveTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
	}))

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s) id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; connect-src 'self'",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(cacheControlMiddleware)
}

// cacheControlMiddleware sets the default Cache-Control for a path.
// Handlers and the error handler may override it.
func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", cacheControlFor(c.Request().URL.Path))
		return next(c)
	}
}

func cacheControlFor(path string) string {
	switch {
	case strings.HasPrefix(path, "/public/") || path == "/favicon.svg":
		return cacheStatic
	case path == "/llms.txt":
		return cacheIndex
	case path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt":
		return cacheFeeds
	case path == "/healthz":
		return cacheNoStore
	default:
		return cachePages
	}
}

func parseLogLevel(s string) log.Lvl {
	switch s {
	case LogLevelDebug:
		return log.DEBUG
	case LogLevelWarn:
		return log.WARN
	case LogLevelError:
		return log.ERROR
	case LogLevelOff:
		return log.OFF
	default:
		return log.INFO
	}
}
