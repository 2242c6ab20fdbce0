// Package compuclinic serves the CompuClinic marketing site and blog.
// Posts are read from a headless CMS on every request; the server keeps no
// content of its own.
//
// Routes: the home page, post pages, a plain-text content index for AI
// agents (/llms.txt), an RSS feed and a sitemap.
package compuclinic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/compuclinic/cms"
	"github.com/eringen/compuclinic/content"
	"github.com/eringen/compuclinic/views"
)

// shutdownTimeout bounds how long in-flight requests may take to finish.
const shutdownTimeout = 10 * time.Second

// App is the central application. It wires together the CMS repository,
// handlers and middleware. It holds no mutable state after New returns.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Posts  *content.Repository

	querier      cms.Querier
	dates        content.DateFormat
	customRoutes []func(*App)
}

// New validates cfg and builds an App with routes and middleware installed.
// Unless WithQuerier is given, a CMS client is built from cfg.CMS.
func New(cfg SiteConfig, opts ...Option) (*App, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("compuclinic: invalid config: %w", err)
	}

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		dates:  cfg.DateFormat(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.querier == nil {
		client, err := cms.NewClient(cfg.CMS)
		if err != nil {
			return nil, fmt.Errorf("compuclinic: %w", err)
		}
		a.querier = client
	}

	a.Posts = content.NewRepository(a.querier)
	a.Posts.OnInvalid = func(i int, err error) {
		a.Echo.Logger.Warnf("skipping invalid post record %d: %v", i, err)
	}

	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(parseLogLevel(cfg.LogLevel))

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a, nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/healthz", handleHealth)

	e.GET("/", a.handleHome)
	e.GET("/posts/:slug", a.handlePost)
	e.GET("/llms.txt", a.handleLLMs)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/blog", handleBlogRedirect)
}

// Run serves HTTP until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Echo.Logger.Infof("listening on %s (cms project %q, dataset %q)",
			a.Config.Addr, a.Config.CMS.ProjectID, a.Config.CMS.Dataset)
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("compuclinic: serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		a.Echo.Logger.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.Echo.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Site returns the view-level site settings.
func (a *App) Site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
	}
}
