// Package http serves rendered sitemaps and manages sitemap configs over HTTP.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/htmlsitemap"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// ShutdownTimeout is how long Run waits for in-flight requests on shutdown.
const ShutdownTimeout = 5 * time.Second

// Server exposes the sitemaps of one site.
type Server struct {
	// Addr is the TCP address to listen on.
	Addr string

	// SiteID is the site whose pages are rendered.
	SiteID string

	// Languages lists the supported language codes. The first one is the
	// default when a request names no supported language.
	Languages []string

	// Authenticate reports whether a request comes from a logged-in viewer.
	// When nil every viewer is anonymous.
	Authenticate func(r *http.Request) bool

	// Limiter throttles requests per client. Nil disables throttling.
	Limiter *ClientLimiter

	// Logger receives one line per request. Nil disables request logging.
	Logger *slog.Logger

	Configs htmlsitemap.ConfigService
	Renders htmlsitemap.RenderService

	router *gin.Engine
}

// NewServer creates a new Server with defaults.
func NewServer(siteID string, configs htmlsitemap.ConfigService, renders htmlsitemap.RenderService) *Server {
	return &Server{
		Addr:      ":8080",
		SiteID:    siteID,
		Languages: []string{"en"},
		Configs:   configs,
		Renders:   renders,
	}
}

// Handler returns the HTTP handler of the server. Fields must not change
// after the first call.
func (s *Server) Handler() http.Handler {
	if s.router == nil {
		s.router = s.newRouter()
	}
	return s.router
}

func (s *Server) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if s.Logger != nil {
		router.Use(requestLogger(s.Logger))
	}
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Accept-Language", "If-None-Match"},
		ExposeHeaders:   []string{"Content-Length", "ETag"},
		MaxAge:          12 * time.Hour,
	}))
	if s.Limiter != nil {
		router.Use(s.Limiter.Middleware())
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.GET("/sitemaps/:id", s.handleSitemap)

	api := router.Group("/api")
	{
		configs := api.Group("/configs")
		{
			configs.GET("", s.handleListConfigs)
			configs.POST("", s.handleCreateConfig)
			configs.GET("/:id", s.handleGetConfig)
			configs.PATCH("/:id", s.handleUpdateConfig)
			configs.DELETE("/:id", s.handleDeleteConfig)
		}
	}

	return router
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// language picks the request language: a supported ?lang= value wins, then
// the best Accept-Language match, then the default language.
func (s *Server) language(r *http.Request) (string, error) {
	if len(s.Languages) == 0 {
		return "", htmlsitemap.Errorf(htmlsitemap.EINTERNAL, "no languages configured")
	}

	if lang := r.URL.Query().Get("lang"); lang != "" {
		for _, l := range s.Languages {
			if l == lang {
				return l, nil
			}
		}
		return "", htmlsitemap.Errorf(htmlsitemap.EINVALID, "unsupported language %q", lang)
	}

	tags := make([]language.Tag, 0, len(s.Languages))
	for _, l := range s.Languages {
		tags = append(tags, language.Make(l))
	}
	_, idx := language.MatchStrings(language.NewMatcher(tags), r.Header.Get("Accept-Language"))
	return s.Languages[idx], nil
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"client", c.ClientIP(),
			"duration", time.Since(begin),
		)
	}
}
