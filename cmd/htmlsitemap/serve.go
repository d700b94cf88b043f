package main

import (
	"fmt"
	"log/slog"

	"github.com/fwojciec/htmlsitemap"
	shttp "github.com/fwojciec/htmlsitemap/http"
	logging "github.com/fwojciec/htmlsitemap/slog"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(deps.Stderr, nil))
	}

	var renders htmlsitemap.RenderService = logging.NewLoggingRenderService(newPlugin(deps, c.BaseURL), logger)

	server := shttp.NewServer(c.Site, deps.Configs, renders)
	server.Addr = c.Addr
	server.Languages = c.Languages
	server.Logger = logger
	if c.RateLimit > 0 {
		server.Limiter = shttp.NewClientLimiter(c.RateLimit, c.Burst)
	}

	logger.Info("serving sitemaps", "addr", c.Addr, "site", c.Site, "languages", c.Languages)
	if err := server.Run(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	return nil
}
