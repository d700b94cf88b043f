package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/htmlsitemap"
	"github.com/fwojciec/htmlsitemap/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Pages    htmlsitemap.PageService
	Configs  htmlsitemap.ConfigService
	Sitemaps htmlsitemap.SitemapService

	// Logger is set when debug logging is enabled.
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug bool `help:"Log service calls to stderr"`

	Import ImportCmd `cmd:"" help:"Import a YAML page tree"`
	Config ConfigCmd `cmd:"" help:"Manage sitemap configs"`
	Render RenderCmd `cmd:"" help:"Render a sitemap"`
	Serve  ServeCmd  `cmd:"" help:"Serve sitemaps over HTTP"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File     string `arg:"" type:"existingfile" help:"YAML page tree file, or HTML page with --html"`
	HTML     bool   `help:"Read the tree from the navigation menu of an HTML page"`
	Selector string `default:"nav" help:"CSS selector of the navigation menu (with --html)"`
	Site     string `env:"HTMLSITEMAP_SITE" help:"Site ID (with --html)"`
	Lang     string `default:"en" help:"Language of the menu titles (with --html)"`
}

// ConfigCmd groups the "config" subcommands.
type ConfigCmd struct {
	Add    ConfigAddCmd    `cmd:"" help:"Create a sitemap config"`
	List   ConfigListCmd   `cmd:"" help:"List sitemap configs"`
	Show   ConfigShowCmd   `cmd:"" help:"Show a sitemap config"`
	Update ConfigUpdateCmd `cmd:"" help:"Update a sitemap config"`
	Delete ConfigDeleteCmd `cmd:"" help:"Delete a sitemap config"`
}

// ConfigAddCmd is the "config add" subcommand.
type ConfigAddCmd struct {
	MinDepth     int    `default:"0" help:"Lowest tree depth included"`
	MaxDepth     *int   `help:"Highest tree depth included (unbounded when unset)"`
	InNavigation string `enum:"true,false,any" default:"any" help:"Navigation flag filter (true, false, any)"`
}

// ConfigListCmd is the "config list" subcommand.
type ConfigListCmd struct {
	Offset int `help:"Number of configs to skip"`
	Limit  int `help:"Maximum number of configs to list"`
}

// ConfigShowCmd is the "config show" subcommand.
type ConfigShowCmd struct {
	ID string `arg:"" help:"Config ID"`
}

// ConfigUpdateCmd is the "config update" subcommand.
type ConfigUpdateCmd struct {
	ID           string `arg:"" help:"Config ID"`
	MinDepth     *int   `help:"Lowest tree depth included"`
	MaxDepth     *int   `help:"Highest tree depth included"`
	Unbounded    bool   `help:"Remove the maximum depth"`
	InNavigation string `help:"Navigation flag filter (true, false, any)"`
}

// ConfigDeleteCmd is the "config delete" subcommand.
type ConfigDeleteCmd struct {
	ID    string `arg:"" help:"Config ID"`
	Force bool   `help:"Confirm deletion"`
}

// RenderCmd is the "render" subcommand.
type RenderCmd struct {
	Config        string `help:"Stored config ID (inline flags are used when empty)"`
	MinDepth      int    `default:"0" help:"Lowest tree depth included"`
	MaxDepth      *int   `help:"Highest tree depth included (unbounded when unset)"`
	InNavigation  string `enum:"true,false,any" default:"any" help:"Navigation flag filter (true, false, any)"`
	Site          string `required:"" env:"HTMLSITEMAP_SITE" help:"Site ID"`
	Lang          string `default:"en" help:"Language of titles and URLs"`
	Authenticated bool   `help:"Render for a logged-in viewer"`
	Format        string `enum:"html,xml,markdown,md" default:"html" help:"Output format (html, xml, markdown)"`
	BaseURL       string `help:"Absolute URL prefix for the xml format"`
	Output        string `short:"o" type:"path" help:"Write to file instead of stdout"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr      string   `default:":8080" env:"HTMLSITEMAP_ADDR" help:"Listen address"`
	Site      string   `required:"" env:"HTMLSITEMAP_SITE" help:"Site ID"`
	Languages []string `default:"en" help:"Supported languages, default first"`
	BaseURL   string   `help:"Absolute URL prefix for the xml format"`
	RateLimit float64  `default:"10" help:"Requests per second per client (0 disables)"`
	Burst     int      `default:"20" help:"Request burst per client"`
}
