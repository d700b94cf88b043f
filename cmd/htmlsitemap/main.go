package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/htmlsitemap"
	"github.com/fwojciec/htmlsitemap/sitemap"
	logging "github.com/fwojciec/htmlsitemap/slog"
	"github.com/fwojciec/htmlsitemap/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("htmlsitemap"),
		kong.Description("Render HTML sitemaps of a page tree."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'htmlsitemap --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set HTMLSITEMAP_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	var pages htmlsitemap.PageService = sqlite.NewPageService(m.DB)
	if cli.Debug {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, nil))
		pages = logging.NewLoggingPageService(pages, deps.Logger)
	}
	var sitemaps htmlsitemap.SitemapService = sitemap.NewSelector(pages)
	if deps.Logger != nil {
		sitemaps = logging.NewLoggingSitemapService(sitemaps, deps.Logger)
	}

	deps.DB = m.DB
	deps.Pages = pages
	deps.Configs = sqlite.NewConfigService(m.DB)
	deps.Sitemaps = sitemaps

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("HTMLSITEMAP_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "htmlsitemap.db"
	}
	dir := filepath.Join(home, ".htmlsitemap")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "htmlsitemap.db")
}
