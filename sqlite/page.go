package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/htmlsitemap"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ htmlsitemap.PageService = (*PageService)(nil)

// maxSiblings is the number of children a page can hold with PathStepLen
// base-36 characters per level.
const maxSiblings = 36 * 36 * 36 * 36

// PageService implements htmlsitemap.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// CreatePage inserts a page and its titles in one transaction.
func (s *PageService) CreatePage(ctx context.Context, page *htmlsitemap.Page) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var parent *htmlsitemap.Page
	if page.ParentID != "" {
		if parent, err = findPageByID(ctx, tx, page.ParentID); err != nil {
			return err
		}
		if page.SiteID == "" {
			page.SiteID = parent.SiteID
		}
		if page.SiteID != parent.SiteID {
			return htmlsitemap.Errorf(htmlsitemap.EINVALID, "page site %q differs from parent site %q", page.SiteID, parent.SiteID)
		}
	}

	if err := page.Validate(); err != nil {
		return err
	}

	path, err := nextChildPath(ctx, tx, page.SiteID, parent)
	if err != nil {
		return err
	}

	page.ID = uuid.New().String()
	page.Path = path
	page.Depth = len(path) / htmlsitemap.PathStepLen
	page.IsHome = parent == nil && path == formatPathStep(0)
	now := time.Now().UTC()
	page.CreatedAt = now
	page.UpdatedAt = now

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pages (id, site_id, parent_id, path, depth, published, login_required, in_navigation, is_home, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, page.ID, page.SiteID, nullString(page.ParentID), page.Path, page.Depth,
		page.Published, page.LoginRequired, page.InNavigation, page.IsHome,
		page.CreatedAt.Format(time.RFC3339), page.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert page: %w", err)
	}

	titles := make(map[string]htmlsitemap.Title, len(page.Titles))
	for lang, t := range page.Titles {
		t.Language = lang
		if t.Slug == "" {
			t.Slug = htmlsitemap.Slugify(t.Title)
		}
		if t.Path == "" && !page.IsHome {
			t.Path = titlePath(parent, lang, t.Slug)
		}
		t.Path = strings.Trim(t.Path, "/")

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO titles (page_id, language, title, slug, path)
			VALUES (?, ?, ?, ?, ?)
		`, page.ID, t.Language, t.Title, t.Slug, t.Path); err != nil {
			return fmt.Errorf("failed to insert title %q: %w", lang, err)
		}
		titles[lang] = t
	}
	page.Titles = titles

	return tx.Commit()
}

// titlePath joins the parent's title path in lang with slug. Children of
// pages without a title in lang are placed under the site root.
func titlePath(parent *htmlsitemap.Page, lang, slug string) string {
	if parent == nil {
		return slug
	}
	pt, ok := parent.Title(lang)
	if !ok || pt.Path == "" {
		return slug
	}
	return pt.Path + "/" + slug
}

// nextChildPath returns the path of a new last child of parent, or of a new
// top-level page of the site when parent is nil.
func nextChildPath(ctx context.Context, tx *sql.Tx, siteID string, parent *htmlsitemap.Page) (string, error) {
	var last sql.NullString
	var err error
	if parent == nil {
		err = tx.QueryRowContext(ctx,
			"SELECT MAX(path) FROM pages WHERE site_id = ? AND parent_id IS NULL", siteID).Scan(&last)
	} else {
		err = tx.QueryRowContext(ctx,
			"SELECT MAX(path) FROM pages WHERE parent_id = ?", parent.ID).Scan(&last)
	}
	if err != nil {
		return "", err
	}

	prefix := ""
	if parent != nil {
		prefix = parent.Path
	}
	if !last.Valid {
		return prefix + formatPathStep(0), nil
	}

	step := last.String[len(last.String)-htmlsitemap.PathStepLen:]
	n, err := strconv.ParseInt(step, 36, 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse path %q: %w", last.String, err)
	}
	if n+1 >= maxSiblings {
		return "", htmlsitemap.Errorf(htmlsitemap.ECONFLICT, "too many children below %q", prefix)
	}
	return prefix + formatPathStep(n+1), nil
}

// formatPathStep encodes a sibling index as one fixed-width path step.
func formatPathStep(n int64) string {
	s := strings.ToUpper(strconv.FormatInt(n, 36))
	return strings.Repeat("0", htmlsitemap.PathStepLen-len(s)) + s
}

// FindPageByID retrieves a page by ID.
func (s *PageService) FindPageByID(ctx context.Context, id string) (*htmlsitemap.Page, error) {
	return findPageByID(ctx, s.db, id)
}

// querier is satisfied by both *DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

const pageColumns = `p.id, p.site_id, COALESCE(p.parent_id, ''), p.path, p.depth,
	p.published, p.login_required, p.in_navigation, p.is_home, p.created_at, p.updated_at`

func findPageByID(ctx context.Context, q querier, id string) (*htmlsitemap.Page, error) {
	row := q.QueryRowContext(ctx, "SELECT "+pageColumns+" FROM pages p WHERE p.id = ?", id)
	page, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, htmlsitemap.Errorf(htmlsitemap.ENOTFOUND, "page not found")
	}
	if err != nil {
		return nil, err
	}

	if err := attachTitles(ctx, q, []*htmlsitemap.Page{page}); err != nil {
		return nil, err
	}
	return page, nil
}

// FindPages retrieves pages matching the filter, ordered by path.
// The title join can match a page once per title, so rows are made
// distinct.
func (s *PageService) FindPages(ctx context.Context, filter htmlsitemap.PageFilter) ([]*htmlsitemap.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT DISTINCT " + pageColumns + " FROM pages p")
	if filter.Language != nil {
		query.WriteString(" JOIN titles t ON t.page_id = p.id AND t.language = ?")
		args = append(args, *filter.Language)
	}
	query.WriteString(" WHERE 1=1")

	if filter.SiteID != nil {
		query.WriteString(" AND p.site_id = ?")
		args = append(args, *filter.SiteID)
	}
	if filter.MinDepth != nil {
		query.WriteString(" AND p.depth >= ?")
		args = append(args, *filter.MinDepth)
	}
	if filter.MaxDepth != nil {
		query.WriteString(" AND p.depth <= ?")
		args = append(args, *filter.MaxDepth)
	}
	if filter.InNavigation != nil {
		query.WriteString(" AND p.in_navigation = ?")
		args = append(args, *filter.InNavigation)
	}
	if filter.Published != nil {
		query.WriteString(" AND p.published = ?")
		args = append(args, *filter.Published)
	}
	if filter.LoginRequired != nil {
		query.WriteString(" AND p.login_required = ?")
		args = append(args, *filter.LoginRequired)
	}

	query.WriteString(" ORDER BY p.path ASC, p.site_id ASC")

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := []*htmlsitemap.Page{}
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := attachTitles(ctx, s.db, pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanPage(row scanner) (*htmlsitemap.Page, error) {
	var page htmlsitemap.Page
	var createdAt, updatedAt string

	if err := row.Scan(&page.ID, &page.SiteID, &page.ParentID, &page.Path, &page.Depth,
		&page.Published, &page.LoginRequired, &page.InNavigation, &page.IsHome,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if page.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if page.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	page.Titles = make(map[string]htmlsitemap.Title)
	return &page, nil
}

// titleBatchSize bounds the IN list of one titles query. SQLite rejects
// statements with more than 32766 parameters.
const titleBatchSize = 500

// attachTitles loads the titles of all languages for pages.
func attachTitles(ctx context.Context, q querier, pages []*htmlsitemap.Page) error {
	byID := make(map[string]*htmlsitemap.Page, len(pages))
	for _, p := range pages {
		byID[p.ID] = p
	}

	for start := 0; start < len(pages); start += titleBatchSize {
		end := min(start+titleBatchSize, len(pages))
		if err := attachTitleBatch(ctx, q, pages[start:end], byID); err != nil {
			return err
		}
	}
	return nil
}

func attachTitleBatch(ctx context.Context, q querier, batch []*htmlsitemap.Page, byID map[string]*htmlsitemap.Page) error {
	args := make([]any, 0, len(batch))
	for _, p := range batch {
		args = append(args, p.ID)
	}

	query := "SELECT page_id, language, title, slug, path FROM titles WHERE page_id IN (?" +
		strings.Repeat(", ?", len(args)-1) + ")"
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var pageID string
		var t htmlsitemap.Title
		if err := rows.Scan(&pageID, &t.Language, &t.Title, &t.Slug, &t.Path); err != nil {
			return err
		}
		if p, ok := byID[pageID]; ok {
			p.Titles[t.Language] = t
		}
	}
	return rows.Err()
}
