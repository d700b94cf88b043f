package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/htmlsitemap"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleSitemap(c *gin.Context) {
	format, err := htmlsitemap.ParseFormat(c.Query("format"))
	if err != nil {
		s.Error(c, err)
		return
	}
	lang, err := s.language(c.Request)
	if err != nil {
		s.Error(c, err)
		return
	}

	req := htmlsitemap.Request{
		SiteID:   s.SiteID,
		Language: lang,
		Viewer: htmlsitemap.Viewer{
			Authenticated: s.Authenticate != nil && s.Authenticate(c.Request),
		},
	}

	var buf bytes.Buffer
	if err := s.Renders.RenderSitemap(c.Request.Context(), &buf, c.Param("id"), req, format); err != nil {
		s.Error(c, err)
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(buf.Bytes()))
	c.Header("ETag", etag)
	c.Header("Content-Language", lang)
	c.Header("Vary", "Accept-Language")
	if etagMatch(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// etagMatch reports whether an If-None-Match header matches etag.
func etagMatch(header, etag string) bool {
	for _, v := range strings.Split(header, ",") {
		v = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v), "W/"))
		if v == "*" || v == etag {
			return true
		}
	}
	return false
}

func (s *Server) handleListConfigs(c *gin.Context) {
	var filter htmlsitemap.ConfigFilter
	var err error
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		s.Error(c, err)
		return
	}
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		s.Error(c, err)
		return
	}

	configs, err := s.Configs.FindConfigs(c.Request.Context(), filter)
	if err != nil {
		s.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"configs": configs})
}

func (s *Server) handleCreateConfig(c *gin.Context) {
	var body struct {
		MinDepth     int   `json:"minDepth"`
		MaxDepth     *int  `json:"maxDepth"`
		InNavigation *bool `json:"inNavigation"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		s.Error(c, htmlsitemap.Errorf(htmlsitemap.EINVALID, "invalid JSON body"))
		return
	}

	cfg := &htmlsitemap.Config{
		MinDepth:     body.MinDepth,
		MaxDepth:     body.MaxDepth,
		InNavigation: body.InNavigation,
	}
	if err := s.Configs.CreateConfig(c.Request.Context(), cfg); err != nil {
		s.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, cfg)
}

func (s *Server) handleGetConfig(c *gin.Context) {
	cfg, err := s.Configs.FindConfigByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) handleUpdateConfig(c *gin.Context) {
	var upd htmlsitemap.ConfigUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		s.Error(c, htmlsitemap.Errorf(htmlsitemap.EINVALID, "invalid JSON body"))
		return
	}

	cfg, err := s.Configs.UpdateConfig(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		s.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) handleDeleteConfig(c *gin.Context) {
	if err := s.Configs.DeleteConfig(c.Request.Context(), c.Param("id")); err != nil {
		s.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func queryInt(c *gin.Context, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, htmlsitemap.Errorf(htmlsitemap.EINVALID, "%s must be a non-negative integer", key)
	}
	return n, nil
}
