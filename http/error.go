package http

import (
	"net/http"

	"github.com/fwojciec/htmlsitemap"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

var codes = map[string]int{
	htmlsitemap.ECONFLICT: http.StatusConflict,
	htmlsitemap.EINVALID:  http.StatusBadRequest,
	htmlsitemap.ENOTFOUND: http.StatusNotFound,
	htmlsitemap.EINTERNAL: http.StatusInternalServerError,
}

// ErrorStatusCode maps an application error code to an HTTP status code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error writes err as JSON. Internal errors are logged and their details
// are not exposed.
func (s *Server) Error(c *gin.Context, err error) {
	code := htmlsitemap.ErrorCode(err)
	if code == htmlsitemap.EINTERNAL && s.Logger != nil {
		s.Logger.Error("http error", "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
	}
	c.AbortWithStatusJSON(ErrorStatusCode(code), ErrorResponse{Error: htmlsitemap.ErrorMessage(err)})
}
