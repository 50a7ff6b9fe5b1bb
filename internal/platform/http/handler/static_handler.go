package handler

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"

	"chupchup_backend/internal/api"
)

const indexFile = "index.html"

// StaticHandler serves the bundled front end (index.html, admin.html, assets).
type StaticHandler struct {
	fs afero.Fs
}

// NewStaticHandler serves files from fsys read-only.
func NewStaticHandler(fsys afero.Fs) *StaticHandler {
	return &StaticHandler{fs: afero.NewReadOnlyFs(fsys)}
}

// Index handles GET /.
func (h *StaticHandler) Index(c *gin.Context) {
	if !h.serve(c, indexFile) {
		notFound(c)
	}
}

// NoRoute serves public files for unmatched GET/HEAD paths.
// API and upload paths, other methods and missing files get a 404 JSON body.
func (h *StaticHandler) NoRoute(c *gin.Context) {
	p := c.Request.URL.Path
	if strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/uploads/") {
		notFound(c)
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		notFound(c)
		return
	}
	if !h.serve(c, strings.TrimPrefix(path.Clean("/"+p), "/")) {
		notFound(c)
	}
}

// serve writes name if it is a regular file and reports whether it did.
func (h *StaticHandler) serve(c *gin.Context, name string) bool {
	if name == "" {
		name = indexFile
	}
	f, err := h.fs.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	// gin may already have set 404 for unmatched routes
	c.Status(http.StatusOK)
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
	return true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, api.ErrorResponse{Erro: api.MsgNotFound})
}
