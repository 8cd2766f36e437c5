package handlers

import (
	"io/fs"
	"net/http"

	"useradmin/web"

	"github.com/gin-gonic/gin"
)

// registerStaticRoutes serves the embedded single-page admin UI.
func (h *Handler) registerStaticRoutes(r *gin.Engine) {
	sub, err := fs.Sub(web.Static, "static")
	if err != nil {
		if h.log != nil {
			h.log.Errorw("static_fs_failed", "err", err)
		}
		return
	}

	// index.html is served by hand: gin's FileFromFS redirects /index.html
	// back to /, which loops.
	index, err := fs.ReadFile(sub, "index.html")
	if err != nil {
		if h.log != nil {
			h.log.Errorw("static_index_missing", "err", err)
		}
		return
	}
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})

	r.StaticFS("/assets", http.FS(sub))
}
