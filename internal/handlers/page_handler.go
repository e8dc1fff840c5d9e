package handlers

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"moneybook/internal/middleware"
	"moneybook/internal/services"
)

// PageHandler decides which static page the entry point serves based on
// session presence.
type PageHandler struct {
	sessionService services.SessionServicer
	publicDir      string
}

// NewPageHandler creates a new PageHandler serving pages from publicDir.
func NewPageHandler(sessionService services.SessionServicer, publicDir string) *PageHandler {
	return &PageHandler{sessionService: sessionService, publicDir: publicDir}
}

// Home serves the tracker page for authenticated browsers and the login page
// otherwise. A dead cookie falls through to the login page without error.
func (h *PageHandler) Home(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookieName)
	if err == nil && token != "" {
		if _, err := h.sessionService.Get(token); err == nil {
			c.File(filepath.Join(h.publicDir, "index.html"))
			return
		}
	}
	c.File(filepath.Join(h.publicDir, "login.html"))
}
