package handlers

import (
	"net/http"
	"strings"

	"coltrane/internal/db"
	"coltrane/internal/models"

	"github.com/gin-gonic/gin"
)

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Show serves flat pages as the catch-all route: any path with no other
// handler is looked up in the pages table.
func (h *PageHandler) Show(c *gin.Context) {
	path := c.Request.URL.Path
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	var page models.Page
	if err := db.DB.Where("path = ?", path).First(&page).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Page not found.")
		return
	}

	Render(c, http.StatusOK, "page/detail.html", gin.H{
		"Page":  page,
		"Title": page.Title,
	})
}
