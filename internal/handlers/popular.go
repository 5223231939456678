package handlers

import (
	"net/http"

	"coltrane/internal/db"
	"coltrane/internal/models"

	"github.com/gin-gonic/gin"
)

type PopularHandler struct{}

func NewPopularHandler() *PopularHandler {
	return &PopularHandler{}
}

// TopAuthors lists authors ranked by the popularity of their snippets.
func (h *PopularHandler) TopAuthors(c *gin.Context) {
	page, perPage, offset := pageParams(c, 20)

	ranks, err := models.TopAuthors(db.DB, perPage, offset)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load the ranking.")
		return
	}

	Render(c, http.StatusOK, "popular/authors.html", gin.H{
		"Authors":     ranks,
		"Title":       "Top authors",
		"CurrentPage": page,
	})
}

// TopLanguages lists languages ranked by snippet count.
func (h *PopularHandler) TopLanguages(c *gin.Context) {
	page, perPage, offset := pageParams(c, 20)

	ranks, err := models.TopLanguages(db.DB, perPage, offset)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load the ranking.")
		return
	}

	Render(c, http.StatusOK, "popular/languages.html", gin.H{
		"Languages":   ranks,
		"Title":       "Top languages",
		"CurrentPage": page,
	})
}
