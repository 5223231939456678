package handlers

import (
	"net/http"

	"coltrane/internal/db"
	"coltrane/internal/models"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List shows all categories.
func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category
	db.DB.Order("title ASC").Find(&categories)

	Render(c, http.StatusOK, "category/list.html", gin.H{
		"Categories": categories,
		"Title":      "Categories",
	})
}

// Detail shows one category and its live entries.
func (h *CategoryHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")

	var category models.Category
	if err := db.DB.Where("slug = ?", slug).First(&category).Error; err != nil {
		RenderError(c, http.StatusNotFound, "No such category.")
		return
	}

	entries, err := category.LiveEntries(db.DB)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load entries.")
		return
	}

	Render(c, http.StatusOK, "category/detail.html", gin.H{
		"Category": category,
		"Entries":  entries,
		"Title":    category.Title,
	})
}
