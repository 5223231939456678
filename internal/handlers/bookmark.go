package handlers

import (
	"net/http"
	"strconv"

	"coltrane/internal/db"
	"coltrane/internal/models"
	"coltrane/internal/services"

	"github.com/gin-gonic/gin"
)

type BookmarkHandler struct{}

func NewBookmarkHandler() *BookmarkHandler {
	return &BookmarkHandler{}
}

// Add bookmarks a snippet for the current user. Creation is idempotent: a
// repeat request finds the existing bookmark and is a no-op.
func (h *BookmarkHandler) Add(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	snippetID := uint(id)

	var snippet models.Snippet
	if err := db.DB.First(&snippet, snippetID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "No such snippet.")
		return
	}

	_, created, err := models.GetOrCreateBookmark(db.DB, user.ID, snippetID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not bookmark the snippet.")
		return
	}
	if created {
		services.GetPopularityService().ScheduleUpdate(snippetID)
	}

	c.Redirect(http.StatusFound, "/snippets/"+strconv.Itoa(int(snippet.ID)))
}

// List shows the current user's bookmarks, paginated.
func (h *BookmarkHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	page, perPage, offset := pageParams(c, 20)

	var total int64
	db.DB.Model(&models.Bookmark{}).Where("user_id = ?", user.ID).Count(&total)

	var bookmarks []models.Bookmark
	db.DB.Preload("Snippet").Preload("Snippet.Language").Preload("Snippet.Author").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&bookmarks)

	Render(c, http.StatusOK, "bookmark/list.html", gin.H{
		"Bookmarks":   bookmarks,
		"Title":       "Your bookmarks",
		"CurrentPage": page,
		"TotalPages":  totalPages(total, perPage),
	})
}
