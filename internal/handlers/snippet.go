package handlers

import (
	"net/http"
	"strconv"

	"coltrane/internal/db"
	"coltrane/internal/models"
	"coltrane/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SnippetHandler struct{}

func NewSnippetHandler() *SnippetHandler {
	return &SnippetHandler{}
}

func snippetByParam(c *gin.Context) (*models.Snippet, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		RenderError(c, http.StatusNotFound, "No such snippet.")
		return nil, false
	}

	var snippet models.Snippet
	if err := db.DB.Preload("Author").Preload("Language").First(&snippet, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "No such snippet.")
		return nil, false
	}
	return &snippet, true
}

// List shows snippets, most popular first, paginated.
func (h *SnippetHandler) List(c *gin.Context) {
	page, perPage, offset := pageParams(c, 20)

	var total int64
	db.DB.Model(&models.Snippet{}).Count(&total)

	var snippets []models.Snippet
	db.DB.Preload("Author").Preload("Language").
		Order("popularity DESC, created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&snippets)

	Render(c, http.StatusOK, "snippet/list.html", gin.H{
		"Snippets":    snippets,
		"Title":       "Snippets",
		"CurrentPage": page,
		"TotalPages":  totalPages(total, perPage),
	})
}

// Detail shows one snippet.
func (h *SnippetHandler) Detail(c *gin.Context) {
	snippet, ok := snippetByParam(c)
	if !ok {
		return
	}

	isBookmarked := false
	if user, ok := currentUser(c); ok {
		var bookmark models.Bookmark
		if err := db.DB.Where("user_id = ? AND snippet_id = ?", user.ID, snippet.ID).
			First(&bookmark).Error; err == nil {
			isBookmarked = true
		}
	}

	Render(c, http.StatusOK, "snippet/detail.html", gin.H{
		"Snippet":      snippet,
		"IsBookmarked": isBookmarked,
		"Title":        snippet.Title,
	})
}

// Download serves the raw code and counts the download toward popularity.
func (h *SnippetHandler) Download(c *gin.Context) {
	snippet, ok := snippetByParam(c)
	if !ok {
		return
	}

	db.DB.Model(snippet).UpdateColumn("downloads", gorm.Expr("downloads + 1"))
	services.GetPopularityService().ScheduleUpdate(snippet.ID)

	c.Header("Content-Disposition", "attachment; filename="+strconv.Itoa(int(snippet.ID))+".txt")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(snippet.Code))
}

// Rate records the current user's up/down verdict, one per (user, snippet).
func (h *SnippetHandler) Rate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	snippet, ok := snippetByParam(c)
	if !ok {
		return
	}

	score := 1
	if c.PostForm("score") == "-1" {
		score = -1
	}

	var rating models.Rating
	err := db.DB.Where("user_id = ? AND snippet_id = ?", user.ID, snippet.ID).First(&rating).Error
	if err == nil {
		db.DB.Model(&rating).UpdateColumn("score", score)
	} else {
		rating = models.Rating{UserID: user.ID, SnippetID: snippet.ID, Score: score}
		db.DB.Create(&rating)
	}

	services.GetPopularityService().ScheduleUpdate(snippet.ID)

	c.Redirect(http.StatusFound, "/snippets/"+strconv.Itoa(int(snippet.ID)))
}
