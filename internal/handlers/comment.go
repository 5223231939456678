package handlers

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"coltrane/internal/db"
	"coltrane/internal/models"
	"coltrane/internal/moderation"
	"coltrane/internal/services"
	"coltrane/internal/utils"

	"github.com/gin-gonic/gin"
)

// CommentHandler accepts comment submissions. Both the HTML form path and
// the JSON API path run the submission through the same moderation policy.
type CommentHandler struct {
	policy *moderation.Policy
}

func NewCommentHandler() *CommentHandler {
	window := moderation.DefaultWindow
	if d := os.Getenv("COMMENT_WINDOW_DAYS"); d != "" {
		if days, err := strconv.Atoi(d); err == nil && days > 0 {
			window = time.Duration(days) * 24 * time.Hour
		}
	}

	return &CommentHandler{
		policy: moderation.NewPolicy(services.NewAkismetService(), services.NewMailService(), window),
	}
}

func requestMeta(c *gin.Context) moderation.RequestMeta {
	return moderation.RequestMeta{
		Referrer:  c.Request.Referer(),
		UserIP:    c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// Create handles the entry-detail comment form.
func (h *CommentHandler) Create(c *gin.Context) {
	slug := c.Param("slug")
	pubDay, ok := pubDayFromParams(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "No such entry.")
		return
	}

	var entry models.Entry
	if err := db.DB.Scopes(models.Live).Where("pub_day = ? AND slug = ?", pubDay, slug).First(&entry).Error; err != nil {
		RenderError(c, http.StatusNotFound, "No such entry.")
		return
	}
	if !entry.EnableComments {
		RenderError(c, http.StatusForbidden, "Comments are closed on this entry.")
		return
	}

	name := c.PostForm("name")
	body := c.PostForm("body")
	if name == "" || body == "" {
		c.Redirect(http.StatusFound, entry.AbsoluteURL())
		return
	}

	comment := models.Comment{
		EntryID:   entry.ID,
		Name:      name,
		Email:     c.PostForm("email"),
		Body:      body,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		IsPublic:  true,
	}

	h.policy.Moderate(c.Request.Context(), &comment, &entry, requestMeta(c))

	if err := db.DB.Create(&comment).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save your comment.")
		return
	}

	// The detail page caches its comment list
	utils.GetCache().Delete(entryDetailCacheKey(entry.PubDay, entry.Slug))

	c.Redirect(http.StatusFound, entry.AbsoluteURL())
}

type commentRequest struct {
	EntryID uint   `json:"entry_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Body    string `json:"body" binding:"required"`
}

// CreateAPI is the JSON submission path. It shares the moderation policy
// with Create so both produce identical visibility decisions.
func (h *CommentHandler) CreateAPI(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entry_id, name and body are required"})
		return
	}

	var entry models.Entry
	if err := db.DB.Scopes(models.Live).First(&entry, req.EntryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such entry"})
		return
	}
	if !entry.EnableComments {
		c.JSON(http.StatusForbidden, gin.H{"error": "comments are closed on this entry"})
		return
	}

	comment := models.Comment{
		EntryID:   entry.ID,
		Name:      req.Name,
		Email:     req.Email,
		Body:      req.Body,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		IsPublic:  true,
	}

	h.policy.Moderate(c.Request.Context(), &comment, &entry, requestMeta(c))

	if err := db.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save comment"})
		return
	}

	utils.GetCache().Delete(entryDetailCacheKey(entry.PubDay, entry.Slug))

	c.JSON(http.StatusCreated, comment)
}
