package handlers

import (
	"net/http"
	"strings"

	"coltrane/internal/db"
	"coltrane/internal/models"
	"coltrane/internal/services"
	"coltrane/internal/utils"

	"github.com/gin-gonic/gin"
)

type LinkHandler struct{}

func NewLinkHandler() *LinkHandler {
	return &LinkHandler{}
}

// List shows shared links, newest first, paginated.
func (h *LinkHandler) List(c *gin.Context) {
	page, perPage, offset := pageParams(c, 20)

	var total int64
	db.DB.Model(&models.Link{}).Count(&total)

	var links []models.Link
	db.DB.Preload("PostedBy").
		Order("pub_date DESC").
		Limit(perPage).
		Offset(offset).
		Find(&links)

	Render(c, http.StatusOK, "link/list.html", gin.H{
		"Links":       links,
		"Title":       "Links",
		"CurrentPage": page,
		"TotalPages":  totalPages(total, perPage),
	})
}

// Detail shows one link by publication date and slug.
func (h *LinkHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")
	pubDay, ok := pubDayFromParams(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "No such link.")
		return
	}

	var link models.Link
	if err := db.DB.Preload("PostedBy").
		Where("pub_day = ? AND slug = ?", pubDay, slug).
		First(&link).Error; err != nil {
		RenderError(c, http.StatusNotFound, "No such link.")
		return
	}

	Render(c, http.StatusOK, "link/detail.html", gin.H{
		"Link":  link,
		"Title": link.Title,
	})
}

// ShowSubmit renders the link submission form.
func (h *LinkHandler) ShowSubmit(c *gin.Context) {
	Render(c, http.StatusOK, "link/submit.html", gin.H{"Title": "Share a link"})
}

// Submit creates a link. An empty description is prefilled from the target
// page when the crawler can extract one; failures there never block the post.
func (h *LinkHandler) Submit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	title := c.PostForm("title")
	rawURL := strings.TrimSpace(c.PostForm("url"))
	description := c.PostForm("description")

	if title == "" || !strings.HasPrefix(rawURL, "http") {
		Render(c, http.StatusBadRequest, "link/submit.html", gin.H{"Error": "A title and an http(s) URL are required."})
		return
	}

	if description == "" {
		description = services.GetCrawlerService().FetchWithFallback(rawURL)
	}

	link := models.Link{
		Title:          title,
		Slug:           utils.Slugify(title),
		URL:            rawURL,
		Description:    description,
		ViaName:        c.PostForm("via_name"),
		ViaURL:         c.PostForm("via_url"),
		Tags:           c.PostForm("tags"),
		PostedByID:     user.ID,
		EnableComments: true,
	}

	if err := db.DB.Create(&link).Error; err != nil {
		Render(c, http.StatusConflict, "link/submit.html", gin.H{"Error": "That URL has already been shared."})
		return
	}

	c.Redirect(http.StatusFound, link.AbsoluteURL())
}
