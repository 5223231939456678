package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"coltrane/internal/db"
	"coltrane/internal/models"
	"coltrane/internal/utils"

	"github.com/gin-gonic/gin"
)

type EntryHandler struct{}

func NewEntryHandler() *EntryHandler {
	return &EntryHandler{}
}

func entryDetailCacheKey(pubDay, slug string) string {
	return fmt.Sprintf("entry:detail:%s:%s", pubDay, slug)
}

// pubDayFromParams converts /:year/:month/:day route params into the
// publication-day string entries are keyed on.
func pubDayFromParams(c *gin.Context) (string, bool) {
	year, err1 := strconv.Atoi(c.Param("year"))
	month, err2 := strconv.Atoi(c.Param("month"))
	day, err3 := strconv.Atoi(c.Param("day"))
	if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// Archive lists live entries, newest first, paginated.
func (h *EntryHandler) Archive(c *gin.Context) {
	page, perPage, offset := pageParams(c, 20)

	cacheKey := fmt.Sprintf("entry:archive:page:%d", page)
	if cachedData := utils.GetCache().Get(cacheKey); cachedData != nil {
		if hData, ok := cachedData.(gin.H); ok {
			Render(c, http.StatusOK, "entry/archive.html", hData)
			return
		}
	}

	var total int64
	db.DB.Model(&models.Entry{}).Scopes(models.Live).Count(&total)

	var entries []models.Entry
	db.DB.Scopes(models.Live).
		Preload("Author").Preload("Categories").
		Order("pub_date DESC").
		Limit(perPage).
		Offset(offset).
		Find(&entries)

	var featured []models.Entry
	db.DB.Scopes(models.Live).
		Where("featured = ?", true).
		Order("pub_date DESC").
		Limit(5).
		Find(&featured)

	renderData := gin.H{
		"Entries":     entries,
		"Featured":    featured,
		"Title":       "Weblog",
		"CurrentPage": page,
		"TotalPages":  totalPages(total, perPage),
	}

	utils.GetCache().Set(cacheKey, renderData, 1*time.Minute)

	Render(c, http.StatusOK, "entry/archive.html", renderData)
}

// Detail shows one entry by publication date and slug, with its public
// comments.
func (h *EntryHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")
	pubDay, ok := pubDayFromParams(c)
	if !ok {
		RenderError(c, http.StatusNotFound, "No such entry.")
		return
	}

	cacheKey := entryDetailCacheKey(pubDay, slug)
	if cachedData := utils.GetCache().Get(cacheKey); cachedData != nil {
		if hData, ok := cachedData.(gin.H); ok {
			Render(c, http.StatusOK, "entry/detail.html", hData)
			return
		}
	}

	var entry models.Entry
	if err := db.DB.Scopes(models.Live).
		Preload("Author").Preload("Categories").
		Where("pub_day = ? AND slug = ?", pubDay, slug).
		First(&entry).Error; err != nil {
		RenderError(c, http.StatusNotFound, "No such entry.")
		return
	}

	var comments []models.Comment
	db.DB.Where("entry_id = ? AND is_public = ?", entry.ID, true).
		Order("created_at ASC").
		Find(&comments)

	renderData := gin.H{
		"Entry":    entry,
		"Comments": comments,
		"Title":    entry.Title,
	}

	utils.GetCache().Set(cacheKey, renderData, 5*time.Minute)

	Render(c, http.StatusOK, "entry/detail.html", renderData)
}

// ListByTag lists live entries carrying a tag.
func (h *EntryHandler) ListByTag(c *gin.Context) {
	tag := c.Param("tag")
	page, perPage, offset := pageParams(c, 20)

	pattern := "%" + tag + "%"

	var total int64
	db.DB.Model(&models.Entry{}).Scopes(models.Live).Where("tags LIKE ?", pattern).Count(&total)

	var entries []models.Entry
	db.DB.Scopes(models.Live).
		Preload("Author").
		Where("tags LIKE ?", pattern).
		Order("pub_date DESC").
		Limit(perPage).
		Offset(offset).
		Find(&entries)

	Render(c, http.StatusOK, "entry/archive.html", gin.H{
		"Entries":     entries,
		"Tag":         tag,
		"Title":       "Entries tagged " + tag,
		"CurrentPage": page,
		"TotalPages":  totalPages(total, perPage),
	})
}

// Search looks through live entry titles and bodies.
func (h *EntryHandler) Search(c *gin.Context) {
	query := c.Query("q")

	var entries []models.Entry
	if query != "" {
		pattern := "%" + query + "%"
		db.DB.Scopes(models.Live).
			Preload("Author").
			Where("title ILIKE ? OR body ILIKE ?", pattern, pattern).
			Order("pub_date DESC").
			Limit(50).
			Find(&entries)
	}

	Render(c, http.StatusOK, "search.html", gin.H{
		"Entries": entries,
		"Query":   query,
		"Title":   "Search - " + query,
	})
}
