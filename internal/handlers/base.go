package handlers

import (
	"math"
	"strconv"

	"coltrane/internal/middleware"
	"coltrane/internal/models"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	// Inject Current User
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
	}

	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// currentUser returns the logged-in user loaded by the middleware. A session
// can outlive its user row, so even behind AuthRequired the key may be unset.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, exists := c.Get(middleware.CheckUserKey)
	if !exists {
		return nil, false
	}
	return user.(*models.User), true
}

// pageParams reads ?page= and converts it to limit/offset plus the page
// number, defaulting to page 1.
func pageParams(c *gin.Context, perPage int) (page, limit, offset int) {
	page = 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	return page, perPage, (page - 1) * perPage
}

func totalPages(total int64, perPage int) int {
	pages := int(math.Ceil(float64(total) / float64(perPage)))
	if pages == 0 {
		pages = 1
	}
	return pages
}
