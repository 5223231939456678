package main

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"coltrane/internal/db"
	"coltrane/internal/middleware"
	"coltrane/internal/router"
	"coltrane/internal/services"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Start the snippet popularity worker
	services.GetPopularityService()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("coltrane_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadUser())

	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("coltrane server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"dateFormat": func(t time.Time, layout string) string {
			return t.Format(layout)
		},
		"timeAgo": func(t time.Time) string {
			duration := time.Since(t)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%ds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%dd ago", seconds/86400)
			}
			return t.Format("Jan 2, 2006")
		},
	}

	// Manual registration to ensure keys match handler expectation
	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble(templatesDir+"/views/auth/register.html")...)

	// Weblog
	r.AddFromFilesFuncs("entry/archive.html", funcMap, assemble(templatesDir+"/views/entry/archive.html")...)
	r.AddFromFilesFuncs("entry/detail.html", funcMap, assemble(templatesDir+"/views/entry/detail.html")...)
	r.AddFromFilesFuncs("category/list.html", funcMap, assemble(templatesDir+"/views/category/list.html")...)
	r.AddFromFilesFuncs("category/detail.html", funcMap, assemble(templatesDir+"/views/category/detail.html")...)
	r.AddFromFilesFuncs("link/list.html", funcMap, assemble(templatesDir+"/views/link/list.html")...)
	r.AddFromFilesFuncs("link/detail.html", funcMap, assemble(templatesDir+"/views/link/detail.html")...)
	r.AddFromFilesFuncs("link/submit.html", funcMap, assemble(templatesDir+"/views/link/submit.html")...)
	r.AddFromFilesFuncs("page/detail.html", funcMap, assemble(templatesDir+"/views/page/detail.html")...)

	// Snippets
	r.AddFromFilesFuncs("snippet/list.html", funcMap, assemble(templatesDir+"/views/snippet/list.html")...)
	r.AddFromFilesFuncs("snippet/detail.html", funcMap, assemble(templatesDir+"/views/snippet/detail.html")...)
	r.AddFromFilesFuncs("bookmark/list.html", funcMap, assemble(templatesDir+"/views/bookmark/list.html")...)
	r.AddFromFilesFuncs("popular/authors.html", funcMap, assemble(templatesDir+"/views/popular/authors.html")...)
	r.AddFromFilesFuncs("popular/languages.html", funcMap, assemble(templatesDir+"/views/popular/languages.html")...)

	// Search
	r.AddFromFilesFuncs("search.html", funcMap, assemble(templatesDir+"/views/search.html")...)

	// Error
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
