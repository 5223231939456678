package router

import (
	"coltrane/internal/handlers"
	"coltrane/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	entryHandler := handlers.NewEntryHandler()
	commentHandler := handlers.NewCommentHandler()
	categoryHandler := handlers.NewCategoryHandler()
	linkHandler := handlers.NewLinkHandler()
	snippetHandler := handlers.NewSnippetHandler()
	bookmarkHandler := handlers.NewBookmarkHandler()
	popularHandler := handlers.NewPopularHandler()
	feedHandler := handlers.NewFeedHandler()
	pageHandler := handlers.NewPageHandler()

	// Public routes
	r.GET("/", entryHandler.Archive)
	r.GET("/search", entryHandler.Search)

	weblog := r.Group("/weblog")
	{
		weblog.GET("/", entryHandler.Archive)
		weblog.GET("/entries/:year/:month/:day/:slug", entryHandler.Detail)
		weblog.POST("/entries/:year/:month/:day/:slug/comments", commentHandler.Create)
		weblog.GET("/categories/", categoryHandler.List)
		weblog.GET("/categories/:slug", categoryHandler.Detail)
		weblog.GET("/links/", linkHandler.List)
		weblog.GET("/links/:year/:month/:day/:slug", linkHandler.Detail)
		weblog.GET("/tags/:tag", entryHandler.ListByTag)
	}

	r.GET("/snippets/", snippetHandler.List)
	r.GET("/snippets/:id", snippetHandler.Detail)
	r.GET("/snippets/:id/download", snippetHandler.Download)

	r.GET("/popular/authors", popularHandler.TopAuthors)
	r.GET("/popular/languages", popularHandler.TopLanguages)

	// Feeds and crawler surface
	r.GET("/feeds/entries", feedHandler.EntriesFeed)
	r.GET("/feeds/links", feedHandler.LinksFeed)
	r.GET("/sitemap.xml", feedHandler.SitemapXML)
	r.GET("/robots.txt", feedHandler.RobotsTxt)

	// JSON comment submission shares the moderation policy with the form path
	r.POST("/api/comments", commentHandler.CreateAPI)

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/snippets/:id/bookmark", bookmarkHandler.Add)
		authorized.POST("/snippets/:id/rate", snippetHandler.Rate)
		authorized.GET("/bookmarks/", bookmarkHandler.List)
		authorized.GET("/weblog/links/submit", linkHandler.ShowSubmit)
		authorized.POST("/weblog/links/submit", linkHandler.Submit)
	}

	// Flat pages answer any path nothing else claimed
	r.NoRoute(pageHandler.Show)
}
