package handlers

import (
	"fmt"
	"html"
	"net/http"
	"os"
	"time"

	"coltrane/internal/db"
	"coltrane/internal/models"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct{}

func NewFeedHandler() *FeedHandler {
	return &FeedHandler{}
}

// getSiteURL reads the site URL from the environment with a local fallback.
func getSiteURL() string {
	siteURL := os.Getenv("SITE_URL")
	if siteURL == "" {
		siteURL = "http://localhost:8080"
	}
	return siteURL
}

func rssHeader(title, link, description string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>%s</title>
  <link>%s</link>
  <description>%s</description>
`, html.EscapeString(title), link, html.EscapeString(description))
}

func rssItem(title, link, description string, pubDate time.Time) string {
	return fmt.Sprintf(`  <item>
    <title>%s</title>
    <link>%s</link>
    <guid>%s</guid>
    <description>%s</description>
    <pubDate>%s</pubDate>
  </item>
`, html.EscapeString(title), link, link, html.EscapeString(description), pubDate.Format(time.RFC1123Z))
}

// EntriesFeed serves an RSS feed of the latest live entries.
func (h *FeedHandler) EntriesFeed(c *gin.Context) {
	siteURL := getSiteURL()

	var entries []models.Entry
	db.DB.Scopes(models.Live).Order("pub_date DESC").Limit(15).Find(&entries)

	xml := rssHeader("Weblog entries", siteURL+"/weblog/", "Latest weblog entries")
	for _, entry := range entries {
		description := entry.ExcerptHTML
		if description == "" {
			description = entry.BodyHTML
		}
		xml += rssItem(entry.Title, siteURL+entry.AbsoluteURL(), description, entry.PubDate)
	}
	xml += "</channel>\n</rss>\n"

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, xml)
}

// LinksFeed serves an RSS feed of the latest shared links.
func (h *FeedHandler) LinksFeed(c *gin.Context) {
	siteURL := getSiteURL()

	var links []models.Link
	db.DB.Order("pub_date DESC").Limit(15).Find(&links)

	xml := rssHeader("Shared links", siteURL+"/weblog/links/", "Latest shared links")
	for _, link := range links {
		xml += rssItem(link.Title, link.URL, link.DescriptionHTML, link.PubDate)
	}
	xml += "</channel>\n</rss>\n"

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, xml)
}

// RobotsTxt returns robots.txt content.
func (h *FeedHandler) RobotsTxt(c *gin.Context) {
	siteURL := getSiteURL()
	content := fmt.Sprintf(`User-agent: *
Allow: /

Disallow: /login
Disallow: /signup
Disallow: /bookmarks/

Sitemap: %s/sitemap.xml
`, siteURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

// SitemapXML generates sitemap.xml from live entries, links and categories.
func (h *FeedHandler) SitemapXML(c *gin.Context) {
	siteURL := getSiteURL()
	now := time.Now().Format("2006-01-02")

	xml := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`
	xml += fmt.Sprintf(`  <url>
    <loc>%s/weblog/</loc>
    <lastmod>%s</lastmod>
    <changefreq>daily</changefreq>
    <priority>1.0</priority>
  </url>
`, siteURL, now)

	var entries []models.Entry
	db.DB.Scopes(models.Live).Order("pub_date DESC").Limit(1000).Find(&entries)
	for _, entry := range entries {
		xml += fmt.Sprintf(`  <url>
    <loc>%s%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>monthly</changefreq>
    <priority>0.8</priority>
  </url>
`, siteURL, entry.AbsoluteURL(), entry.UpdatedAt.Format("2006-01-02"))
	}

	var categories []models.Category
	db.DB.Find(&categories)
	for _, category := range categories {
		xml += fmt.Sprintf(`  <url>
    <loc>%s/weblog/categories/%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>weekly</changefreq>
    <priority>0.5</priority>
  </url>
`, siteURL, category.Slug, now)
	}

	xml += "</urlset>\n"

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, xml)
}
