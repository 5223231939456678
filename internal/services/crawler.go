package services

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

// CrawlerService fetches a shared link's target page to prefill the link
// description when the poster left it empty.
type CrawlerService struct {
	client    *http.Client
	sanitizer *bluemonday.Policy
}

func NewCrawlerService() *CrawlerService {
	return &CrawlerService{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		sanitizer: bluemonday.StrictPolicy(), // descriptions are plain text
	}
}

var crawlerService *CrawlerService

// GetCrawlerService returns the crawler singleton.
func GetCrawlerService() *CrawlerService {
	if crawlerService == nil {
		crawlerService = NewCrawlerService()
	}
	return crawlerService
}

// FetchDescription extracts a short plain-text description from the page at
// url via readability.
func (s *CrawlerService) FetchDescription(url string) (string, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	article, err := readability.FromReader(strings.NewReader(string(body)), nil)
	if err != nil {
		return "", fmt.Errorf("extract content: %w", err)
	}

	desc := strings.TrimSpace(article.Excerpt)
	if desc == "" {
		desc = strings.TrimSpace(s.sanitizer.Sanitize(article.Content))
	}
	if runes := []rune(desc); len(runes) > 500 {
		desc = string(runes[:500]) + "..."
	}
	return desc, nil
}

// FetchWithFallback tries to fetch a description and returns an empty string
// instead of an error; link posting must not depend on the target site.
func (s *CrawlerService) FetchWithFallback(url string) string {
	desc, err := s.FetchDescription(url)
	if err != nil {
		return ""
	}
	return desc
}
