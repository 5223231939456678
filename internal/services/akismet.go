package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"coltrane/internal/moderation"
)

const defaultAkismetURL = "https://rest.akismet.com"

// AkismetService talks to the Akismet REST API. It implements
// moderation.SpamChecker. The HTTP client carries an explicit timeout so a
// hung spam service cannot stall comment submission indefinitely.
type AkismetService struct {
	key     string
	blog    string
	baseURL string
	client  *http.Client
}

func NewAkismetService() *AkismetService {
	key := os.Getenv("AKISMET_KEY")
	if key == "" {
		log.Println("⚠️ AkismetService disabled: AKISMET_KEY not set, comments stay public.")
	}

	blog := os.Getenv("SITE_URL")
	if blog == "" {
		blog = "http://localhost:8080"
	}

	baseURL := os.Getenv("AKISMET_BASE_URL")
	if baseURL == "" {
		baseURL = defaultAkismetURL
	}

	return &AkismetService{
		key:     key,
		blog:    blog,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// VerifyKey checks that the configured API credential is currently valid.
func (s *AkismetService) VerifyKey(ctx context.Context) error {
	if s.key == "" {
		return fmt.Errorf("akismet key not configured")
	}

	form := url.Values{
		"key":  {s.key},
		"blog": {s.blog},
	}
	body, err := s.post(ctx, s.baseURL+"/1.1/verify-key", form)
	if err != nil {
		return err
	}
	if body != "valid" {
		return fmt.Errorf("akismet rejected key: %q", body)
	}
	return nil
}

// CheckComment submits the comment for classification and reports whether
// the service called it spam.
func (s *AkismetService) CheckComment(ctx context.Context, check moderation.CommentCheck) (bool, error) {
	form := url.Values{
		"blog":            {s.blog},
		"user_ip":         {check.UserIP},
		"user_agent":      {check.UserAgent},
		"referrer":        {check.Referrer},
		"comment_type":    {check.Type},
		"comment_content": {check.Body},
	}
	body, err := s.post(ctx, s.baseURL+"/1.1/comment-check", form)
	if err != nil {
		return false, err
	}

	switch body {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected akismet verdict: %q", body)
	}
}

func (s *AkismetService) post(ctx context.Context, endpoint string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("akismet request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("akismet status %d: %s", resp.StatusCode, string(body))
	}

	return strings.TrimSpace(string(body)), nil
}
