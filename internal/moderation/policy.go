package moderation

import (
	"context"
	"fmt"
	"log"
	"time"

	"coltrane/internal/models"
)

// DefaultWindow is how long after publication an entry stays open to
// moderation-light commenting. Comments arriving later are hidden outright.
const DefaultWindow = 30 * 24 * time.Hour

// RequestMeta carries the request context the spam checker wants.
type RequestMeta struct {
	Referrer  string
	UserIP    string
	UserAgent string
}

// CommentCheck is one submission handed to the spam checker.
type CommentCheck struct {
	Type      string
	Referrer  string
	UserIP    string
	UserAgent string
	Body      string
}

// SpamChecker classifies comment submissions. VerifyKey must succeed before
// CheckComment is consulted.
type SpamChecker interface {
	VerifyKey(ctx context.Context) error
	CheckComment(ctx context.Context, check CommentCheck) (bool, error)
}

// Notifier delivers the new-comment message to the site managers.
type Notifier interface {
	NotifyManagers(subject, body string)
}

// Policy decides whether a newly submitted comment is publicly visible.
// Every comment-accepting path calls the same Policy; there is exactly one
// implementation of the decision.
type Policy struct {
	spam     SpamChecker
	notifier Notifier
	window   time.Duration
	now      func() time.Time
}

func NewPolicy(spam SpamChecker, notifier Notifier, window time.Duration) *Policy {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Policy{
		spam:     spam,
		notifier: notifier,
		window:   window,
		now:      time.Now,
	}
}

// Moderate gates the visibility of comment before it is first persisted.
//
// Comments that already exist in storage are left untouched: edits never
// re-trigger the age or spam evaluation. For new comments, anything on an
// entry older than the window is hidden without a spam check; recent entries
// go through the spam checker, which fails open: an unreachable service or
// a rejected credential leaves the comment public and never surfaces an
// error to the submitter. Exactly one manager notification is sent per new
// comment, whatever the visibility outcome.
func (p *Policy) Moderate(ctx context.Context, comment *models.Comment, entry *models.Entry, meta RequestMeta) {
	if comment.ID != 0 {
		return
	}

	if p.now().Sub(entry.PubDate) > p.window {
		comment.IsPublic = false
	} else if p.spam != nil {
		p.checkSpam(ctx, comment, meta)
	}

	if p.notifier != nil {
		body := fmt.Sprintf("%s posted a new comment on the entry '%s'.", comment.Name, entry.Title)
		p.notifier.NotifyManagers("New comment posted", body)
	}
}

func (p *Policy) checkSpam(ctx context.Context, comment *models.Comment, meta RequestMeta) {
	if err := p.spam.VerifyKey(ctx); err != nil {
		log.Printf("Spam check skipped, key verification failed: %v", err)
		return
	}

	spam, err := p.spam.CheckComment(ctx, CommentCheck{
		Type:      "comment",
		Referrer:  meta.Referrer,
		UserIP:    meta.UserIP,
		UserAgent: meta.UserAgent,
		Body:      comment.Body,
	})
	if err != nil {
		// Fail open: the spam service is a convenience filter, not a gate.
		log.Printf("Spam check failed, leaving comment public: %v", err)
		return
	}
	if spam {
		comment.IsPublic = false
	}
}
