package moderation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"coltrane/internal/models"
)

type fakeChecker struct {
	verifyErr   error
	verdict     bool
	checkErr    error
	verifyCalls int
	checkCalls  int
}

func (f *fakeChecker) VerifyKey(ctx context.Context) error {
	f.verifyCalls++
	return f.verifyErr
}

func (f *fakeChecker) CheckComment(ctx context.Context, check CommentCheck) (bool, error) {
	f.checkCalls++
	return f.verdict, f.checkErr
}

type fakeNotifier struct {
	subjects []string
	bodies   []string
}

func (f *fakeNotifier) NotifyManagers(subject, body string) {
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
}

func newTestPolicy(checker *fakeChecker, notifier *fakeNotifier) *Policy {
	return NewPolicy(checker, notifier, 0)
}

func entryPublishedAgo(age time.Duration) *models.Entry {
	return &models.Entry{
		ID:      1,
		Title:   "Some entry",
		PubDate: time.Now().Add(-age),
	}
}

func newComment() *models.Comment {
	return &models.Comment{
		Name:     "Bob",
		Body:     "Nice post!",
		IsPublic: true,
	}
}

func TestOldEntryHiddenWithoutSpamCheck(t *testing.T) {
	checker := &fakeChecker{}
	notifier := &fakeNotifier{}
	p := newTestPolicy(checker, notifier)

	comment := newComment()
	p.Moderate(context.Background(), comment, entryPublishedAgo(45*24*time.Hour), RequestMeta{})

	if comment.IsPublic {
		t.Error("comment on a 45-day-old entry should not be public")
	}
	if checker.verifyCalls != 0 || checker.checkCalls != 0 {
		t.Errorf("spam service should not be consulted for old entries, got %d/%d calls",
			checker.verifyCalls, checker.checkCalls)
	}
	if len(notifier.subjects) != 1 {
		t.Fatalf("expected exactly one manager notification, got %d", len(notifier.subjects))
	}
}

func TestRecentEntryFollowsSpamVerdict(t *testing.T) {
	tests := []struct {
		name       string
		verdict    bool
		wantPublic bool
	}{
		{"spam verdict hides the comment", true, false},
		{"ham verdict leaves it public", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &fakeChecker{verdict: tt.verdict}
			p := newTestPolicy(checker, &fakeNotifier{})

			comment := newComment()
			p.Moderate(context.Background(), comment, entryPublishedAgo(24*time.Hour), RequestMeta{})

			if comment.IsPublic != tt.wantPublic {
				t.Errorf("IsPublic = %v, want %v", comment.IsPublic, tt.wantPublic)
			}
			if checker.checkCalls != 1 {
				t.Errorf("expected one spam check, got %d", checker.checkCalls)
			}
		})
	}
}

func TestInvalidKeyFailsOpen(t *testing.T) {
	checker := &fakeChecker{verifyErr: errors.New("invalid key"), verdict: true}
	notifier := &fakeNotifier{}
	p := newTestPolicy(checker, notifier)

	comment := newComment()
	p.Moderate(context.Background(), comment, entryPublishedAgo(24*time.Hour), RequestMeta{})

	if !comment.IsPublic {
		t.Error("comment should stay public when the key cannot be verified")
	}
	if checker.checkCalls != 0 {
		t.Error("comment check should be skipped when key verification fails")
	}
	if len(notifier.subjects) != 1 {
		t.Errorf("notification must still be sent on fail-open, got %d", len(notifier.subjects))
	}
}

func TestCheckErrorFailsOpen(t *testing.T) {
	checker := &fakeChecker{verdict: true, checkErr: errors.New("timeout")}
	p := newTestPolicy(checker, &fakeNotifier{})

	comment := newComment()
	p.Moderate(context.Background(), comment, entryPublishedAgo(24*time.Hour), RequestMeta{})

	if !comment.IsPublic {
		t.Error("comment should stay public when the spam service errors")
	}
}

func TestExistingCommentNeverReevaluated(t *testing.T) {
	checker := &fakeChecker{verdict: true}
	notifier := &fakeNotifier{}
	p := newTestPolicy(checker, notifier)

	comment := newComment()
	comment.ID = 7 // already persisted
	p.Moderate(context.Background(), comment, entryPublishedAgo(45*24*time.Hour), RequestMeta{})

	if !comment.IsPublic {
		t.Error("editing an existing comment must not change its visibility")
	}
	if checker.verifyCalls != 0 || checker.checkCalls != 0 {
		t.Error("editing an existing comment must not touch the spam service")
	}
	if len(notifier.subjects) != 0 {
		t.Error("editing an existing comment must not notify managers")
	}
}

func TestNotificationContent(t *testing.T) {
	notifier := &fakeNotifier{}
	p := newTestPolicy(&fakeChecker{}, notifier)

	entry := entryPublishedAgo(24 * time.Hour)
	entry.Title = "A day in the life"
	comment := newComment()
	comment.Name = "Alice"

	p.Moderate(context.Background(), comment, entry, RequestMeta{})

	if len(notifier.subjects) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.subjects))
	}
	if notifier.subjects[0] != "New comment posted" {
		t.Errorf("unexpected subject %q", notifier.subjects[0])
	}
	if !strings.Contains(notifier.bodies[0], "Alice") || !strings.Contains(notifier.bodies[0], "A day in the life") {
		t.Errorf("notification body %q should name the submitter and the entry", notifier.bodies[0])
	}
}

func TestRequestMetaForwardedToChecker(t *testing.T) {
	var got CommentCheck
	checker := &recordingChecker{got: &got}
	p := NewPolicy(checker, nil, 0)

	comment := newComment()
	meta := RequestMeta{Referrer: "https://example.com/", UserIP: "10.1.2.3", UserAgent: "test-agent"}
	p.Moderate(context.Background(), comment, entryPublishedAgo(time.Hour), meta)

	if got.Type != "comment" {
		t.Errorf("comment_type = %q, want comment", got.Type)
	}
	if got.Referrer != meta.Referrer || got.UserIP != meta.UserIP || got.UserAgent != meta.UserAgent {
		t.Errorf("request metadata not forwarded: %+v", got)
	}
	if got.Body != comment.Body {
		t.Errorf("comment body not forwarded, got %q", got.Body)
	}
}

type recordingChecker struct {
	got *CommentCheck
}

func (r *recordingChecker) VerifyKey(ctx context.Context) error { return nil }

func (r *recordingChecker) CheckComment(ctx context.Context, check CommentCheck) (bool, error) {
	*r.got = check
	return false, nil
}

func TestCustomWindow(t *testing.T) {
	p := NewPolicy(&fakeChecker{}, nil, 10*24*time.Hour)

	comment := newComment()
	p.Moderate(context.Background(), comment, entryPublishedAgo(15*24*time.Hour), RequestMeta{})

	if comment.IsPublic {
		t.Error("15-day-old entry should be past a 10-day window")
	}
}

func TestNilCollaborators(t *testing.T) {
	p := NewPolicy(nil, nil, 0)

	comment := newComment()
	p.Moderate(context.Background(), comment, entryPublishedAgo(time.Hour), RequestMeta{})

	if !comment.IsPublic {
		t.Error("without a spam checker a recent comment stays public")
	}
}
