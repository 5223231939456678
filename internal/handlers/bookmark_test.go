package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"coltrane/internal/db"
	"coltrane/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// A session can name a user row that no longer exists. The auth gate only
// checks the session, so handlers behind it must tolerate the user missing
// from the request context and redirect instead of panicking.
func TestStaleSessionRedirectsToLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.DB = gdb

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("coltrane_session", store))
	r.Use(middleware.LoadUser())
	r.GET("/session", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set("user_id", uint(42)) // no such user row
		if err := session.Save(); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}
		c.Status(http.StatusOK)
	})

	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	authorized.GET("/bookmarks/", NewBookmarkHandler().List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/session", nil))

	req := httptest.NewRequest("GET", "/bookmarks/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	got := httptest.NewRecorder()
	r.ServeHTTP(got, req)

	if got.Code != http.StatusFound {
		t.Fatalf("expected a redirect for a stale session, got %d", got.Code)
	}
	if loc := got.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}
