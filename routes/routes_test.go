package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pulseblog/api-go/cache"
	"github.com/pulseblog/api-go/config"
	"github.com/pulseblog/api-go/routes"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_fk=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("db open: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := gin.New()
	routes.SetupRoutes(r, db, cache.NewTimeline(time.Minute))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body
}

func registerUser(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: code %d body %s", username, w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token", username)
	}
	return token
}

func postsFromBody(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	posts, ok := decodeBody(t, w)["posts"].([]interface{})
	if !ok {
		t.Fatalf("no posts array in %q", w.Body.String())
	}
	return posts
}

func TestRegisterAndLogin(t *testing.T) {
	c := qt.New(t)
	r := newTestEngine(t)

	registerUser(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"username": "alice",
		"password": "secret1",
	})
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(decodeBody(t, w)["token"], qt.Not(qt.Equals), "")

	w = doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	c.Assert(w.Code, qt.Equals, http.StatusUnauthorized)

	// Duplicate username is rejected.
	w = doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": "alice",
		"email":    "other@example.com",
		"password": "secret1",
	})
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
}

func TestWritesRequireAuth(t *testing.T) {
	c := qt.New(t)
	r := newTestEngine(t)

	w := doJSON(t, r, http.MethodPost, "/api/posts", "", gin.H{"text": "anonymous"})
	c.Assert(w.Code, qt.Equals, http.StatusUnauthorized)

	w = doJSON(t, r, http.MethodPost, "/api/posts/1/comments", "", gin.H{"text": "anonymous"})
	c.Assert(w.Code, qt.Equals, http.StatusUnauthorized)

	w = doJSON(t, r, http.MethodPost, "/api/posts", "not a token", gin.H{"text": "anonymous"})
	c.Assert(w.Code, qt.Equals, http.StatusUnauthorized)
}

func TestPostLifecycle(t *testing.T) {
	c := qt.New(t)
	r := newTestEngine(t)
	alice := registerUser(t, r, "alice")
	bob := registerUser(t, r, "bob")

	w := doJSON(t, r, http.MethodPost, "/api/groups", alice, gin.H{
		"title": "Test",
		"slug":  "test-group",
	})
	c.Assert(w.Code, qt.Equals, http.StatusCreated)

	w = doJSON(t, r, http.MethodPost, "/api/posts", alice, gin.H{
		"text":    "hello",
		"groupId": 1,
	})
	c.Assert(w.Code, qt.Equals, http.StatusCreated)
	created := decodeBody(t, w)
	c.Assert(created["text"], qt.Equals, "hello")
	postID := int(created["id"].(float64))

	// Blank text never creates a post.
	w = doJSON(t, r, http.MethodPost, "/api/posts", alice, gin.H{"text": "   "})
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)

	// The post shows up in the global timeline, the group page and the
	// author page.
	for _, path := range []string{
		"/api/posts",
		"/api/groups/test-group/posts",
		"/api/users/alice/posts",
	} {
		w = doJSON(t, r, http.MethodGet, path, "", nil)
		c.Assert(w.Code, qt.Equals, http.StatusOK, qt.Commentf("path %s", path))
		c.Assert(postsFromBody(t, w), qt.HasLen, 1, qt.Commentf("path %s", path))
	}

	// Only the author can edit; the text stays put after the rejection.
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/posts/%d", postID), bob, gin.H{"text": "hijacked"})
	c.Assert(w.Code, qt.Equals, http.StatusForbidden)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/posts/%d", postID), "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(decodeBody(t, w)["text"], qt.Equals, "hello")

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/posts/%d", postID), alice, gin.H{"text": "edited"})
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	// Delete, author-only as well.
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), bob, nil)
	c.Assert(w.Code, qt.Equals, http.StatusForbidden)
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), alice, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/posts/%d", postID), "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusNotFound)
}

func TestGroupPages(t *testing.T) {
	c := qt.New(t)
	r := newTestEngine(t)
	alice := registerUser(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/groups", alice, gin.H{"title": "Test", "slug": "test-group"})
	c.Assert(w.Code, qt.Equals, http.StatusCreated)
	w = doJSON(t, r, http.MethodPost, "/api/groups", alice, gin.H{"title": "Empty", "slug": "empty-group"})
	c.Assert(w.Code, qt.Equals, http.StatusCreated)

	w = doJSON(t, r, http.MethodPost, "/api/posts", alice, gin.H{"text": "hello", "groupId": 1})
	c.Assert(w.Code, qt.Equals, http.StatusCreated)

	w = doJSON(t, r, http.MethodGet, "/api/groups/test-group/posts", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(postsFromBody(t, w), qt.HasLen, 1)

	// An existing group with no posts is an empty page.
	w = doJSON(t, r, http.MethodGet, "/api/groups/empty-group/posts", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(postsFromBody(t, w), qt.HasLen, 0)

	// An unknown slug is a 404.
	w = doJSON(t, r, http.MethodGet, "/api/groups/other-slug/posts", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusNotFound)

	// Duplicate slug is rejected.
	w = doJSON(t, r, http.MethodPost, "/api/groups", alice, gin.H{"title": "Again", "slug": "test-group"})
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)
}

func TestPaginationOverHTTP(t *testing.T) {
	c := qt.New(t)
	r := newTestEngine(t)
	alice := registerUser(t, r, "alice")

	for i := 0; i < 13; i++ {
		w := doJSON(t, r, http.MethodPost, "/api/posts", alice, gin.H{"text": fmt.Sprintf("post %d", i)})
		c.Assert(w.Code, qt.Equals, http.StatusCreated)
	}

	tests := []struct {
		page int
		want int
	}{
		{page: 1, want: 10},
		{page: 2, want: 3},
		{page: 3, want: 0},
	}
	for _, tt := range tests {
		w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/users/alice/posts?page=%d", tt.page), "", nil)
		c.Assert(w.Code, qt.Equals, http.StatusOK)
		c.Assert(postsFromBody(t, w), qt.HasLen, tt.want, qt.Commentf("page %d", tt.page))
	}
}

func TestFollowAndFeedOverHTTP(t *testing.T) {
	c := qt.New(t)
	r := newTestEngine(t)
	alice := registerUser(t, r, "alice")
	bob := registerUser(t, r, "bob")

	w := doJSON(t, r, http.MethodPost, "/api/posts", bob, gin.H{"text": "bob's post"})
	c.Assert(w.Code, qt.Equals, http.StatusCreated)

	// Empty feed before following.
	w = doJSON(t, r, http.MethodGet, "/api/feed", alice, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(postsFromBody(t, w), qt.HasLen, 0)

	// Self-follow is rejected.
	w = doJSON(t, r, http.MethodPost, "/api/users/alice/follow", alice, nil)
	c.Assert(w.Code, qt.Equals, http.StatusForbidden)

	w = doJSON(t, r, http.MethodPost, "/api/users/bob/follow", alice, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	w = doJSON(t, r, http.MethodGet, "/api/feed", alice, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(postsFromBody(t, w), qt.HasLen, 1)

	// The follower listing reflects the edge.
	w = doJSON(t, r, http.MethodGet, "/api/users/bob/followers", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	followers := decodeBody(t, w)["followers"].([]interface{})
	c.Assert(followers, qt.HasLen, 1)

	w = doJSON(t, r, http.MethodDelete, "/api/users/bob/follow", alice, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	w = doJSON(t, r, http.MethodGet, "/api/feed", alice, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(postsFromBody(t, w), qt.HasLen, 0)

	// Following someone who doesn't exist is a 404.
	w = doJSON(t, r, http.MethodPost, "/api/users/nobody/follow", alice, nil)
	c.Assert(w.Code, qt.Equals, http.StatusNotFound)
}

func TestCommentsOverHTTP(t *testing.T) {
	c := qt.New(t)
	r := newTestEngine(t)
	alice := registerUser(t, r, "alice")
	bob := registerUser(t, r, "bob")

	w := doJSON(t, r, http.MethodPost, "/api/posts", alice, gin.H{"text": "hello"})
	c.Assert(w.Code, qt.Equals, http.StatusCreated)
	postID := int(decodeBody(t, w)["id"].(float64))

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), bob, gin.H{"text": "first!"})
	c.Assert(w.Code, qt.Equals, http.StatusCreated)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), bob, gin.H{"text": "  "})
	c.Assert(w.Code, qt.Equals, http.StatusBadRequest)

	// Anyone can read the comments.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/posts/%d/comments", postID), "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	comments := decodeBody(t, w)["comments"].([]interface{})
	c.Assert(comments, qt.HasLen, 1)
}

func TestTimelineReflectsWrites(t *testing.T) {
	c := qt.New(t)
	r := newTestEngine(t)
	alice := registerUser(t, r, "alice")

	// Prime the cache with the empty timeline.
	w := doJSON(t, r, http.MethodGet, "/api/posts", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(postsFromBody(t, w), qt.HasLen, 0)

	// A write invalidates it, so the next read sees the new post.
	w = doJSON(t, r, http.MethodPost, "/api/posts", alice, gin.H{"text": "fresh"})
	c.Assert(w.Code, qt.Equals, http.StatusCreated)

	w = doJSON(t, r, http.MethodGet, "/api/posts", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(postsFromBody(t, w), qt.HasLen, 1)
}

func TestProfile(t *testing.T) {
	c := qt.New(t)
	r := newTestEngine(t)
	alice := registerUser(t, r, "alice")

	w := doJSON(t, r, http.MethodGet, "/api/profile", alice, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(decodeBody(t, w)["username"], qt.Equals, "alice")

	w = doJSON(t, r, http.MethodPut, "/api/profile", alice, gin.H{"bio": "hi there"})
	c.Assert(w.Code, qt.Equals, http.StatusOK)

	w = doJSON(t, r, http.MethodGet, "/api/profile", alice, nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	c.Assert(decodeBody(t, w)["bio"], qt.Equals, "hi there")
}

func TestPublicUserProfile(t *testing.T) {
	c := qt.New(t)
	r := newTestEngine(t)
	alice := registerUser(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/posts", alice, gin.H{"text": "hello"})
	c.Assert(w.Code, qt.Equals, http.StatusCreated)

	w = doJSON(t, r, http.MethodGet, "/api/users/alice", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusOK)
	body := decodeBody(t, w)
	c.Assert(body["username"], qt.Equals, "alice")
	c.Assert(body["postsCount"], qt.Equals, float64(1))
	c.Assert(body["followersCount"], qt.Equals, float64(0))

	w = doJSON(t, r, http.MethodGet, "/api/users/nobody", "", nil)
	c.Assert(w.Code, qt.Equals, http.StatusNotFound)
}
