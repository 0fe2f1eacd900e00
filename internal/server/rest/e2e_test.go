package rest

import (
	"context"
	"database/sql"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/logging"
	"github.com/dmitrijs2005/gophfeed/internal/server/auth"
	"github.com/dmitrijs2005/gophfeed/internal/server/config"
	"github.com/dmitrijs2005/gophfeed/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophfeed/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newE2ERouter wires the real services against a fresh SQLite database.
func newE2ERouter(t *testing.T) (*gin.Engine, *sql.DB) {
	t.Helper()

	db, rm, err := repomanager.Open(context.Background(), config.DriverSQLite, filepath.Join(t.TempDir(), "feed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{SecretKey: "e2e-secret", AccessTokenValidityDuration: time.Hour}
	h := NewHandler(logging.Nop{},
		services.NewUserService(db, rm, hasher, cfg),
		services.NewPostService(db, rm),
		services.NewFeedService(db, rm),
		db, 10)

	return NewRouter(logging.Nop{}, h), db
}

type feedResponse struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []struct {
		ID           string `json:"id"`
		Text         string `json:"text"`
		Timestamp    string `json:"timestamp"`
		Author       string `json:"author"`
		CommentCount int    `json:"comment_count"`
		Comments     []struct {
			Text      string `json:"text"`
			Timestamp string `json:"timestamp"`
			Author    string `json:"author"`
		} `json:"comments"`
	} `json:"results"`
}

func register(t *testing.T, r http.Handler, username string) {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/register/", map[string]string{"username": username, "password": "pw-" + username})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func login(t *testing.T, r http.Handler, username string) []string {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/api/login/", map[string]string{"username": username, "password": "pw-" + username})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return []string{"Authorization", "Bearer " + decode[loginResponse](t, rec).AccessToken}
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestE2E_Scenario(t *testing.T) {
	r, _ := newE2ERouter(t)

	rec := doJSON(t, r, http.MethodPost, "/register/", map[string]string{"username": "alice", "email": "alice@example.com", "password": "pw"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reg := decode[registerResponse](t, rec)
	assert.Equal(t, "User created successfully", reg.Message)
	assert.Equal(t, "alice", reg.User.Username)
	assert.NotContains(t, rec.Body.String(), `"pw"`)

	rec = doJSON(t, r, http.MethodPost, "/api/login/", map[string]string{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	lr := decode[loginResponse](t, rec)
	assert.Equal(t, "Login successful.", lr.Message)
	authz := []string{"Authorization", "Bearer " + lr.AccessToken}

	rec = doJSON(t, r, http.MethodPost, "/api/posts/create/", map[string]string{"text": "hi"}, authz...)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decode[postDTO](t, rec)
	assert.Equal(t, "alice", post.Author)
	assert.Equal(t, "hi", post.Text)

	rec = doJSON(t, r, http.MethodPost, "/api/comments/add/", map[string]string{"post_id": post.ID, "text": "nice"}, authz...)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	comment := decode[commentDTO](t, rec)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, "alice", comment.Author)

	rec = doJSON(t, r, http.MethodGet, "/api/posts/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decode[feedResponse](t, rec)
	assert.Equal(t, 1, feed.Count)
	assert.Nil(t, feed.Next)
	assert.Nil(t, feed.Previous)
	require.Len(t, feed.Results, 1)
	assert.Equal(t, post.ID, feed.Results[0].ID)
	assert.Equal(t, post.Timestamp, feed.Results[0].Timestamp)
	assert.Equal(t, "alice", feed.Results[0].Author)
	assert.Equal(t, 1, feed.Results[0].CommentCount)
	require.Len(t, feed.Results[0].Comments, 1)
	assert.Equal(t, "nice", feed.Results[0].Comments[0].Text)
	assert.Equal(t, "alice", feed.Results[0].Comments[0].Author)
}

func TestE2E_DuplicateUsernameCreatesNoUser(t *testing.T) {
	r, db := newE2ERouter(t)
	register(t, r, "alice")

	rec := doJSON(t, r, http.MethodPost, "/register/", map[string]string{"username": "alice", "password": "other"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"username":["A user with that username already exists."]}`, rec.Body.String())
	assert.Equal(t, 1, countRows(t, db, "users"))
}

func TestE2E_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	r, _ := newE2ERouter(t)
	register(t, r, "alice")

	wrong := doJSON(t, r, http.MethodPost, "/api/login/", map[string]string{"username": "alice", "password": "nope"})
	unknown := doJSON(t, r, http.MethodPost, "/api/login/", map[string]string{"username": "ghost", "password": "nope"})

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestE2E_CommentOnUnknownPost(t *testing.T) {
	r, db := newE2ERouter(t)
	register(t, r, "alice")
	authz := login(t, r, "alice")

	for _, id := range []string{"01900000-0000-7000-8000-000000000000", "not-a-uuid"} {
		rec := doJSON(t, r, http.MethodPost, "/api/comments/add/", map[string]string{"post_id": id, "text": "x"}, authz...)
		require.Equal(t, http.StatusNotFound, rec.Code, id)
		assert.JSONEq(t, `{"error":"Post not found."}`, rec.Body.String())
	}
	assert.Equal(t, 0, countRows(t, db, "comments"))
}

func TestE2E_NewestFirstAndPreviewLimit(t *testing.T) {
	r, _ := newE2ERouter(t)
	register(t, r, "alice")
	register(t, r, "bob")
	alice := login(t, r, "alice")
	bob := login(t, r, "bob")

	var ids []string
	for _, text := range []string{"first", "second", "third"} {
		rec := doJSON(t, r, http.MethodPost, "/api/posts/create/", map[string]string{"text": text}, alice...)
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, decode[postDTO](t, rec).ID)
	}

	for _, text := range []string{"c1", "c2", "c3", "c4", "c5"} {
		rec := doJSON(t, r, http.MethodPost, "/api/comments/add/", map[string]string{"post_id": ids[0], "text": text}, bob...)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, r, http.MethodGet, "/api/posts/?page_size=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	feed := decode[feedResponse](t, rec)
	assert.Equal(t, 3, feed.Count)
	require.Len(t, feed.Results, 2)
	assert.Equal(t, ids[2], feed.Results[0].ID)
	assert.Equal(t, ids[1], feed.Results[1].ID)
	require.NotNil(t, feed.Next)
	assert.Equal(t, "http://example.com/api/posts/?page=2&page_size=2", *feed.Next)

	rec = doJSON(t, r, http.MethodGet, "/api/posts/?page=2&page_size=2", nil)
	feed = decode[feedResponse](t, rec)
	require.Len(t, feed.Results, 1)
	got := feed.Results[0]
	assert.Equal(t, ids[0], got.ID)
	assert.Equal(t, 5, got.CommentCount)
	require.Len(t, got.Comments, 3)
	assert.Equal(t, []string{"c5", "c4", "c3"}, []string{got.Comments[0].Text, got.Comments[1].Text, got.Comments[2].Text})
	for _, c := range got.Comments {
		assert.Equal(t, "bob", c.Author)
	}
	require.NotNil(t, feed.Previous)
	assert.Equal(t, "http://example.com/api/posts/?page_size=2", *feed.Previous)
}

func TestE2E_BasicAuth(t *testing.T) {
	r, _ := newE2ERouter(t)
	register(t, r, "alice")

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("alice", "pw-alice")

	rec := doJSON(t, r, http.MethodPost, "/api/posts/create/", map[string]string{"text": "via basic"}, "Authorization", req.Header.Get("Authorization"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "alice", decode[postDTO](t, rec).Author)
}

func TestE2E_PagesPastTheEnd(t *testing.T) {
	r, _ := newE2ERouter(t)
	register(t, r, "alice")
	authz := login(t, r, "alice")
	rec := doJSON(t, r, http.MethodPost, "/api/posts/create/", map[string]string{"text": "only"}, authz...)
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, page := range []int{2, 922337203685477581, math.MaxInt} {
		rec := doJSON(t, r, http.MethodGet, "/api/posts/?page="+strconv.Itoa(page), nil)
		require.Equal(t, http.StatusOK, rec.Code, page)

		feed := decode[feedResponse](t, rec)
		assert.Equal(t, 1, feed.Count)
		assert.Empty(t, feed.Results)
		assert.Nil(t, feed.Next, "page %d", page)
		require.NotNil(t, feed.Previous)
		if page > 2 {
			assert.Equal(t, "http://example.com/api/posts/?page="+strconv.Itoa(page-1), *feed.Previous)
		}
	}
}

func TestE2E_TokenOfUnknownUser(t *testing.T) {
	r, db := newE2ERouter(t)

	tok, err := auth.GenerateToken(uuid.NewString(), "ghost", []byte("e2e-secret"), time.Hour)
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodPost, "/api/posts/create/", map[string]string{"text": "boo"}, "Authorization", "Bearer "+tok)
	require.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"error":"Invalid token."}`, rec.Body.String())
	assert.Equal(t, 0, countRows(t, db, "posts"))
}
