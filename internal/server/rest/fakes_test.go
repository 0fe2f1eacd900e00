package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/logging"
	"github.com/dmitrijs2005/gophfeed/internal/server/models"
	"github.com/dmitrijs2005/gophfeed/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers struct {
	registerFn func(username, email, password string) (*models.User, error)
	loginFn    func(username, password string) (*services.AccessToken, error)
	authFn     func(username, password string) (*models.User, error)
	tokenFn    func(token string) (*models.Principal, error)
}

func (f *fakeUsers) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return f.registerFn(username, email, password)
}

func (f *fakeUsers) Login(ctx context.Context, username, password string) (*services.AccessToken, error) {
	return f.loginFn(username, password)
}

func (f *fakeUsers) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if f.authFn == nil {
		return nil, common.ErrorUnauthorized
	}
	return f.authFn(username, password)
}

func (f *fakeUsers) PrincipalFromToken(ctx context.Context, token string) (*models.Principal, error) {
	if f.tokenFn == nil {
		switch token {
		case "good":
			return &models.Principal{UserID: "u-1", UserName: "alice"}, nil
		case "expired":
			return nil, common.ErrTokenExpired
		case "broken":
			return nil, errors.New("db down")
		}
		return nil, common.ErrInvalidToken
	}
	return f.tokenFn(token)
}

type fakePosts struct {
	postFn    func(p *models.Principal, text string) (*models.Post, error)
	commentFn func(p *models.Principal, postID, text string) (*models.Comment, error)
}

func (f *fakePosts) CreatePost(ctx context.Context, p *models.Principal, text string) (*models.Post, error) {
	return f.postFn(p, text)
}

func (f *fakePosts) CreateComment(ctx context.Context, p *models.Principal, postID, text string) (*models.Comment, error) {
	return f.commentFn(p, postID, text)
}

type fakeFeed struct {
	pageFn func(page, size int) (*models.FeedPage, error)
}

func (f *fakeFeed) Page(ctx context.Context, page, size int) (*models.FeedPage, error) {
	return f.pageFn(page, size)
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type testDeps struct {
	users *fakeUsers
	posts *fakePosts
	feed  *fakeFeed
	db    fakePinger
}

func newTestRouter(d *testDeps) *gin.Engine {
	if d.users == nil {
		d.users = &fakeUsers{}
	}
	if d.posts == nil {
		d.posts = &fakePosts{}
	}
	if d.feed == nil {
		d.feed = &fakeFeed{}
	}
	h := NewHandler(logging.Nop{}, d.users, d.posts, d.feed, d.db, 10)
	return NewRouter(logging.Nop{}, h)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
