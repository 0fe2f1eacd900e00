package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/netx"
)

// HTTPClient talks to a gophfeed server. It is safe for concurrent use once
// the token has been set.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewClient returns a client for the server at baseURL. A zero timeout
// means no timeout.
func NewClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken sets the bearer token sent with authenticated requests.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (*User, error) {
	req := map[string]string{"username": username, "email": email, "password": password}
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/register/", req, false, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*Token, error) {
	req := map[string]string{"username": username, "password": password}
	var t Token
	if err := c.do(ctx, http.MethodPost, "/api/login/", req, false, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, text string) (*Post, error) {
	var p Post
	if err := c.do(ctx, http.MethodPost, "/api/posts/create/", map[string]string{"text": text}, true, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) AddComment(ctx context.Context, postID, text string) (*Comment, error) {
	req := map[string]string{"post_id": postID, "text": text}
	var cm Comment
	if err := c.do(ctx, http.MethodPost, "/api/comments/add/", req, true, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

// Feed fetches one page of the post listing. Zero values leave the
// corresponding query parameter to the server's default.
func (c *HTTPClient) Feed(ctx context.Context, page, pageSize int) (*FeedPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	path := "/api/posts/"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var fp FeedPage
	if err := c.do(ctx, http.MethodGet, path, nil, false, &fp); err != nil {
		return nil, err
	}
	return &fp, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, authed bool, out any) error {
	if authed && c.token == "" {
		return ErrNotLoggedIn
	}

	req, err := netx.NewJSONRequest(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if authed {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, netx.ReadErrorBody(resp))
	}
	return netx.DecodeJSON(resp, out)
}
