package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/gophfeed/internal/client/client"
	"github.com/dmitrijs2005/gophfeed/internal/client/config"
)

type fakeAPI struct {
	token string

	registered []string
	loggedIn   []string
	posts      []string
	comments   [][2]string
	feedArgs   [2]int

	loginToken string
	feed       *client.FeedPage
	err        error
}

func (f *fakeAPI) SetToken(token string) { f.token = token }

func (f *fakeAPI) Register(_ context.Context, username, email, password string) (*client.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.registered = append(f.registered, username+"|"+email+"|"+password)
	return &client.User{ID: "u1", Username: username, Email: email}, nil
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (*client.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.loggedIn = append(f.loggedIn, username+"|"+password)
	return &client.Token{AccessToken: f.loginToken, TokenType: "Bearer"}, nil
}

func (f *fakeAPI) CreatePost(_ context.Context, text string) (*client.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.posts = append(f.posts, text)
	return &client.Post{ID: "p1", Text: text}, nil
}

func (f *fakeAPI) AddComment(_ context.Context, postID, text string) (*client.Comment, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.comments = append(f.comments, [2]string{postID, text})
	return &client.Comment{ID: "c1", PostID: postID, Text: text}, nil
}

func (f *fakeAPI) Feed(_ context.Context, page, pageSize int) (*client.FeedPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.feedArgs = [2]int{page, pageSize}
	if f.feed == nil {
		return &client.FeedPage{Results: []client.FeedPost{}}, nil
	}
	return f.feed, nil
}

type fakeStore struct {
	token   string
	saved   []string
	cleared bool
}

func (s *fakeStore) Load() (string, error) {
	if s.token == "" {
		return "", client.ErrNotLoggedIn
	}
	return s.token, nil
}

func (s *fakeStore) Save(token string) error {
	s.token = token
	s.saved = append(s.saved, token)
	return nil
}

func (s *fakeStore) Clear() error {
	s.token = ""
	s.cleared = true
	return nil
}

// newTestApp wires an App to fakes. stdin is not a terminal, so passwords
// are read from input like any other line.
func newTestApp(t *testing.T, input string, api *fakeAPI, store *fakeStore) (*App, *bytes.Buffer) {
	t.Helper()

	origNoColor := color.NoColor
	color.NoColor = true
	origIsTerminal := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() {
		color.NoColor = origNoColor
		isTerminal = origIsTerminal
	})

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.TokenFile = "token"

	var out bytes.Buffer
	a := NewApp(cfg, strings.NewReader(input), &out)
	a.newAPI = func(*config.Config) API { return api }
	a.newStore = func(string) TokenStore { return store }
	return a, &out
}
