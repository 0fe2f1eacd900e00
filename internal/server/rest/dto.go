package rest

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/server/models"
	"github.com/dmitrijs2005/gophfeed/internal/server/services"
)

// Response messages.
const (
	msgUserCreated   = "User created successfully"
	msgLoginOK       = "Login successful."
	msgInvalidLogin  = "Invalid credentials."
	msgTextRequired  = "Text is required."
	msgCommentFields = "post_id and text are required."
	msgPostNotFound  = "Post not found."
	msgUsernameTaken = "A user with that username already exists."
	msgMalformedBody = "Malformed request body."
	msgNoCredentials = "Authentication credentials were not provided."
	msgInvalidToken  = "Invalid token."
	msgInvalidBasic  = "Invalid username/password."
	msgInternal      = "Internal server error."
)

type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required,max=150,username"`
	Email    string `json:"email" binding:"omitempty,max=254,email"`
	Password string `json:"password" binding:"required"`
}

type userDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type registerResponse struct {
	Message string  `json:"message"`
	User    userDTO `json:"user"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type createPostRequest struct {
	Text string `json:"text"`
}

type postDTO struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Author    string `json:"author"`
}

type addCommentRequest struct {
	PostID string `json:"post_id"`
	Text   string `json:"text"`
}

type commentDTO struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	PostID    string `json:"post_id"`
	Author    string `json:"author"`
}

type commentPreviewDTO struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Author    string `json:"author"`
}

type feedPostDTO struct {
	ID           string              `json:"id"`
	Text         string              `json:"text"`
	Timestamp    string              `json:"timestamp"`
	Author       string              `json:"author"`
	CommentCount int                 `json:"comment_count"`
	Comments     []commentPreviewDTO `json:"comments"`
}

type feedPageDTO struct {
	Count    int           `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []feedPostDTO `json:"results"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{ID: u.ID, Username: u.UserName, Email: u.Email}
}

func toLoginResponse(t *services.AccessToken) loginResponse {
	return loginResponse{
		Message:     msgLoginOK,
		AccessToken: t.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(t.ExpiresIn / time.Second),
	}
}

func toPostDTO(p *models.Post) postDTO {
	return postDTO{
		ID:        p.ID,
		Text:      p.Text,
		Timestamp: formatTimestamp(p.CreatedAt),
		Author:    p.AuthorName,
	}
}

func toCommentDTO(c *models.Comment) commentDTO {
	return commentDTO{
		ID:        c.ID,
		Text:      c.Text,
		Timestamp: formatTimestamp(c.CreatedAt),
		PostID:    c.PostID,
		Author:    c.AuthorName,
	}
}

// toFeedPageDTO maps a feed page. base is the absolute URL of the listing
// request and is used to build the next and previous links.
func toFeedPageDTO(p *models.FeedPage, base *url.URL) feedPageDTO {
	out := feedPageDTO{Count: p.Count, Results: make([]feedPostDTO, 0, len(p.Results))}

	for _, v := range p.Results {
		comments := make([]commentPreviewDTO, 0, len(v.Comments))
		for _, c := range v.Comments {
			comments = append(comments, commentPreviewDTO{
				Text:      c.Text,
				Timestamp: formatTimestamp(c.CreatedAt),
				Author:    c.AuthorName,
			})
		}
		out.Results = append(out.Results, feedPostDTO{
			ID:           v.ID,
			Text:         v.Text,
			Timestamp:    formatTimestamp(v.CreatedAt),
			Author:       v.AuthorName,
			CommentCount: v.CommentCount,
			Comments:     comments,
		})
	}

	if p.HasNext() {
		next := pageURL(base, p.Page+1)
		out.Next = &next
	}
	if p.HasPrevious() {
		prev := pageURL(base, p.Page-1)
		out.Previous = &prev
	}
	return out
}

// pageURL returns base with its page parameter set to page. The first page
// is addressed without a page parameter.
func pageURL(base *url.URL, page int) string {
	u := *base
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// absoluteURL reconstructs the URL the client used for r.
func absoluteURL(r *http.Request) *url.URL {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return &url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
	}
}
