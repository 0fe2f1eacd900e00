package client

// User is the account returned by Register.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Token is the result of a successful Login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type Post struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Author    string `json:"author"`
}

type Comment struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	PostID    string `json:"post_id"`
	Author    string `json:"author"`
}

// CommentPreview is one of the newest comments embedded in a feed entry.
type CommentPreview struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
	Author    string `json:"author"`
}

type FeedPost struct {
	ID           string           `json:"id"`
	Text         string           `json:"text"`
	Timestamp    string           `json:"timestamp"`
	Author       string           `json:"author"`
	CommentCount int              `json:"comment_count"`
	Comments     []CommentPreview `json:"comments"`
}

// FeedPage is one page of the post listing. Next and Previous are absolute
// URLs, nil at the ends.
type FeedPage struct {
	Count    int        `json:"count"`
	Next     *string    `json:"next"`
	Previous *string    `json:"previous"`
	Results  []FeedPost `json:"results"`
}
