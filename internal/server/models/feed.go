package models

// PostView is a feed entry: a post with its author, total number of comments
// and a preview of the newest ones.
type PostView struct {
	Post
	CommentCount int
	Comments     []*Comment
}

// FeedPage is one page of the newest-first feed.
type FeedPage struct {
	Page     int
	PageSize int
	Count    int
	Results  []*PostView
}

// HasNext reports whether a page after this one exists. It does not
// multiply Page by PageSize, so huge page numbers cannot overflow.
func (p *FeedPage) HasNext() bool {
	if p.PageSize < 1 || p.Count < 1 {
		return false
	}
	return p.Page <= (p.Count-1)/p.PageSize
}

// HasPrevious reports whether a page before this one exists.
func (p *FeedPage) HasPrevious() bool {
	return p.Page > 1
}
