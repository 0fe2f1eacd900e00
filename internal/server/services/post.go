package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/dbx"
	"github.com/dmitrijs2005/gophfeed/internal/server/models"
	"github.com/dmitrijs2005/gophfeed/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// PostService creates posts and comments on behalf of an authenticated user.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager

	now   func() time.Time
	newID func() (uuid.UUID, error)
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{
		db:          db,
		repomanager: m,
		now:         utcNow,
		newID:       uuid.NewV7,
	}
}

// CreatePost stores a post authored by p. Blank text yields
// common.ErrorValidation.
func (s *PostService) CreatePost(ctx context.Context, p *models.Principal, text string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty post text: %w", common.ErrorValidation)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("error generating post id: %w", err)
	}

	post := &models.Post{
		ID:         id.String(),
		UserID:     p.UserID,
		Text:       text,
		CreatedAt:  s.now(),
		AuthorName: p.UserName,
	}

	if _, err := s.repomanager.Posts(s.db).Create(ctx, post); err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return post, nil
}

// CreateComment attaches a comment to an existing post. The existence check
// and the insert share a transaction. Unknown or malformed post ids yield
// common.ErrorNotFound.
func (s *PostService) CreateComment(ctx context.Context, p *models.Principal, postID, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty comment text: %w", common.ErrorValidation)
	}

	if _, err := uuid.Parse(postID); err != nil {
		return nil, fmt.Errorf("malformed post id %q: %w", postID, common.ErrorNotFound)
	}

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("error generating comment id: %w", err)
	}

	comment := &models.Comment{
		ID:         id.String(),
		UserID:     p.UserID,
		Text:       text,
		CreatedAt:  s.now(),
		AuthorName: p.UserName,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		post, err := s.repomanager.Posts(tx).GetByID(ctx, postID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return fmt.Errorf("post %s: %w", postID, common.ErrorNotFound)
			}
			return fmt.Errorf("error loading post: %w", err)
		}

		comment.PostID = post.ID
		if _, err := s.repomanager.Comments(tx).Create(ctx, comment); err != nil {
			return fmt.Errorf("error creating comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}
