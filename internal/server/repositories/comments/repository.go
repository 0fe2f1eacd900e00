package comments

import (
	"context"

	"github.com/dmitrijs2005/gophfeed/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	// LatestForPost returns up to limit comments of a post, newest first.
	LatestForPost(ctx context.Context, postID string, limit int) ([]*models.Comment, error)
	CountForPost(ctx context.Context, postID string) (int, error)
}
