package posts

import (
	"context"

	"github.com/dmitrijs2005/gophfeed/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	// ListNewestFirst returns up to limit posts ordered by creation time,
	// newest first, with AuthorName filled in.
	ListNewestFirst(ctx context.Context, offset, limit int) ([]*models.Post, error)
	Count(ctx context.Context) (int, error)
}
