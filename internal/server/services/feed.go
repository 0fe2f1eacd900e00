package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophfeed/internal/common"
	"github.com/dmitrijs2005/gophfeed/internal/dbx"
	"github.com/dmitrijs2005/gophfeed/internal/server/models"
	"github.com/dmitrijs2005/gophfeed/internal/server/repositories/repomanager"
)

// FeedService assembles pages of the newest-first feed.
type FeedService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewFeedService(db *sql.DB, m repomanager.RepositoryManager) *FeedService {
	return &FeedService{db: db, repomanager: m}
}

// Page returns the 1-based page of the feed with pageSize posts per page.
// Pages below 1 are treated as the first page; pages past the end come back
// with no results. All reads run in one read-only transaction so the count
// and the rows agree.
func (s *FeedService) Page(ctx context.Context, page, pageSize int) (*models.FeedPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("page size %d: %w", pageSize, common.ErrorValidation)
	}

	result := &models.FeedPage{Page: page, PageSize: pageSize, Results: []*models.PostView{}}

	err := dbx.WithTx(ctx, s.db, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx dbx.DBTX) error {
		postsRepo := s.repomanager.Posts(tx)
		commentsRepo := s.repomanager.Comments(tx)

		count, err := postsRepo.Count(ctx)
		if err != nil {
			return fmt.Errorf("error counting posts: %w", err)
		}
		result.Count = count

		if page-1 > count/pageSize {
			return nil
		}
		offset := (page - 1) * pageSize
		if offset >= count {
			return nil
		}

		list, err := postsRepo.ListNewestFirst(ctx, offset, pageSize)
		if err != nil {
			return fmt.Errorf("error listing posts: %w", err)
		}

		for _, post := range list {
			comments, err := commentsRepo.LatestForPost(ctx, post.ID, common.CommentPreviewLimit)
			if err != nil {
				return fmt.Errorf("error loading comments of post %s: %w", post.ID, err)
			}
			n, err := commentsRepo.CountForPost(ctx, post.ID)
			if err != nil {
				return fmt.Errorf("error counting comments of post %s: %w", post.ID, err)
			}
			result.Results = append(result.Results, &models.PostView{
				Post:         *post,
				CommentCount: n,
				Comments:     comments,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
