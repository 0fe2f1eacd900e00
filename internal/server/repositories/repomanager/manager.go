// Package repomanager vends repository implementations bound to a DBTX and
// owns schema migrations for each supported database.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophfeed/internal/dbx"
	"github.com/dmitrijs2005/gophfeed/internal/server/repositories/comments"
	"github.com/dmitrijs2005/gophfeed/internal/server/repositories/posts"
	"github.com/dmitrijs2005/gophfeed/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Posts(db dbx.DBTX) posts.Repository
	Comments(db dbx.DBTX) comments.Repository
}

// sqlRepositories is shared by both managers: the repository SQL is portable,
// only the migrations differ.
type sqlRepositories struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (sqlRepositories) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

// Posts returns a posts.Repository bound to the provided DBTX.
func (sqlRepositories) Posts(db dbx.DBTX) posts.Repository {
	return posts.NewSQLRepository(db)
}

// Comments returns a comments.Repository bound to the provided DBTX.
func (sqlRepositories) Comments(db dbx.DBTX) comments.Repository {
	return comments.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}
