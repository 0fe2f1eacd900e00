package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophfeed/internal/client/client"
	"github.com/dmitrijs2005/gophfeed/internal/client/config"
)

// API is the subset of the HTTP client used by the commands.
type API interface {
	SetToken(token string)
	Register(ctx context.Context, username, email, password string) (*client.User, error)
	Login(ctx context.Context, username, password string) (*client.Token, error)
	CreatePost(ctx context.Context, text string) (*client.Post, error)
	AddComment(ctx context.Context, postID, text string) (*client.Comment, error)
	Feed(ctx context.Context, page, pageSize int) (*client.FeedPage, error)
}

// TokenStore keeps the access token between invocations.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// App carries the state shared by all commands.
type App struct {
	config *config.Config
	in     *bufio.Reader
	out    io.Writer

	newAPI   func(c *config.Config) API
	newStore func(path string) TokenStore
}

// NewApp builds an App reading from in and writing to out.
func NewApp(cfg *config.Config, in io.Reader, out io.Writer) *App {
	return &App{
		config: cfg,
		in:     bufio.NewReader(in),
		out:    out,
		newAPI: func(c *config.Config) API {
			return client.NewClient(c.ServerURL, c.RequestTimeout)
		},
		newStore: func(path string) TokenStore {
			return client.NewFileTokenStore(path)
		},
	}
}

// NewRootCmd returns the gophfeed command tree.
func (a *App) NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gophfeed",
		Short:         "gophfeed: post, comment and read the feed",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.SetErr(a.out)

	// -c/--config is consumed by config.LoadConfig before cobra runs; it is
	// declared here so cobra accepts it.
	var configFile string
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to JSON config file")
	root.PersistentFlags().StringVar(&a.config.ServerURL, "server", a.config.ServerURL, "server base URL")
	root.PersistentFlags().StringVar(&a.config.TokenFile, "token-file", a.config.TokenFile, "where the access token is stored")

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.postCmd(),
		a.commentCmd(),
		a.feedCmd(),
	)
	return root
}

// Execute runs the command tree and prints any error in red. It returns the
// process exit code.
func (a *App) Execute(ctx context.Context, args []string) int {
	root := a.NewRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(a.out, color.New(color.FgHiRed, color.Bold).Sprint("Error: ")+describe(err))
		return 1
	}
	return 0
}

// api returns a client, authenticated with the stored token when authed is
// set.
func (a *App) api(authed bool) (API, error) {
	c := a.newAPI(a.config)
	if !authed {
		return c, nil
	}
	tok, err := a.newStore(a.config.TokenFile).Load()
	if err != nil {
		return nil, err
	}
	c.SetToken(tok)
	return c, nil
}

func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		return "not logged in, run `gophfeed login` first"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable: " + err.Error()
	case errors.Is(err, client.ErrUnauthorized):
		return "unauthorized, your session may have expired: " + err.Error()
	}
	return err.Error()
}

// Main loads configuration and runs the CLI with the process arguments.
func Main(ctx context.Context) int {
	a := NewApp(config.LoadConfig(), os.Stdin, os.Stdout)
	return a.Execute(ctx, os.Args[1:])
}
