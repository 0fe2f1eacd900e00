package cli

import (
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *App) postCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "post <text>...",
		Short: "Publish a post",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.api(true)
			if err != nil {
				return err
			}
			p, err := api.CreatePost(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(a.out, "Posted %s\n", p.ID)
			return nil
		},
	}
}

func (a *App) commentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <post-id> <text>...",
		Short: "Comment on a post",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.api(true)
			if err != nil {
				return err
			}
			c, err := api.AddComment(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(a.out, "Commented %s on %s\n", c.ID, c.PostID)
			return nil
		},
	}
}
