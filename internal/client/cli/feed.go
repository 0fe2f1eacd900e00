package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophfeed/internal/client/client"
)

func (a *App) feedCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Show posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, _ := a.api(false)
			fp, err := api.Feed(cmd.Context(), page, pageSize)
			if err != nil {
				return err
			}
			a.renderFeed(fp, page)
			return nil
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().IntVarP(&pageSize, "page-size", "n", 0, "posts per page (server default when 0)")
	return cmd
}

func (a *App) renderFeed(fp *client.FeedPage, page int) {
	if len(fp.Results) == 0 {
		fmt.Fprintln(a.out, "No posts.")
		return
	}

	table := tablewriter.NewWriter(a.out)
	table.SetHeader([]string{"ID", "Author", "Time", "Text", "Comments"})
	table.SetAutoWrapText(false)

	for _, p := range fp.Results {
		table.Append([]string{p.ID, p.Author, p.Timestamp, p.Text, formatComments(p)})
	}
	table.Render()

	footer := fmt.Sprintf("page %d, %d posts total", page, fp.Count)
	if fp.Next != nil {
		footer += fmt.Sprintf(" (next: --page %d)", page+1)
	}
	fmt.Fprintln(a.out, color.New(color.Faint).Sprint(footer))
}

func formatComments(p client.FeedPost) string {
	lines := []string{strconv.Itoa(p.CommentCount)}
	for _, c := range p.Comments {
		lines = append(lines, c.Author+": "+c.Text)
	}
	return strings.Join(lines, "\n")
}
