package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (a *App) registerCmd() *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if username == "" {
				if username, err = GetSimpleText(a.in, "Username", a.out); err != nil {
					return err
				}
			}
			password, err := GetPassword(a.in, a.out)
			if err != nil {
				return err
			}

			api, _ := a.api(false)
			u, err := api.Register(cmd.Context(), username, email, password)
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(a.out, "Registered %s (%s)\n", u.Username, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "user name (prompted when empty)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "optional email address")
	return cmd
}

func (a *App) loginCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if username == "" {
				if username, err = GetSimpleText(a.in, "Username", a.out); err != nil {
					return err
				}
			}
			password, err := GetPassword(a.in, a.out)
			if err != nil {
				return err
			}

			api, _ := a.api(false)
			tok, err := api.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if err := a.newStore(a.config.TokenFile).Save(tok.AccessToken); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(a.out, "Logged in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "user name (prompted when empty)")
	return cmd
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.newStore(a.config.TokenFile).Clear(); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintln(a.out, "Logged out")
			return nil
		},
	}
}
