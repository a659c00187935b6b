package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fentz26/givo/internal/app"
	"github.com/fentz26/givo/internal/apperr"
	"github.com/fentz26/givo/internal/auth"
	"github.com/fentz26/givo/internal/state"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in, sign up and manage your profile",
}

var (
	authEmail    string
	authPassword string
	authFullname string
	authCountry  string
)

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if u := a.Auth.GetUser(); u != nil {
				fmt.Printf("Already signed in as %s\n", u.Email)
				return nil
			}
			u, err := a.Auth.Login(ctx, prompt("Email", authEmail), prompt("Password", authPassword))
			if errors.Is(err, apperr.ErrNetworkUnavailable) {
				fmt.Fprintln(os.Stderr, "Your todos and lists are still available offline.")
			}
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s\n", u.Email)
			return nil
		})
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			req := auth.SignUpRequest{
				Fullname: prompt("Full name", authFullname),
				Country:  authCountry,
				Email:    prompt("Email", authEmail),
				Password: prompt("Password", authPassword),
			}
			if err := a.Auth.Register(ctx, req); err != nil {
				return err
			}
			fmt.Println("Account created. Sign in with: givo auth signin")
			return nil
		})
	},
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if !a.Auth.IsAuthenticated() {
				fmt.Println("Not signed in")
				return nil
			}
			a.Auth.Logout()
			fmt.Println("Signed out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current user info",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			u := a.Auth.GetUser()
			if u == nil {
				fmt.Println("Not signed in. Use 'givo auth signin'.")
				return nil
			}
			fmt.Printf("ID:       %s\n", u.ID)
			fmt.Printf("Email:    %s\n", u.Email)
			if u.Fullname != "" {
				fmt.Printf("Name:     %s\n", u.Fullname)
			}
			if u.Country != "" {
				fmt.Printf("Country:  %s\n", u.Country)
			}
			return nil
		})
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Edit your profile (--name, --email, --country)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch state.ProfilePatch
		if cmd.Flags().Changed("name") {
			patch.Fullname = &authFullname
		}
		if cmd.Flags().Changed("email") {
			patch.Email = &authEmail
		}
		if cmd.Flags().Changed("country") {
			patch.Country = &authCountry
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Auth.UpdateProfile(patch); err != nil {
				return err
			}
			fmt.Println("Profile updated")
			return nil
		})
	},
}

// resetPasswordCmd walks through request, verify and set in one session,
// since the flow state does not outlive the process.
var resetPasswordCmd = &cobra.Command{
	Use:     "reset-password",
	Aliases: []string{"forgot"},
	Short:   "Reset a forgotten password",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			reset := a.Auth.NewPasswordReset()
			if err := reset.Request(ctx, prompt("Email", authEmail)); err != nil {
				return err
			}
			fmt.Printf("A reset code was sent to %s\n", reset.Email())
			if err := reset.Verify(ctx, prompt("Code", "")); err != nil {
				return err
			}
			if err := reset.Complete(ctx, prompt("New password", authPassword)); err != nil {
				return err
			}
			fmt.Println("Password updated. Sign in with: givo auth signin")
			return nil
		})
	},
}

func init() {
	authCmd.AddCommand(signinCmd, signupCmd, signoutCmd, whoamiCmd, profileCmd, resetPasswordCmd)

	for _, c := range []*cobra.Command{signinCmd, signupCmd, resetPasswordCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "Account email")
		c.Flags().StringVar(&authPassword, "password", "", "Password (prompted when empty)")
	}
	signupCmd.Flags().StringVar(&authFullname, "name", "", "Full name")
	signupCmd.Flags().StringVar(&authCountry, "country", "", "Country")

	profileCmd.Flags().StringVar(&authFullname, "name", "", "Full name")
	profileCmd.Flags().StringVar(&authEmail, "email", "", "Email")
	profileCmd.Flags().StringVar(&authCountry, "country", "", "Country")
}

var stdin = bufio.NewReader(os.Stdin)

// prompt returns value, or asks for it on stdin when empty.
func prompt(label, value string) string {
	if value != "" {
		return value
	}
	fmt.Printf("%s: ", label)
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
