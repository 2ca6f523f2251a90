package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillforge/quill/internal/api"
	"github.com/quillforge/quill/internal/session"
	"github.com/quillforge/quill/internal/tui"
	"github.com/quillforge/quill/internal/ux"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your QuillForge session",
	Long: `Manage your QuillForge session.

Credentials are stored in ~/.quill/credentials.json with owner-only
permissions. Access tokens are refreshed automatically; you only need
to log in again when the refresh token itself expires.

Subcommands:
  login     Log in with email and password
  register  Create a new account
  logout    Log out and remove credentials
  status    Show the current session

Examples:
  quill auth login
  quill auth login --email you@example.com --password secret
  quill auth status
  quill auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to QuillForge",
	Long: `Log in to QuillForge with your email and password.

Without flags this opens an interactive prompt. After logging in the
token pair is saved locally and used by every other command.

Examples:
  quill auth login
  quill auth login --email you@example.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		input := tui.LoginInput{}
		input.Email, _ = cmd.Flags().GetString("email")
		input.Password, _ = cmd.Flags().GetString("password")

		if input.Email == "" || input.Password == "" {
			if !tui.IsInteractive() {
				return fmt.Errorf("--email and --password are required when stdin is not a terminal")
			}
			if err := tui.LoginForm(&input); err != nil {
				return err
			}
		}

		if err := s.store.Login(cmd.Context(), input.Email, input.Password); err != nil {
			return err
		}

		snap := s.store.Snapshot()
		fmt.Println(ux.Success(fmt.Sprintf("Logged in as %s", snap.Identity.Email)))

		switch {
		case snap.Approved():
			fmt.Println(ux.Muted("Your author account is active. Try 'quill dashboard'."))
		case snap.AuthorProfile != nil:
			fmt.Printf("Author application: %s\n", ux.AuthorStatusBadge(snap.AuthorProfile.Status))
		default:
			fmt.Println(ux.Muted("You have not applied as an author yet. Run 'quill apply'."))
		}

		return nil
	},
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a QuillForge account",
	Long: `Create a new QuillForge account and log in.

Registering only creates the reader account; run 'quill apply'
afterwards to apply as an author.

Examples:
  quill auth register
  quill auth register --email you@example.com --first-name Ama --last-name Mendo`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		input := tui.RegisterInput{}
		input.Email, _ = cmd.Flags().GetString("email")
		input.Password, _ = cmd.Flags().GetString("password")
		input.FirstName, _ = cmd.Flags().GetString("first-name")
		input.LastName, _ = cmd.Flags().GetString("last-name")

		if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
			if !tui.IsInteractive() {
				return fmt.Errorf("all of --email, --password, --first-name and --last-name are required when stdin is not a terminal")
			}
			if err := tui.RegisterForm(&input); err != nil {
				return err
			}
		}

		err = s.store.Register(cmd.Context(), api.RegisterRequest{
			Email:     input.Email,
			Password:  input.Password,
			FirstName: input.FirstName,
			LastName:  input.LastName,
		})
		if err != nil {
			return err
		}

		fmt.Println(ux.Success(fmt.Sprintf("Account created for %s", input.Email)))
		fmt.Println(ux.Muted("Run 'quill apply' to apply as an author."))
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove credentials",
	Long: `Log out of QuillForge.

The refresh token is revoked on the backend best-effort and the local
credentials are removed either way.

Examples:
  quill auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		creds, err := s.creds.Load()
		if err == nil && creds.Empty() {
			fmt.Println("Not logged in.")
			return nil
		}

		s.store.Logout(cmd.Context())

		fmt.Println(ux.Success("Logged out"))
		return nil
	},
}

var authForgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Request a password reset email",
	Long: `Request a password reset email. The email contains a reset token for
'quill auth reset-password'.

Examples:
  quill auth forgot-password --email you@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			if !tui.IsInteractive() {
				return fmt.Errorf("--email is required when stdin is not a terminal")
			}
			email = ux.PromptForString("Email", "")
			if email == "" {
				return fmt.Errorf("--email is required")
			}
		}

		if err := s.client.ForgotPassword(cmd.Context(), email); err != nil {
			return err
		}

		fmt.Println(ux.Success("If that account exists, a reset email is on its way"))
		return nil
	},
}

var authResetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Reset your password with a token",
	Long: `Reset your password using the token from the reset email.

Examples:
  quill auth reset-password --token <token> --password newsecret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		token, _ := cmd.Flags().GetString("token")
		password, _ := cmd.Flags().GetString("password")

		if token == "" {
			return fmt.Errorf("--token is required")
		}
		if password == "" {
			return fmt.Errorf("--password is required")
		}

		if err := s.client.ResetPassword(cmd.Context(), token, password); err != nil {
			return err
		}

		fmt.Println(ux.Success("Password updated, log in with the new password"))
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long: `Show who is logged in, the author application status and when the
current access token expires.

Examples:
  quill auth status
  quill auth status --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		s.store.CheckAuth(cmd.Context())
		snap := s.store.Snapshot()

		if !snap.Authenticated() {
			fmt.Println("Not logged in.")
			fmt.Println(ux.Muted("Use 'quill auth login' to sign in."))
			return nil
		}

		if !textOutput(cmd) {
			formatter, err := formatterFor(cmd)
			if err != nil {
				return err
			}
			return formatter.Format(statusReport(s, snap))
		}

		fmt.Printf("%s %s <%s>\n", ux.Label("Logged in as:"), snap.Identity.FullName(), snap.Identity.Email)
		if snap.AuthorProfile != nil {
			fmt.Printf("%s %s (%s)\n", ux.Label("Author:"), snap.AuthorProfile.PenName, ux.AuthorStatusBadge(snap.AuthorProfile.Status))
		} else {
			fmt.Printf("%s not applied\n", ux.Label("Author:"))
		}

		creds, err := s.creds.Load()
		if err == nil {
			if expiry, ok := creds.AccessTokenExpiry(); ok {
				fmt.Printf("%s %s\n", ux.Label("Token expires:"), ux.FormatDateTime(expiry.Local()))
			}
		}

		return nil
	},
}

type sessionReport struct {
	Email         string `json:"email" yaml:"email"`
	Name          string `json:"name" yaml:"name"`
	AuthorStatus  string `json:"authorStatus,omitempty" yaml:"authorStatus,omitempty"`
	PenName       string `json:"penName,omitempty" yaml:"penName,omitempty"`
	TokenExpiry   string `json:"tokenExpiry,omitempty" yaml:"tokenExpiry,omitempty"`
	Authenticated bool   `json:"authenticated" yaml:"authenticated"`
}

func statusReport(s *shell, snap session.Snapshot) sessionReport {
	report := sessionReport{Authenticated: snap.Authenticated()}
	if snap.Identity != nil {
		report.Email = snap.Identity.Email
		report.Name = snap.Identity.FullName()
	}
	if snap.AuthorProfile != nil {
		report.AuthorStatus = string(snap.AuthorProfile.Status)
		report.PenName = snap.AuthorProfile.PenName
	}
	if creds, err := s.creds.Load(); err == nil {
		if expiry, ok := creds.AccessTokenExpiry(); ok {
			report.TokenExpiry = expiry.Format("2006-01-02 15:04:05")
		}
	}
	return report
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authForgotPasswordCmd)
	authCmd.AddCommand(authResetPasswordCmd)

	authLoginCmd.Flags().String("email", "", "Email address")
	authLoginCmd.Flags().String("password", "", "Password")

	authRegisterCmd.Flags().String("email", "", "Email address")
	authRegisterCmd.Flags().String("password", "", "Password")
	authRegisterCmd.Flags().String("first-name", "", "First name")
	authRegisterCmd.Flags().String("last-name", "", "Last name")

	authForgotPasswordCmd.Flags().String("email", "", "Email address")

	authResetPasswordCmd.Flags().String("token", "", "Reset token from the email")
	authResetPasswordCmd.Flags().String("password", "", "New password")

	rootCmd.AddCommand(authCmd)
}
