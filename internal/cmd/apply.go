package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillforge/quill/internal/api"
	"github.com/quillforge/quill/internal/tui"
	"github.com/quillforge/quill/internal/ux"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply to publish on QuillForge",
	Long: `Submit an author application with your pen name and bio.

Applications are reviewed by the QuillForge team. Check the result with
'quill auth status' or 'quill dashboard'.

Examples:
  quill apply
  quill apply --pen-name "A. Mendo" --bio "Short stories and essays"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		snap, err := s.requireAuthenticated(cmd.Context())
		if err != nil {
			return err
		}

		if snap.AuthorProfile != nil {
			switch snap.AuthorProfile.Status {
			case api.AuthorStatusApproved:
				fmt.Println(ux.Success("You are already an approved author."))
			case api.AuthorStatusPending:
				fmt.Println(ux.Warn("Your application is already under review."))
			case api.AuthorStatusRejected:
				fmt.Println(ux.Error("Your previous application was rejected."))
				fmt.Println(ux.Muted("Contact support before applying again."))
			}
			return nil
		}

		input := tui.ApplyInput{}
		input.PenName, _ = cmd.Flags().GetString("pen-name")
		input.Bio, _ = cmd.Flags().GetString("bio")

		if input.PenName == "" || input.Bio == "" {
			if !tui.IsInteractive() {
				return fmt.Errorf("--pen-name and --bio are required when stdin is not a terminal")
			}
			if err := tui.ApplyForm(&input); err != nil {
				return err
			}
		}

		profile, err := s.store.ApplyAsAuthor(cmd.Context(), input.PenName, input.Bio)
		if err != nil {
			return err
		}

		fmt.Println(ux.Success(fmt.Sprintf("Application submitted as %q", profile.PenName)))
		fmt.Printf("Status: %s\n", ux.AuthorStatusBadge(profile.Status))
		return nil
	},
}

func init() {
	applyCmd.Flags().String("pen-name", "", "The name readers will see on your books")
	applyCmd.Flags().String("bio", "", "A short biography")

	rootCmd.AddCommand(applyCmd)
}
