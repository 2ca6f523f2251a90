package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillforge/quill/internal/api"
	"github.com/quillforge/quill/internal/ux"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your author profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your author profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireAuthenticated(cmd.Context()); err != nil {
			return err
		}

		profile, err := s.client.MyProfile(cmd.Context())
		if err != nil {
			if err == api.ErrNoProfile {
				fmt.Println("No author profile. Run 'quill apply' to apply.")
				return nil
			}
			return err
		}

		if !textOutput(cmd) {
			formatter, err := formatterFor(cmd)
			if err != nil {
				return err
			}
			return formatter.Format(profile)
		}

		fmt.Printf("%s %s\n", ux.Label("Pen name:"), profile.PenName)
		fmt.Printf("%s %s\n", ux.Label("Status:  "), ux.AuthorStatusBadge(profile.Status))
		fmt.Printf("%s %s\n", ux.Label("Bio:     "), profile.Bio)
		if profile.Website != "" {
			fmt.Printf("%s %s\n", ux.Label("Website: "), profile.Website)
		}
		if profile.MTNNumber != "" {
			fmt.Printf("%s %s\n", ux.Label("MTN:     "), profile.MTNNumber)
		}
		if profile.OMNumber != "" {
			fmt.Printf("%s %s\n", ux.Label("OM:      "), profile.OMNumber)
		}
		fmt.Printf("%s %s\n", ux.Label("Member:  "), ux.FormatDate(profile.CreatedAt))
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your author profile",
	Long: `Update fields of your author profile. Only the flags you pass are
changed.

Examples:
  quill profile update --bio "New bio"
  quill profile update --website https://example.com --mtn-number 670000000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireApproved(cmd.Context()); err != nil {
			return err
		}

		req := api.UpdateProfileRequest{}
		changed := false
		setString := func(flag string, dst **string) {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*dst = &v
				changed = true
			}
		}

		setString("pen-name", &req.PenName)
		setString("bio", &req.Bio)
		setString("website", &req.Website)
		setString("twitter", &req.Twitter)
		setString("facebook", &req.Facebook)
		setString("mtn-number", &req.MTNNumber)
		setString("om-number", &req.OMNumber)

		if !changed {
			return fmt.Errorf("nothing to update, pass at least one flag")
		}

		profile, err := s.client.UpdateMyProfile(cmd.Context(), req)
		if err != nil {
			return err
		}

		fmt.Println(ux.Success(fmt.Sprintf("Profile updated for %q", profile.PenName)))
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)

	profileUpdateCmd.Flags().String("pen-name", "", "Pen name")
	profileUpdateCmd.Flags().String("bio", "", "Biography")
	profileUpdateCmd.Flags().String("website", "", "Website URL")
	profileUpdateCmd.Flags().String("twitter", "", "Twitter handle")
	profileUpdateCmd.Flags().String("facebook", "", "Facebook page")
	profileUpdateCmd.Flags().String("mtn-number", "", "MTN Mobile Money number")
	profileUpdateCmd.Flags().String("om-number", "", "Orange Money number")

	rootCmd.AddCommand(profileCmd)
}
