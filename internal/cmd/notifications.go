package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillforge/quill/internal/api"
	"github.com/quillforge/quill/internal/ux"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notify"},
	Short:   "Manage your notifications",
	Long: `List, read and clear platform notifications.

Examples:
  quill notifications list
  quill notifications list --unread
  quill notifications read <id>
  quill notifications read-all
  quill notifications clear`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireAuthenticated(cmd.Context()); err != nil {
			return err
		}

		params := api.ListNotificationsParams{}
		params.Page, _ = cmd.Flags().GetInt("page")
		params.Limit, _ = cmd.Flags().GetInt("limit")
		params.UnreadOnly, _ = cmd.Flags().GetBool("unread")

		page, err := s.client.Notifications(cmd.Context(), params)
		if err != nil {
			return err
		}

		if !textOutput(cmd) {
			formatter, err := formatterFor(cmd)
			if err != nil {
				return err
			}
			return formatter.Format(page)
		}

		if len(page.Items) == 0 {
			fmt.Println("No notifications.")
			return nil
		}

		for _, n := range page.Items {
			marker := "  "
			if !n.Read {
				marker = "● "
			}
			fmt.Printf("%s%s  %s\n", marker, n.Title, ux.Muted(ux.FormatDateTime(n.CreatedAt)))
			if n.Message != "" {
				fmt.Printf("   %s\n", ux.Muted(n.Message))
			}
			fmt.Printf("   %s\n", ux.Muted("id: "+n.ID))
		}

		unread, err := s.client.UnreadCount(cmd.Context())
		if err == nil && unread > 0 {
			fmt.Println(ux.Muted(fmt.Sprintf("\n%d unread", unread)))
		}
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireAuthenticated(cmd.Context()); err != nil {
			return err
		}

		if err := s.client.MarkRead(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Println(ux.Success("Marked as read"))
		return nil
	},
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark all notifications as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireAuthenticated(cmd.Context()); err != nil {
			return err
		}

		if err := s.client.MarkAllRead(cmd.Context()); err != nil {
			return err
		}

		fmt.Println(ux.Success("All notifications marked as read"))
		return nil
	},
}

var notificationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireAuthenticated(cmd.Context()); err != nil {
			return err
		}

		if err := s.client.DeleteNotification(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Println(ux.Success("Notification deleted"))
		return nil
	},
}

var notificationsClearCmd = &cobra.Command{
	Use:     "clear",
	Aliases: []string{"clear-read"},
	Short:   "Delete all read notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireAuthenticated(cmd.Context()); err != nil {
			return err
		}

		if err := s.client.ClearRead(cmd.Context()); err != nil {
			return err
		}

		fmt.Println(ux.Success("Read notifications cleared"))
		return nil
	},
}

func init() {
	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsReadAllCmd)
	notificationsCmd.AddCommand(notificationsDeleteCmd)
	notificationsCmd.AddCommand(notificationsClearCmd)

	notificationsListCmd.Flags().Int("page", 1, "Page number")
	notificationsListCmd.Flags().Int("limit", 20, "Notifications per page")
	notificationsListCmd.Flags().Bool("unread", false, "Only unread notifications")

	rootCmd.AddCommand(notificationsCmd)
}
