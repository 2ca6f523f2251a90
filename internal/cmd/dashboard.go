package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/quillforge/quill/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive author dashboard",
	Long: `Open the interactive dashboard with your stats, recent books and
notifications.

The dashboard follows your session: if you are not logged in, have not
applied, or your application is still under review, it shows the
matching screen instead.

Keys:
  r  refresh
  l  log out
  q  quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !tui.IsInteractive() {
			return fmt.Errorf("the dashboard needs an interactive terminal")
		}

		s, err := newShell()
		if err != nil {
			return err
		}

		model := tui.NewModel(s.store, s.client)
		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

		_, err = program.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
