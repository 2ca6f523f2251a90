package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillforge/quill/internal/api"
	"github.com/quillforge/quill/internal/tui"
	"github.com/quillforge/quill/internal/ux"
)

var earningsCmd = &cobra.Command{
	Use:   "earnings",
	Short: "Show your balance and transactions",
	Long: `Show your current balance and the transaction ledger, and request
payouts to MTN Mobile Money or Orange Money.

Examples:
  quill earnings
  quill earnings withdraw --amount 10000 --method mtn --phone 670000000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireApproved(cmd.Context()); err != nil {
			return err
		}

		earnings, err := s.client.MyEarnings(cmd.Context())
		if err != nil {
			return err
		}

		if !textOutput(cmd) {
			formatter, err := formatterFor(cmd)
			if err != nil {
				return err
			}
			return formatter.Format(earnings)
		}

		fmt.Printf("%s %s\n\n", ux.Label("Balance:"), ux.FormatMoney(earnings.Balance))

		if len(earnings.Transactions) == 0 {
			fmt.Println(ux.Muted("No transactions yet."))
			return nil
		}

		table := ux.NewTable("DATE", "TYPE", "AMOUNT", "BOOK")
		for _, tx := range earnings.Transactions {
			title := ""
			if tx.Book != nil {
				title = tx.Book.Title
			}
			table.AddRow(
				ux.FormatDate(tx.CreatedAt),
				string(tx.Type),
				ux.FormatMoney(tx.Amount),
				title,
			)
		}
		fmt.Println(table.String())
		return nil
	},
}

var earningsWithdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Request a payout",
	Long: `Request a payout from your balance to a mobile money account.

Examples:
  quill earnings withdraw --amount 10000 --method mtn --phone 670000000
  quill earnings withdraw --amount 5000 --method om --phone 690000000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireApproved(cmd.Context()); err != nil {
			return err
		}

		amount, _ := cmd.Flags().GetFloat64("amount")
		method, _ := cmd.Flags().GetString("method")
		phone, _ := cmd.Flags().GetString("phone")

		if amount <= 0 {
			return fmt.Errorf("--amount must be positive")
		}

		if method == "" && tui.IsInteractive() {
			method, err = tui.PromptForSelect("Payout method", []string{"mtn", "om"})
			if err != nil {
				return err
			}
		}
		method = strings.ToLower(method)
		if method != "mtn" && method != "om" {
			return fmt.Errorf("--method must be mtn or om")
		}

		if phone == "" {
			if !tui.IsInteractive() {
				return fmt.Errorf("--phone is required when stdin is not a terminal")
			}
			phone = ux.PromptForString("Mobile money number", "")
			if phone == "" {
				return fmt.Errorf("--phone is required")
			}
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !ux.Confirm(fmt.Sprintf("Withdraw %s to %s (%s)?", ux.FormatMoney(amount), phone, strings.ToUpper(method)), false) {
			fmt.Println("Aborted.")
			return nil
		}

		withdrawal, err := s.client.RequestWithdrawal(cmd.Context(), api.WithdrawalRequest{
			Amount:      amount,
			Method:      method,
			PhoneNumber: phone,
		})
		if err != nil {
			return err
		}

		fmt.Println(ux.Success(fmt.Sprintf("Withdrawal requested (%s)", withdrawal.ID)))
		fmt.Printf("Status: %s\n", ux.WithdrawalStatusBadge(withdrawal.Status))
		return nil
	},
}

func init() {
	earningsCmd.AddCommand(earningsWithdrawCmd)

	earningsWithdrawCmd.Flags().Float64("amount", 0, "Amount in FCFA")
	earningsWithdrawCmd.Flags().String("method", "", "Payout method (mtn or om)")
	earningsWithdrawCmd.Flags().String("phone", "", "Mobile money number")
	earningsWithdrawCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")

	rootCmd.AddCommand(earningsCmd)
}
