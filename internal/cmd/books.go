package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quillforge/quill/internal/api"
	"github.com/quillforge/quill/internal/ux"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Manage your book catalog",
	Long: `Manage your book catalog: list, create, update, submit for review
and delete books, and upload cover images and book files.

Examples:
  quill books list
  quill books list --status DRAFT
  quill books create --title "My Novel" --description "..." --price 2500
  quill books submit <book-id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your books",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireApproved(cmd.Context()); err != nil {
			return err
		}

		params := api.ListBooksParams{}
		params.Page, _ = cmd.Flags().GetInt("page")
		params.Limit, _ = cmd.Flags().GetInt("limit")
		params.Search, _ = cmd.Flags().GetString("search")
		status, _ := cmd.Flags().GetString("status")
		params.Status = api.BookStatus(status)

		page, err := s.client.MyBooks(cmd.Context(), params)
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
			fmt.Println("No books yet. Create one with 'quill books create'.")
			return nil
		}

		table := ux.NewTable("ID", "TITLE", "STATUS", "PRICE", "SALES")
		for _, book := range page.Items {
			table.AddRow(
				book.ID,
				book.Title,
				ux.BookStatusBadge(book.Status),
				ux.FormatMoney(book.Price),
				ux.FormatNumber(int64(book.TotalSales)),
			)
		}
		fmt.Println(table.String())
		fmt.Println(ux.Muted(fmt.Sprintf("Page %d of %d (%d books)", page.PageNumber, page.TotalPages, page.Total)))
		return nil
	},
}

var booksShowCmd = &cobra.Command{
	Use:   "show <book-id>",
	Short: "Show one book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireApproved(cmd.Context()); err != nil {
			return err
		}

		book, err := s.client.MyBook(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if !textOutput(cmd) {
			formatter, err := formatterFor(cmd)
			if err != nil {
				return err
			}
			return formatter.Format(book)
		}

		fmt.Printf("%s %s\n", ux.Label("Title: "), book.Title)
		fmt.Printf("%s %s\n", ux.Label("Status:"), ux.BookStatusBadge(book.Status))
		fmt.Printf("%s %s\n", ux.Label("Price: "), ux.FormatMoney(book.Price))
		fmt.Printf("%s %s sales, %s revenue\n", ux.Label("Sales: "),
			ux.FormatNumber(int64(book.TotalSales)), ux.FormatMoney(book.TotalRevenue))
		if book.Status == api.BookStatusRejected && book.RejectionReason != "" {
			fmt.Printf("%s %s\n", ux.Label("Rejected:"), book.RejectionReason)
		}
		fmt.Printf("%s %s\n", ux.Label("Created:"), ux.FormatDate(book.CreatedAt))
		return nil
	},
}

var booksCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a draft book",
	Long: `Create a new book in DRAFT status. Add a cover and a book file with
'quill books upload', then send it to review with 'quill books submit'.

Examples:
  quill books create --title "My Novel" --description "A story" --price 2500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireApproved(cmd.Context()); err != nil {
			return err
		}

		data, err := bookDataFromFlags(cmd)
		if err != nil {
			return err
		}
		if data.Title == nil || data.Description == nil || data.Price == nil {
			return fmt.Errorf("--title, --description and --price are required")
		}

		book, err := s.client.CreateBook(cmd.Context(), data)
		if err != nil {
			return err
		}

		fmt.Println(ux.Success(fmt.Sprintf("Created draft %q (%s)", book.Title, book.ID)))
		return nil
	},
}

var booksUpdateCmd = &cobra.Command{
	Use:   "update <book-id>",
	Short: "Update a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireApproved(cmd.Context()); err != nil {
			return err
		}

		data, err := bookDataFromFlags(cmd)
		if err != nil {
			return err
		}

		book, err := s.client.UpdateBook(cmd.Context(), args[0], data)
		if err != nil {
			return err
		}

		fmt.Println(ux.Success(fmt.Sprintf("Updated %q", book.Title)))
		return nil
	},
}

var booksSubmitCmd = &cobra.Command{
	Use:   "submit <book-id>",
	Short: "Submit a book for review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireApproved(cmd.Context()); err != nil {
			return err
		}

		book, err := s.client.SubmitBook(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Println(ux.Success(fmt.Sprintf("Submitted %q for review", book.Title)))
		return nil
	},
}

var booksDeleteCmd = &cobra.Command{
	Use:   "delete <book-id>",
	Short: "Delete a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireApproved(cmd.Context()); err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !ux.Confirm(fmt.Sprintf("Delete book %s?", args[0]), false) {
			fmt.Println("Aborted.")
			return nil
		}

		if err := s.client.DeleteBook(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Println(ux.Success("Book deleted"))
		return nil
	},
}

var booksUploadCmd = &cobra.Command{
	Use:   "upload <book-id>",
	Short: "Upload a cover image or book file",
	Long: `Upload assets for a book and attach them.

Examples:
  quill books upload <book-id> --cover cover.jpg
  quill books upload <book-id> --file manuscript.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireApproved(cmd.Context()); err != nil {
			return err
		}

		coverPath, _ := cmd.Flags().GetString("cover")
		filePath, _ := cmd.Flags().GetString("file")
		if coverPath == "" && filePath == "" {
			return fmt.Errorf("pass --cover and/or --file")
		}

		data := api.BookData{}

		if coverPath != "" {
			f, err := os.Open(coverPath)
			if err != nil {
				return fmt.Errorf("failed to open cover: %w", err)
			}
			url, err := s.client.UploadCover(cmd.Context(), filepath.Base(coverPath), f)
			f.Close()
			if err != nil {
				return err
			}
			data.CoverURL = &url
			fmt.Println(ux.Success("Cover uploaded"))
		}

		if filePath != "" {
			f, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("failed to open book file: %w", err)
			}
			uploaded, err := s.client.UploadBook(cmd.Context(), filepath.Base(filePath), f)
			f.Close()
			if err != nil {
				return err
			}
			data.FileURL = &uploaded.URL
			data.FileSize = &uploaded.Size
			data.FileFormat = &uploaded.Format
			fmt.Println(ux.Success(fmt.Sprintf("Book file uploaded (%s)", uploaded.Format)))
		}

		if _, err := s.client.UpdateBook(cmd.Context(), args[0], data); err != nil {
			return err
		}

		fmt.Println(ux.Success("Book updated with new assets"))
		return nil
	},
}

var booksCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List available book categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		categories, err := s.client.Categories(cmd.Context())
		if err != nil {
			return err
		}

		if !textOutput(cmd) {
			formatter, err := formatterFor(cmd)
			if err != nil {
				return err
			}
			return formatter.Format(categories)
		}

		table := ux.NewTable("ID", "NAME")
		for _, c := range categories {
			table.AddRow(c.ID, c.Name)
		}
		fmt.Println(table.String())
		return nil
	},
}

// bookDataFromFlags collects the writable book fields that were passed
func bookDataFromFlags(cmd *cobra.Command) (api.BookData, error) {
	data := api.BookData{}

	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		data.Title = &v
	}
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		data.Description = &v
	}
	if cmd.Flags().Changed("price") {
		v, _ := cmd.Flags().GetFloat64("price")
		if v < 0 {
			return data, fmt.Errorf("price must not be negative")
		}
		data.Price = &v
	}
	if cmd.Flags().Changed("category") {
		v, _ := cmd.Flags().GetStringSlice("category")
		data.CategoryIDs = v
	}
	if cmd.Flags().Changed("isbn") {
		v, _ := cmd.Flags().GetString("isbn")
		data.ISBN = &v
	}
	if cmd.Flags().Changed("language") {
		v, _ := cmd.Flags().GetString("language")
		data.Language = &v
	}
	if cmd.Flags().Changed("pages") {
		v, _ := cmd.Flags().GetInt("pages")
		data.PageCount = &v
	}

	return data, nil
}

func addBookDataFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Book title")
	cmd.Flags().String("description", "", "Book description")
	cmd.Flags().Float64("price", 0, "Price in FCFA")
	cmd.Flags().StringSlice("category", nil, "Category ID (repeatable)")
	cmd.Flags().String("isbn", "", "ISBN")
	cmd.Flags().String("language", "", "Language code")
	cmd.Flags().Int("pages", 0, "Page count")
}

func init() {
	booksCmd.AddCommand(booksListCmd)
	booksCmd.AddCommand(booksShowCmd)
	booksCmd.AddCommand(booksCreateCmd)
	booksCmd.AddCommand(booksUpdateCmd)
	booksCmd.AddCommand(booksSubmitCmd)
	booksCmd.AddCommand(booksDeleteCmd)
	booksCmd.AddCommand(booksUploadCmd)
	booksCmd.AddCommand(booksCategoriesCmd)

	booksListCmd.Flags().Int("page", 1, "Page number")
	booksListCmd.Flags().Int("limit", 20, "Books per page")
	booksListCmd.Flags().String("status", "", "Filter by status (DRAFT, PENDING, APPROVED, REJECTED, PUBLISHED)")
	booksListCmd.Flags().String("search", "", "Search in titles")

	addBookDataFlags(booksCreateCmd)
	addBookDataFlags(booksUpdateCmd)

	booksDeleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")

	booksUploadCmd.Flags().String("cover", "", "Path to a cover image")
	booksUploadCmd.Flags().String("file", "", "Path to the book file (PDF or EPUB)")

	rootCmd.AddCommand(booksCmd)
}
