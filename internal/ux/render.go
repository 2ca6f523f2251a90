package ux

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/quillforge/quill/internal/api"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Title renders a section heading
func Title(s string) string {
	return titleStyle.Render(s)
}

// Label renders a field label
func Label(s string) string {
	return labelStyle.Render(s)
}

// Success renders a success line
func Success(s string) string {
	return successStyle.Render("✓ " + s)
}

// Warn renders a warning line
func Warn(s string) string {
	return warnStyle.Render("! " + s)
}

// Error renders an error line
func Error(s string) string {
	return errorStyle.Render("✗ " + s)
}

// Muted renders de-emphasized text
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// AuthorStatusBadge renders an author application status with its color
func AuthorStatusBadge(status api.AuthorStatus) string {
	switch status {
	case api.AuthorStatusApproved:
		return successStyle.Render(string(status))
	case api.AuthorStatusPending:
		return warnStyle.Render(string(status))
	case api.AuthorStatusRejected:
		return errorStyle.Render(string(status))
	default:
		return string(status)
	}
}

// BookStatusBadge renders a book status with its color
func BookStatusBadge(status api.BookStatus) string {
	switch status {
	case api.BookStatusPublished, api.BookStatusApproved:
		return successStyle.Render(string(status))
	case api.BookStatusPending:
		return warnStyle.Render(string(status))
	case api.BookStatusRejected:
		return errorStyle.Render(string(status))
	default:
		return mutedStyle.Render(string(status))
	}
}

// WithdrawalStatusBadge renders a withdrawal status with its color
func WithdrawalStatusBadge(status api.WithdrawalStatus) string {
	switch status {
	case api.WithdrawalCompleted, api.WithdrawalApproved:
		return successStyle.Render(string(status))
	case api.WithdrawalPending:
		return warnStyle.Render(string(status))
	case api.WithdrawalRejected:
		return errorStyle.Render(string(status))
	default:
		return string(status)
	}
}

// FormatMoney renders a CFA franc amount with thousands grouping.
// Amounts are whole francs; fractions are rounded.
func FormatMoney(amount float64) string {
	return FormatNumber(int64(math.Round(amount))) + " FCFA"
}

// FormatNumber renders an integer with space-grouped thousands
func FormatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	out := strings.Join(groups, " ")
	if neg {
		out = "-" + out
	}
	return out
}

// FormatDate renders a date as "02 Jan 2006"
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

// FormatDateTime renders a timestamp as "02 Jan 2006 15:04"
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006 15:04")
}

// Table renders rows under a bold header. Column widths follow the
// widest cell; styled cells keep their colors because width is measured
// with lipgloss.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a row; missing cells render empty
func (t *Table) AddRow(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// String renders the table
func (t *Table) String() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range t.headers {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(headerStyle.Render(h))
		b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(h)))
	}
	b.WriteString("\n")

	for _, row := range t.rows {
		for i := range t.headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
