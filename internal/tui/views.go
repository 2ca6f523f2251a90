package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quillforge/quill/internal/api"
	"github.com/quillforge/quill/internal/ux"
)

func (m Model) renderValidating() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("📚 QuillForge"))
	b.WriteString("\n\n")
	b.WriteString(m.spinner.View())
	b.WriteString(" Checking your session...")
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderLoginRequired() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("📚 QuillForge"))
	b.WriteString("\n\n")
	b.WriteString("You are not logged in.\n\n")
	b.WriteString(m.styles.Muted.Render("Run ") +
		m.styles.Key.Render("quill auth login") +
		m.styles.Muted.Render(" to sign in, then start the dashboard again."))
	b.WriteString("\n")
	b.WriteString(m.renderHelpLine("q quit"))
	return b.String()
}

func (m Model) renderApplyRequired() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("📚 QuillForge"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Welcome, %s.\n\n", m.snap.Identity.FullName()))
	b.WriteString("You have not applied to publish on QuillForge yet.\n\n")
	b.WriteString(m.styles.Muted.Render("Run ") +
		m.styles.Key.Render("quill apply") +
		m.styles.Muted.Render(" to submit your author application."))
	b.WriteString("\n")
	b.WriteString(m.renderHelpLine("l logout", "q quit"))
	return b.String()
}

func (m Model) renderPending() string {
	profile := m.snap.AuthorProfile

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("📚 QuillForge"))
	b.WriteString("\n\n")

	var status string
	if profile.Status == api.AuthorStatusRejected {
		status = m.styles.Error.Render("Your author application was rejected.")
	} else {
		status = m.styles.Warning.Render("Your author application is under review.")
	}

	box := m.styles.Border.Render(
		status + "\n\n" +
			m.styles.Muted.Render("Pen name: ") + profile.PenName + "\n" +
			m.styles.Muted.Render("Applied:  ") + ux.FormatDate(profile.CreatedAt),
	)
	b.WriteString(box)
	b.WriteString("\n")
	b.WriteString(m.renderHelpLine("r re-check status", "l logout", "q quit"))
	return b.String()
}

func (m Model) renderDashboard() string {
	var b strings.Builder

	title := m.styles.Title.Render("📚 QuillForge")
	pen := m.styles.Subtitle.Render(m.snap.AuthorProfile.PenName)
	b.WriteString(title + "  " + pen)
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading your dashboard...\n")
		b.WriteString(m.renderHelpLine("q quit"))
		return b.String()
	}

	if m.stats != nil {
		b.WriteString(m.renderStatsCards())
		b.WriteString("\n\n")
	}

	if len(m.books) > 0 {
		b.WriteString(m.styles.Status.Render("Recent books"))
		b.WriteString("\n")
		table := ux.NewTable("TITLE", "STATUS", "SALES", "REVENUE")
		for _, book := range m.books {
			table.AddRow(
				truncate(book.Title, 32),
				ux.BookStatusBadge(book.Status),
				ux.FormatNumber(int64(book.TotalSales)),
				ux.FormatMoney(book.TotalRevenue),
			)
		}
		b.WriteString(table.String())
		b.WriteString("\n\n")
	}

	if len(m.notifications) > 0 {
		header := "Notifications"
		if m.unread > 0 {
			header = fmt.Sprintf("Notifications (%d unread)", m.unread)
		}
		b.WriteString(m.styles.Status.Render(header))
		b.WriteString("\n")
		for _, n := range m.notifications {
			marker := "  "
			if !n.Read {
				marker = m.styles.Warning.Render("● ")
			}
			b.WriteString(marker + n.Title + "  " +
				m.styles.Muted.Render(ux.FormatDate(n.CreatedAt)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.lastError != "" {
		b.WriteString(m.styles.Error.Render("✗ " + m.lastError))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelpLine("r refresh", "l logout", "q quit"))
	return b.String()
}

func (m Model) renderStatsCards() string {
	cards := []string{
		m.statsCard("Books", ux.FormatNumber(int64(m.stats.TotalBooks))),
		m.statsCard("Sales", ux.FormatNumber(int64(m.stats.TotalSales))),
		m.statsCard("Revenue", ux.FormatMoney(m.stats.TotalRevenue)),
		m.statsCard("This month", ux.FormatMoney(m.stats.MonthlyRevenue)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) statsCard(label, value string) string {
	return m.styles.Card.Render(
		m.styles.Muted.Render(label) + "\n" + m.styles.Status.Render(value),
	)
}

func (m Model) renderHelpLine(keys ...string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		key, desc, ok := strings.Cut(k, " ")
		if ok {
			parts[i] = m.styles.Key.Render(key) + " " + m.styles.Muted.Render(desc)
		} else {
			parts[i] = m.styles.Key.Render(k)
		}
	}
	return m.styles.Help.Render(strings.Join(parts, "  ·  "))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
