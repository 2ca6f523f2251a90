package ux

import (
	"strings"
	"testing"
	"time"

	"github.com/quillforge/quill/internal/api"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1 000"},
		{12500, "12 500"},
		{1234567, "1 234 567"},
		{-45000, "-45 000"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(12500); got != "12 500 FCFA" {
		t.Errorf("FormatMoney(12500) = %q", got)
	}
	if got := FormatMoney(999.6); got != "1 000 FCFA" {
		t.Errorf("FormatMoney(999.6) = %q", got)
	}
	if got := FormatMoney(0); got != "0 FCFA" {
		t.Errorf("FormatMoney(0) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, time.March, 4, 15, 30, 0, 0, time.UTC)
	if got := FormatDate(d); got != "04 Mar 2026" {
		t.Errorf("FormatDate() = %q", got)
	}
	if got := FormatDateTime(d); got != "04 Mar 2026 15:30" {
		t.Errorf("FormatDateTime() = %q", got)
	}
	if got := FormatDate(time.Time{}); got != "-" {
		t.Errorf("FormatDate(zero) = %q", got)
	}
}

func TestAuthorStatusBadge(t *testing.T) {
	for _, status := range []api.AuthorStatus{
		api.AuthorStatusApproved,
		api.AuthorStatusPending,
		api.AuthorStatusRejected,
	} {
		if got := AuthorStatusBadge(status); !strings.Contains(got, string(status)) {
			t.Errorf("AuthorStatusBadge(%s) = %q, missing status text", status, got)
		}
	}
}

func TestTable(t *testing.T) {
	table := NewTable("TITLE", "STATUS").
		AddRow("A Long Book Title", "DRAFT").
		AddRow("Short", "PUBLISHED")

	out := table.String()
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "TITLE") || !strings.Contains(lines[0], "STATUS") {
		t.Errorf("header row missing columns: %q", lines[0])
	}
	if !strings.Contains(lines[1], "A Long Book Title") {
		t.Errorf("first row missing title: %q", lines[1])
	}
	if !strings.Contains(lines[2], "PUBLISHED") {
		t.Errorf("second row missing status: %q", lines[2])
	}
}

func TestTableShortRow(t *testing.T) {
	out := NewTable("A", "B").AddRow("only").String()
	if !strings.Contains(out, "only") {
		t.Errorf("short row dropped: %q", out)
	}
}
