package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/five82/vogue/internal/api"
	"github.com/five82/vogue/internal/state"
)

var titleCaser = cases.Title(language.English)

func formatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func categoryLabel(c api.Category) string {
	if c == "" {
		return "All"
	}
	return titleCaser.String(string(c))
}

// filterSummary describes the active filter, or "All products".
func filterSummary(f state.ProductFilter) string {
	if !f.Active() {
		return "All products"
	}
	var parts []string
	if f.Category != "" {
		parts = append(parts, categoryLabel(f.Category))
	}
	if f.Culture != "" {
		parts = append(parts, f.Culture)
	}
	if f.SearchQuery != "" {
		parts = append(parts, "\""+f.SearchQuery+"\"")
	}
	return strings.Join(parts, " · ")
}

// truncate shortens s to max runes, ending in an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if max == 1 {
		return string(runes[:1])
	}
	return string(runes[:max-1]) + "…"
}

// scrollWindow returns the first row to show so that cursor stays visible.
func scrollWindow(cursor, total, rows int) int {
	if rows <= 0 || total <= rows || cursor < rows {
		return 0
	}
	start := cursor - rows + 1
	if start > total-rows {
		start = total - rows
	}
	return start
}

func sessionLabel(s state.Snapshot) string {
	if !s.Session.IsAuthenticated {
		return "guest"
	}
	if s.Session.UserRole != "" {
		return s.Session.UserRole
	}
	return "signed in"
}
