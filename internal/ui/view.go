package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/vogue/internal/state"
)

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	header := m.renderHeader()
	bar := m.renderCommandBar()
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(bar), 3)
	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderBody(bodyHeight), bar)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	parts := []string{
		styles.Logo.Render("vogue"),
		styles.MutedText.Render(fmt.Sprintf("%d products", len(snap.Products))),
		styles.MutedText.Render(fmt.Sprintf("%d featured", len(snap.FeaturedProducts))),
		styles.AccentText.Render(fmt.Sprintf("cart %d · %s", snap.CartCount(), formatPrice(snap.CartTotal()))),
		styles.Text.Render(sessionLabel(snap)),
	}
	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderBody(height int) string {
	active := m.activePane()
	if active == paneCatalog {
		return m.renderCatalog(m.width, height, true)
	}

	left := m.width * 3 / 5
	right := m.width - left
	var side string
	switch active {
	case paneCart:
		side = m.renderCart(right, height)
	case paneChat:
		side = m.renderChat(right, height)
	case paneAdmin:
		side = m.renderAdmin(right, height)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderCatalog(left, height, false), side)
}

// renderPane draws a titled, bordered box of the given outer size.
func (m Model) renderPane(title, content string, width, height int, focused bool) string {
	styles := m.theme.Styles()
	box := styles.Pane
	if focused {
		box = styles.PaneFocus
	}
	inner := max(width-4, 1)
	body := styles.AccentText.Bold(true).Render(truncate(title, inner)) + "\n" + content
	return box.Width(width - 2).Height(max(height-2, 1)).MaxHeight(height).Render(body)
}

func (m Model) renderCatalog(width, height int, focused bool) string {
	styles := m.theme.Styles()
	products := m.snapshot.FilteredProducts
	inner := max(width-4, 10)

	rows := height - 3
	if m.searching {
		rows--
	}

	var b strings.Builder
	if len(products) == 0 {
		b.WriteString(styles.FaintText.Render("No products match."))
	}
	start := scrollWindow(m.catalogIndex, len(products), rows)
	for i := start; i < len(products) && i < start+rows; i++ {
		p := products[i]
		star := "  "
		if p.Featured {
			star = styles.WarningText.Render("★ ")
		}
		price := formatPrice(p.Price)
		badge := styles.CategoryStyle(p.Category).Render(categoryLabel(p.Category))
		nameWidth := max(inner-lipgloss.Width(badge)-len(price)-len(p.Culture)-8, 4)
		line := fmt.Sprintf("%s%-*s %s %s %s",
			star, nameWidth, truncate(p.Name, nameWidth), badge,
			styles.MutedText.Render(p.Culture), styles.Text.Render(price))
		if i == m.catalogIndex && focused {
			line = styles.Selected.Render(line)
		}
		b.WriteString(line)
		if i < len(products)-1 {
			b.WriteString("\n")
		}
	}
	if m.searching {
		b.WriteString("\n" + m.search.View())
	}

	title := fmt.Sprintf("Catalog · %s (%d)", filterSummary(m.snapshot.Filter), len(products))
	return m.renderPane(title, b.String(), width, height, focused)
}

func (m Model) renderCart(width, height int) string {
	styles := m.theme.Styles()
	inner := max(width-4, 10)
	snap := m.snapshot

	var b strings.Builder
	if len(snap.Cart) == 0 {
		b.WriteString(styles.FaintText.Render("Your cart is empty."))
	}
	rows := height - 5
	start := scrollWindow(m.cartIndex, len(snap.Cart), rows)
	for i := start; i < len(snap.Cart) && i < start+rows; i++ {
		item := snap.Cart[i]
		sub := formatPrice(item.Subtotal())
		qty := fmt.Sprintf("×%d", item.Quantity)
		nameWidth := max(inner-len(sub)-len(qty)-2, 4)
		line := fmt.Sprintf("%-*s %s %s", nameWidth, truncate(item.Product.Name, nameWidth), qty, sub)
		if i == m.cartIndex {
			line = styles.Selected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + styles.SuccessText.Render(fmt.Sprintf("Total %s", formatPrice(snap.CartTotal()))))

	return m.renderPane(fmt.Sprintf("Cart (%d)", snap.CartCount()), b.String(), width, height, true)
}

func (m Model) renderChat(width, height int) string {
	styles := m.theme.Styles()
	inner := max(width-4, 10)

	var lines []string
	for _, msg := range m.snapshot.Chat {
		who := styles.AccentText.Render("you")
		if msg.Sender == state.SenderBot {
			who = styles.SuccessText.Render("bot")
		}
		lines = append(lines, who+" "+styles.FaintText.Render(msg.Timestamp.Format("15:04")))
		lines = append(lines, wrap(msg.Text, inner)...)
		for _, p := range msg.Products {
			lines = append(lines, styles.MutedText.Render("  • "+truncate(p.Name, inner-14)+" "+formatPrice(p.Price)))
		}
	}
	rows := max(height-5, 1)
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	if len(lines) == 0 {
		lines = []string{styles.FaintText.Render("Ask about music, clothing or accessories.")}
	}

	content := strings.Join(lines, "\n") + "\n\n" + m.chatInput.View()
	return m.renderPane("Chat", content, width, height, true)
}

func (m Model) renderAdmin(width, height int) string {
	styles := m.theme.Styles()
	if m.form == nil {
		return m.renderPane("Admin", "", width, height, true)
	}

	var b strings.Builder
	if m.snapshot.Session.IsAuthenticated {
		b.WriteString(styles.MutedText.Render("Signed in as "+sessionLabel(m.snapshot)) + "\n\n")
	}
	for i, field := range m.form.fields {
		label := styles.MutedText.Render(field.label)
		if i == m.form.focus {
			label = styles.AccentText.Render(field.label)
		}
		b.WriteString(label + "\n" + field.input.View() + "\n")
	}
	return m.renderPane(m.form.kind.title(), b.String(), width, height, true)
}

// renderCommandBar renders key hints for the active pane plus the status line.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	type cmd struct{ key, desc string }
	var commands []cmd
	switch {
	case m.searching:
		commands = []cmd{{"enter", "Apply"}, {"esc", "Cancel"}}
	case m.activePane() == paneCart:
		commands = []cmd{{"+/-", "Qty"}, {"x", "Remove"}, {"X", "Empty"}, {"enter", "Checkout"}, {"esc", "Close"}}
	case m.activePane() == paneChat:
		commands = []cmd{{"enter", "Send"}, {"ctrl+l", "Clear"}, {"esc", "Close"}}
	case m.activePane() == paneAdmin && m.snapshot.Session.IsAuthenticated:
		commands = []cmd{{"tab", "Field"}, {"enter", "Create"}, {"ctrl+o", "Logout"}, {"esc", "Close"}}
	case m.activePane() == paneAdmin:
		commands = []cmd{{"tab", "Field"}, {"enter", "Submit"}, {"ctrl+s", "Login/Signup"}, {"esc", "Close"}}
	default:
		commands = []cmd{
			{"enter", "Add"},
			{"f", categoryLabel(m.snapshot.Filter.Category)},
			{"u", "Culture"},
			{"/", "Search"},
			{"x", "Clear"},
			{"c", "Cart"},
			{"m", "Chat"},
			{"a", "Admin"},
			{"q", "Quit"},
		}
		if m.snapshot.Session.IsAuthenticated {
			commands = append(commands, cmd{"F", "Feature"}, cmd{"D", "Delete"})
		}
	}

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments, styles.AccentText.Render(c.key)+":"+styles.MutedText.Render(c.desc))
	}
	segments = append(segments, styles.AccentText.Render("T")+":"+styles.FaintText.Render(m.theme.Name))
	if m.status != "" {
		status := styles.SuccessText
		if m.statusErr {
			status = styles.DangerText
		}
		segments = append(segments, status.Render(m.status))
	}
	return styles.Footer.Width(m.width).Render(strings.Join(segments, "  "))
}

// wrap breaks text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := ""
	for _, w := range words {
		w = truncate(w, width)
		switch {
		case line == "":
			line = w
		case len([]rune(line))+1+len([]rune(w)) <= width:
			line += " " + w
		default:
			lines = append(lines, line)
			line = w
		}
	}
	return append(lines, line)
}
