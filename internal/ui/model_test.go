package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/five82/vogue/internal/api"
	"github.com/five82/vogue/internal/state"
)

func newTestModel(t *testing.T) (Model, *state.Store) {
	t.Helper()
	store, err := state.New(state.Options{Logger: zap.NewNop()})
	if err != nil {
		t.Fatalf("state.New returned error: %v", err)
	}
	store.SetProducts([]api.Product{
		{ID: "a", Name: "Talking Drum", Category: api.CategoryMusic, Culture: "Yoruba", Price: decimal.NewFromInt(40), Featured: true},
		{ID: "b", Name: "Kente Shirt", Category: api.CategoryClothing, Culture: "Ashanti", Price: decimal.RequireFromString("25.50")},
		{ID: "c", Name: "Beaded Necklace", Category: api.CategoryAccessories, Culture: "Maasai", Price: decimal.NewFromInt(15)},
	})
	m := newModel(context.Background(), Options{Store: store, Theme: "Slate"})
	m.width, m.height = 120, 30
	return m, store
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typed(s string) []tea.KeyMsg {
	var out []tea.KeyMsg
	for _, r := range s {
		out = append(out, runes(string(r)))
	}
	return out
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestModel_AddSelectedProductToCart(t *testing.T) {
	m, store := newTestModel(t)

	m, _ = press(t, m, runes("j"), enter, enter)
	cart := store.Snapshot().Cart
	if len(cart) != 1 || cart[0].Product.ID != "b" || cart[0].Quantity != 2 {
		t.Fatalf("cart = %#v, want b x2", cart)
	}
	if m.snapshot.CartCount() != 2 {
		t.Fatalf("model cart count = %d, want 2", m.snapshot.CartCount())
	}
	if !strings.Contains(m.status, "Kente Shirt") {
		t.Fatalf("status = %q, want product name", m.status)
	}
}

func TestModel_CategoryCycleAndClear(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, runes("f"))
	if m.snapshot.Filter.Category != api.CategoryClothing {
		t.Fatalf("category = %q, want clothing", m.snapshot.Filter.Category)
	}
	if len(m.snapshot.FilteredProducts) != 1 || m.snapshot.FilteredProducts[0].ID != "b" {
		t.Fatalf("filtered = %#v, want only b", m.snapshot.FilteredProducts)
	}

	m, _ = press(t, m, runes("x"))
	if m.snapshot.Filter.Active() || len(m.snapshot.FilteredProducts) != 3 {
		t.Fatalf("after clear filter = %#v, %d products", m.snapshot.Filter, len(m.snapshot.FilteredProducts))
	}
}

func TestModel_SearchAppliesOnEnter(t *testing.T) {
	m, _ := newTestModel(t)
	if m.search.Placeholder != "name or description" {
		t.Fatalf("search placeholder = %q, want the fields the query matches", m.search.Placeholder)
	}

	m, _ = press(t, m, runes("/"))
	if !m.searching {
		t.Fatalf("searching = false after /")
	}
	m, _ = press(t, m, typed("drum")...)
	m, _ = press(t, m, enter)

	if m.searching {
		t.Fatalf("searching still true after enter")
	}
	if m.snapshot.Filter.SearchQuery != "drum" {
		t.Fatalf("SearchQuery = %q, want drum", m.snapshot.Filter.SearchQuery)
	}
	if len(m.snapshot.FilteredProducts) != 1 || m.snapshot.FilteredProducts[0].ID != "a" {
		t.Fatalf("filtered = %#v, want only a", m.snapshot.FilteredProducts)
	}
}

func TestModel_IgnoresStaleSnapshots(t *testing.T) {
	m, store := newTestModel(t)
	stale := store.Snapshot()

	m, _ = press(t, m, enter)
	if m.snapshot.Version <= stale.Version {
		t.Fatalf("version did not advance")
	}

	next, _ := m.Update(snapshotMsg(stale))
	m = next.(Model)
	if len(m.snapshot.Cart) != 1 {
		t.Fatalf("stale snapshot replaced newer state: cart = %#v", m.snapshot.Cart)
	}
}

func TestModel_CartPaneAdjustsQuantities(t *testing.T) {
	m, store := newTestModel(t)

	m, _ = press(t, m, enter, runes("c"))
	if m.activePane() != paneCart {
		t.Fatalf("active pane = %v, want cart", m.activePane())
	}
	m, _ = press(t, m, runes("+"), runes("+"))
	if got := store.Snapshot().Cart[0].Quantity; got != 3 {
		t.Fatalf("quantity = %d, want 3", got)
	}
	m, _ = press(t, m, runes("x"))
	if len(store.Snapshot().Cart) != 0 {
		t.Fatalf("cart not emptied by remove")
	}

	m, cmd := press(t, m, enter)
	if cmd != nil || !m.statusErr || m.status != "Cart is empty" {
		t.Fatalf("checkout on empty cart: status %q err %v cmd %v", m.status, m.statusErr, cmd != nil)
	}

	m, _ = press(t, m, esc)
	if m.activePane() != paneCatalog || store.Snapshot().Panels.CartOpen {
		t.Fatalf("esc did not close the cart")
	}
}

func TestModel_CheckoutWithoutBackendReportsError(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, enter, runes("c"))
	_, cmd := press(t, m, enter)
	if cmd == nil {
		t.Fatalf("checkout returned no command")
	}
	msg, ok := cmd().(statusMsg)
	if !ok || !msg.err || !strings.Contains(msg.text, "Checkout") {
		t.Fatalf("checkout msg = %#v, want error status", msg)
	}
}

func TestModel_AdminFormsFollowSession(t *testing.T) {
	m, store := newTestModel(t)

	m, _ = press(t, m, runes("a"))
	if m.activePane() != paneAdmin || m.form == nil || m.form.kind != formLogin {
		t.Fatalf("admin pane = %v form = %#v, want login form", m.activePane(), m.form)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.form.kind != formSignup {
		t.Fatalf("form kind = %v, want signup", m.form.kind)
	}

	// Typing q in a form must not quit.
	m, _ = press(t, m, runes("q"))
	if m.activePane() != paneAdmin || m.form.fields[0].input.Value() != "q" {
		t.Fatalf("first field = %q, want q", m.form.fields[0].input.Value())
	}

	m, _ = press(t, m, esc)
	if m.form != nil || store.Snapshot().Panels.AdminPanelOpen {
		t.Fatalf("esc did not close the admin panel")
	}
}

func TestModel_AdminActionsNeedSession(t *testing.T) {
	m, store := newTestModel(t)

	m, _ = press(t, m, runes("D"))
	if !m.statusErr || len(store.Snapshot().Products) != 3 {
		t.Fatalf("delete without session: status %q, %d products", m.status, len(store.Snapshot().Products))
	}

	m, _ = press(t, m, runes("F"))
	if p, _ := store.Snapshot().Product("a"); !p.Featured {
		t.Fatalf("feature toggle applied without session")
	}
}

func TestModel_ChatRoundTrip(t *testing.T) {
	m, store := newTestModel(t)

	m, _ = press(t, m, runes("m"))
	if m.activePane() != paneChat {
		t.Fatalf("active pane = %v, want chat", m.activePane())
	}
	m, _ = press(t, m, typed("music")...)
	m, cmd := press(t, m, enter)
	if cmd == nil {
		t.Fatalf("enter returned no command")
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("chat cmd msg = %#v, want nil", msg)
	}

	chat := store.Snapshot().Chat
	if len(chat) != 2 || chat[0].Text != "music" || chat[1].Sender != state.SenderBot {
		t.Fatalf("chat = %#v, want user then bot", chat)
	}
	if len(chat[1].Products) != 1 || chat[1].Products[0].ID != "a" {
		t.Fatalf("bot suggestions = %#v, want a", chat[1].Products)
	}
	if m.chatInput.Value() != "" {
		t.Fatalf("chat input not reset: %q", m.chatInput.Value())
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if len(m.snapshot.Chat) != 0 {
		t.Fatalf("ctrl+l did not clear chat")
	}
}

func TestModel_ViewRendersCatalog(t *testing.T) {
	m, _ := newTestModel(t)

	out := m.View()
	for _, want := range []string{"vogue", "Talking Drum", "3 products", "guest"} {
		if !strings.Contains(out, want) {
			t.Fatalf("View missing %q", want)
		}
	}

	m, _ = press(t, m, enter, runes("c"))
	if out := m.View(); !strings.Contains(out, "Total $40.00") {
		t.Fatalf("cart view missing total")
	}
}
