package ui

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/vogue/internal/api"
	"github.com/five82/vogue/internal/chat"
	"github.com/five82/vogue/internal/state"
)

type pane int

const (
	paneCatalog pane = iota
	paneCart
	paneChat
	paneAdmin
)

// snapshotMsg carries a store publication into the program.
type snapshotMsg state.Snapshot

// statusMsg replaces the command bar status line.
type statusMsg struct {
	text string
	err  bool
}

func errorStatus(action string, err error) tea.Msg {
	if errors.Is(err, state.ErrSuperseded) {
		return nil
	}
	return statusMsg{text: action + ": " + err.Error(), err: true}
}

// Model is the bubbletea model for the storefront.
type Model struct {
	ctx       context.Context
	store     *state.Store
	responder chat.Responder
	logger    *zap.Logger

	keys  keyMap
	theme Theme

	width  int
	height int

	snapshot     state.Snapshot
	catalogIndex int
	cartIndex    int

	searching bool
	search    textinput.Model
	chatInput textinput.Model
	form      *form

	status    string
	statusErr bool
}

func newModel(ctx context.Context, opts Options) Model {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "name or description"

	chatInput := textinput.New()
	chatInput.Prompt = "> "
	chatInput.Placeholder = "Ask about our products"
	chatInput.CharLimit = 500

	responder := opts.Responder
	if responder == nil {
		responder = chat.Local{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		responder: responder,
		logger:    logger,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.Theme),
		search:    search,
		chatInput: chatInput,
	}
	m.applySnapshot(opts.Store.Snapshot())
	return m
}

// Init starts the initial catalog load.
func (m Model) Init() tea.Cmd {
	return m.loadProducts()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case statusMsg:
		m.status = msg.text
		m.statusErr = msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searching {
			return m.handleSearchKey(msg)
		}
		switch m.activePane() {
		case paneAdmin:
			return m.handleAdminKey(msg)
		case paneChat:
			return m.handleChatKey(msg)
		case paneCart:
			return m.handleCartKey(msg)
		default:
			return m.handleCatalogKey(msg)
		}
	}
	return m, nil
}

// applySnapshot adopts snap unless a newer one has already been seen.
// Publications are delivered asynchronously and may arrive out of order.
func (m *Model) applySnapshot(snap state.Snapshot) {
	if snap.Version < m.snapshot.Version {
		return
	}
	m.snapshot = snap
	m.catalogIndex = clampIndex(m.catalogIndex, len(snap.FilteredProducts))
	m.cartIndex = clampIndex(m.cartIndex, len(snap.Cart))

	if snap.Panels.ChatOpen {
		m.chatInput.Focus()
	} else {
		m.chatInput.Blur()
	}

	switch {
	case !snap.Panels.AdminPanelOpen:
		m.form = nil
	case snap.Session.IsAuthenticated:
		if m.form == nil || m.form.kind != formProduct {
			m.form = newForm(formProduct)
		}
	default:
		if m.form == nil || m.form.kind == formProduct {
			m.form = newForm(formLogin)
		}
	}
}

func (m Model) activePane() pane {
	p := m.snapshot.Panels
	switch {
	case p.AdminPanelOpen:
		return paneAdmin
	case p.ChatOpen:
		return paneChat
	case p.CartOpen:
		return paneCart
	default:
		return paneCatalog
	}
}

func (m Model) selectedProduct() (api.Product, bool) {
	products := m.snapshot.FilteredProducts
	if m.catalogIndex < 0 || m.catalogIndex >= len(products) {
		return api.Product{}, false
	}
	return products[m.catalogIndex], true
}

func (m Model) selectedCartItem() (state.CartItem, bool) {
	cart := m.snapshot.Cart
	if m.cartIndex < 0 || m.cartIndex >= len(cart) {
		return state.CartItem{}, false
	}
	return cart[m.cartIndex], true
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// handleGlobalKey processes keys shared by the non-text panes.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		return m, nil, true
	case key.Matches(msg, m.keys.ToggleCart):
		m.applySnapshot(m.store.ToggleCart())
		return m, nil, true
	case key.Matches(msg, m.keys.ToggleChat):
		m.applySnapshot(m.store.ToggleChat())
		return m, textinput.Blink, true
	case key.Matches(msg, m.keys.ToggleAdmin):
		m.applySnapshot(m.store.ToggleAdminPanel())
		return m, textinput.Blink, true
	}
	return m, nil, false
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.handleGlobalKey(msg); ok {
		return next, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.catalogIndex = clampIndex(m.catalogIndex-1, len(m.snapshot.FilteredProducts))
	case key.Matches(msg, m.keys.Down):
		m.catalogIndex = clampIndex(m.catalogIndex+1, len(m.snapshot.FilteredProducts))
	case key.Matches(msg, m.keys.AddToCart):
		if p, ok := m.selectedProduct(); ok {
			m.applySnapshot(m.store.AddToCart(p, 1))
			m.setStatus(fmt.Sprintf("Added %s to cart", p.Name), false)
		}
	case key.Matches(msg, m.keys.CycleCategory):
		next := nextCategory(m.snapshot.Filter.Category)
		m.applySnapshot(m.store.FilterProducts(state.WithCategory(next)))
	case key.Matches(msg, m.keys.CycleCulture):
		next := nextCulture(state.Cultures(m.snapshot.Products), m.snapshot.Filter.Culture)
		m.applySnapshot(m.store.FilterProducts(state.WithCulture(next)))
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.snapshot.Filter.SearchQuery)
		m.search.CursorEnd()
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.ClearFilters):
		m.applySnapshot(m.store.FilterProducts(state.ClearFilters()))
	case key.Matches(msg, m.keys.Reload):
		m.setStatus("Loading catalog...", false)
		return m, m.loadProducts()
	case key.Matches(msg, m.keys.Delete):
		p, ok := m.selectedProduct()
		if !ok {
			break
		}
		if !m.snapshot.Session.IsAuthenticated {
			m.setStatus("Log in to manage products", true)
			break
		}
		m.applySnapshot(m.store.DeleteProduct(p.ID))
		m.setStatus(fmt.Sprintf("Deleted %s", p.Name), false)
	case key.Matches(msg, m.keys.ToggleFeature):
		p, ok := m.selectedProduct()
		if !ok {
			break
		}
		if !m.snapshot.Session.IsAuthenticated {
			m.setStatus("Log in to manage products", true)
			break
		}
		snap, err := m.store.UpdateProduct(p.ID, state.ProductPatch{"featured": !p.Featured})
		m.applySnapshot(snap)
		if err != nil {
			m.setStatus("Update product: "+err.Error(), true)
		}
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		m.catalogIndex = 0
		m.applySnapshot(m.store.FilterProducts(state.WithSearch(m.search.Value())))
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		m.applySnapshot(m.store.ToggleCart())
		return m, nil
	}
	if next, cmd, ok := m.handleGlobalKey(msg); ok {
		return next, cmd
	}

	item, selected := m.selectedCartItem()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cartIndex = clampIndex(m.cartIndex-1, len(m.snapshot.Cart))
	case key.Matches(msg, m.keys.Down):
		m.cartIndex = clampIndex(m.cartIndex+1, len(m.snapshot.Cart))
	case key.Matches(msg, m.keys.Increase) && selected:
		m.applySnapshot(m.store.UpdateCartItemQuantity(item.Product.ID, item.Quantity+1))
	case key.Matches(msg, m.keys.Decrease) && selected:
		m.applySnapshot(m.store.UpdateCartItemQuantity(item.Product.ID, item.Quantity-1))
	case key.Matches(msg, m.keys.Remove) && selected:
		m.applySnapshot(m.store.RemoveFromCart(item.Product.ID))
	case key.Matches(msg, m.keys.ClearCart):
		m.applySnapshot(m.store.ClearCart())
	case key.Matches(msg, m.keys.Checkout):
		if len(m.snapshot.Cart) == 0 {
			m.setStatus("Cart is empty", true)
			return m, nil
		}
		m.setStatus("Submitting order...", false)
		return m, m.checkout()
	}
	return m, nil
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.applySnapshot(m.store.ToggleChat())
		return m, nil
	case key.Matches(msg, m.keys.ClearChat):
		m.applySnapshot(m.store.ClearChatMessages())
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		text := m.chatInput.Value()
		m.chatInput.Reset()
		return m, m.sendChat(text)
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m Model) handleAdminKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.applySnapshot(m.store.ToggleAdminPanel())
		return m, nil
	case m.form == nil:
		return m, nil
	case key.Matches(msg, m.keys.Logout) && m.snapshot.Session.IsAuthenticated:
		m.applySnapshot(m.store.Logout())
		m.setStatus("Logged out", false)
		return m, nil
	case key.Matches(msg, m.keys.SwitchForm) && m.form.kind != formProduct:
		kind := formSignup
		if m.form.kind == formSignup {
			kind = formLogin
		}
		m.form = newForm(kind)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.NextField):
		m.form.next()
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.form.prev()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitForm()
	}
	return m, m.form.update(msg)
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.form.kind {
	case formLogin:
		m.setStatus("Logging in...", false)
		return m, m.login(m.form.credentials())
	case formSignup:
		data, err := m.form.signupData()
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.setStatus("Creating account...", false)
		return m, m.signup(data)
	default:
		draft, err := m.form.productDraft()
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.form = newForm(formProduct)
		m.setStatus("Creating product...", false)
		return m, m.addProduct(draft)
	}
}

// --- Commands ---

func (m Model) loadProducts() tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		snap, err := store.LoadProducts(ctx)
		if err != nil {
			return errorStatus("Load products", err)
		}
		return statusMsg{text: fmt.Sprintf("Loaded %d products", len(snap.Products))}
	}
}

func (m Model) login(creds api.Credentials) tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		return authStatus(store.Login(ctx, creds), "Logged in")
	}
}

func (m Model) signup(data api.SignupData) tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		return authStatus(store.Signup(ctx, data), "Account created")
	}
}

func authStatus(res state.AuthResult, okText string) tea.Msg {
	switch {
	case errors.Is(res.Err, state.ErrSuperseded):
		return nil
	case !res.OK:
		return statusMsg{text: res.Message, err: true}
	}
	return statusMsg{text: okText}
}

func (m Model) addProduct(draft api.ProductDraft) tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		p, err := store.AddProduct(ctx, draft)
		if err != nil {
			return errorStatus("Add product", err)
		}
		return statusMsg{text: fmt.Sprintf("Created %s", p.Name)}
	}
}

func (m Model) checkout() tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		receipt, err := store.Checkout(ctx)
		if err != nil {
			return errorStatus("Checkout", err)
		}
		text := "Order placed"
		if receipt.ID != "" {
			text += " (" + receipt.ID + ")"
		}
		return statusMsg{text: text}
	}
}

func (m Model) sendChat(text string) tea.Cmd {
	store, ctx, responder, logger := m.store, m.ctx, m.responder, m.logger
	return func() tea.Msg {
		if _, err := chat.Converse(ctx, store, responder, text); err != nil {
			if errors.Is(err, chat.ErrEmptyMessage) {
				return nil
			}
			logger.Warn("chat reply failed", zap.Error(err))
			return errorStatus("Chat", err)
		}
		return nil
	}
}

// --- Helpers ---

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// nextCategory cycles all → each category → all.
func nextCategory(current api.Category) api.Category {
	cats := api.Categories()
	i := slices.Index(cats, current)
	if i+1 >= len(cats) {
		return ""
	}
	return cats[i+1]
}

// nextCulture cycles all → each culture → all.
func nextCulture(cultures []string, current string) string {
	if len(cultures) == 0 {
		return ""
	}
	i := slices.Index(cultures, current)
	if i+1 >= len(cultures) {
		return ""
	}
	return cultures[i+1]
}
