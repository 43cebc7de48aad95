// Package ui provides the terminal storefront for Vogue.
//
// # Architecture Overview
//
// The UI is a bubbletea program styled with lipgloss. It never owns shop
// state: every user action is a call on *state.Store, and the rendered
// Snapshot comes either from that call's return value or from the store's
// subscriber, which forwards each publication as a snapshotMsg. Publications
// are sent from goroutines and can arrive out of order, so the model keeps the
// snapshot with the highest Version.
//
// Network actions (catalog load, login, signup, product creation, checkout and
// chat replies) run as tea.Cmds. Their results come back as status lines; the
// state change itself arrives through the store.
//
// # Package Structure
//
//   - ui.go: Run and the store subscription
//   - model.go: Model, message routing, key handling and commands
//   - view.go: header, panes and command bar rendering
//   - form.go: login, signup and product forms built from bubbles/textinput
//   - keys.go: key bindings
//   - theme.go: color themes and lipgloss styles
//   - format.go: price, label and truncation helpers
//
// # Panes
//
// The catalog is always visible. The cart, chat and admin panels open beside
// it and follow Snapshot.Panels, so toggling a panel is a store action. When
// several are open the admin panel takes focus first, then chat, then cart.
//
// # Key Bindings
//
// Catalog:
//
//   - j/k: Move selection
//   - enter: Add the selected product to the cart
//   - f: Cycle category filter
//   - u: Cycle culture filter
//   - /: Search name and description
//   - x: Clear filters
//   - r: Reload the catalog
//   - F / D: Toggle featured / delete (signed in only)
//   - c / m / a: Cart, chat and admin panels
//   - T: Cycle theme
//   - q, ctrl+c: Quit
//
// Cart: +/- change quantity, x removes a line, X empties the cart and enter
// checks out. Chat: enter sends, ctrl+l clears the transcript. Admin: tab
// moves between fields, enter submits, ctrl+s switches between login and
// signup, ctrl+o logs out. Esc closes the focused panel.
package ui
