package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the storefront.
type keyMap struct {
	// Global
	Quit       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Panels
	ToggleCart  key.Binding
	ToggleChat  key.Binding
	ToggleAdmin key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding

	// Catalog
	AddToCart     key.Binding
	CycleCategory key.Binding
	CycleCulture  key.Binding
	Search        key.Binding
	ClearFilters  key.Binding
	Reload        key.Binding
	Delete        key.Binding
	ToggleFeature key.Binding

	// Cart
	Increase  key.Binding
	Decrease  key.Binding
	Remove    key.Binding
	ClearCart key.Binding
	Checkout  key.Binding

	// Forms
	Submit     key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	SwitchForm key.Binding
	Logout     key.Binding
	ClearChat  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),

		ToggleCart: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Cart"),
		),
		ToggleChat: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Chat"),
		),
		ToggleAdmin: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Admin"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Down"),
		),

		AddToCart: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Add to cart"),
		),
		CycleCategory: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Category"),
		),
		CycleCulture: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Culture"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Clear filters"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
		Delete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Delete"),
		),
		ToggleFeature: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Feature"),
		),

		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "More"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Less"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Remove"),
		),
		ClearCart: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Empty"),
		),
		Checkout: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Checkout"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Submit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Prev field"),
		),
		SwitchForm: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Login/Signup"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "Logout"),
		),
		ClearChat: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Clear"),
		),
	}
}
