package state

// ToggleCart opens or closes the cart panel.
func (s *Store) ToggleCart() Snapshot {
	return s.dispatch("toggleCart", func(prev Snapshot) Snapshot {
		next := prev
		next.Panels.CartOpen = !prev.Panels.CartOpen
		return next
	})
}

// ToggleChat opens or closes the chat panel.
func (s *Store) ToggleChat() Snapshot {
	return s.dispatch("toggleChat", func(prev Snapshot) Snapshot {
		next := prev
		next.Panels.ChatOpen = !prev.Panels.ChatOpen
		return next
	})
}

// ToggleAdminPanel opens or closes the admin panel.
func (s *Store) ToggleAdminPanel() Snapshot {
	return s.dispatch("toggleAdminPanel", func(prev Snapshot) Snapshot {
		next := prev
		next.Panels.AdminPanelOpen = !prev.Panels.AdminPanelOpen
		return next
	})
}
