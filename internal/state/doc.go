// Package state provides the application state store for the vogue storefront.
//
// # Overview
//
// The Store holds exactly one current Snapshot: the product catalog, the
// featured and filtered derived views, the active ProductFilter, the cart,
// the session, the chat transcript and the panel flags. Every surface of the
// UI reads from it and writes through its named actions.
//
// # Architecture
//
//	UI event ──→ store action ──→ apply(prev) = next ──→ subscribers
//	                  │                                      │
//	                  └── network call (login, addProduct)   └── re-render
//
// Each action computes a complete new snapshot from the previous one. Slices
// are never modified in place, so a published snapshot is never torn by a
// later action.
//
// # Core Types
//
// Store:
//   - Built with New; no package-level instance exists
//   - Subscribe/unsubscribe registry, called synchronously after each action
//   - Dispatch lock serializes transitions across goroutines
//
// Snapshot:
//   - Version increases by one per accepted action
//   - Snapshot() and subscribers receive deep copies
//
// # Derived Views
//
// FeaturedProducts is always the featured subset of the catalog, independent
// of the filter. FilteredProducts is FilterCatalog(Products, Filter), except in
// two places where it deliberately is not recomputed:
//
//   - AddProduct with an active filter leaves the filtered view as it was;
//     new items do not silently appear in a filtered result
//   - UpdateProduct refreshes the fields of a filtered entry but never
//     re-evaluates membership
//
// # Filter Composition
//
// Filter updates merge: an omitted option keeps its value, an explicit empty
// value clears it. Category and culture match exactly; the search text matches
// name or description as a case-folded substring. All active predicates must
// hold and catalog order is preserved.
//
// # Cart Merging
//
// AddToCart accumulates onto an existing line; UpdateCartItemQuantity
// replaces, and a quantity of zero or less removes the line. There is at most
// one line per product id. DeleteProduct cascades into the cart.
//
// # Network-backed Actions
//
// Login, Signup, AddProduct, LoadProducts and Checkout call the api.Backend
// outside the dispatch lock and apply the response as one transition. Each
// takes a request token first:
//
//   - Login and Signup supersede each other; Logout discards both
//   - AddProduct calls share a token; SetProducts and LoadProducts discard them
//   - Checkout supersedes an earlier checkout; ClearCart discards it
//
// A response whose token is no longer current is dropped and the caller gets
// ErrSuperseded. There is no retry.
//
// # Session Persistence
//
// The session is read from session.Storage once in New. Login, Signup and
// Logout write storage inside the same transition that updates memory, so the
// durable keys follow the in-memory order of events. A storage failure is
// logged; memory stays the source of truth.
//
// # Subscribers
//
// Subscribers run on the goroutine that dispatched the action, while the
// dispatch lock is held. They may call Snapshot but must not call actions
// synchronously; hand off to another goroutine instead.
package state
