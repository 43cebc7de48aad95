package state

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/five82/vogue/internal/api"
)

// ProductFilter holds the three independent catalog constraints. An empty
// field places no constraint.
type ProductFilter struct {
	Category    api.Category
	Culture     string
	SearchQuery string
}

// Active reports whether any constraint is set.
func (f ProductFilter) Active() bool {
	return f.Category != "" || f.Culture != "" || f.SearchQuery != ""
}

// FilterUpdate is a partial change to a ProductFilter. A nil field keeps the
// previous value; a non-nil empty value clears it.
type FilterUpdate struct {
	Category    *api.Category
	Culture     *string
	SearchQuery *string
}

// FilterOption sets one field of a FilterUpdate.
type FilterOption func(*FilterUpdate)

// WithCategory constrains the category; "" clears it.
func WithCategory(c api.Category) FilterOption {
	return func(u *FilterUpdate) { u.Category = &c }
}

// WithCulture constrains the culture tag; "" clears it.
func WithCulture(culture string) FilterOption {
	return func(u *FilterUpdate) { u.Culture = &culture }
}

// WithSearch sets the search text; "" clears it.
func WithSearch(query string) FilterOption {
	return func(u *FilterUpdate) { u.SearchQuery = &query }
}

// ClearFilters clears all three constraints.
func ClearFilters() FilterOption {
	return func(u *FilterUpdate) {
		WithCategory("")(u)
		WithCulture("")(u)
		WithSearch("")(u)
	}
}

// NewFilterUpdate folds opts into an update.
func NewFilterUpdate(opts ...FilterOption) FilterUpdate {
	var u FilterUpdate
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

// Merge returns f with the fields present in u replaced.
func (f ProductFilter) Merge(u FilterUpdate) ProductFilter {
	if u.Category != nil {
		f.Category = *u.Category
	}
	if u.Culture != nil {
		f.Culture = *u.Culture
	}
	if u.SearchQuery != nil {
		f.SearchQuery = *u.SearchQuery
	}
	return f
}

// ApplyFilter merges update into current and recomputes the visible list.
func ApplyFilter(products []api.Product, current ProductFilter, update FilterUpdate) (ProductFilter, []api.Product) {
	next := current.Merge(update)
	return next, FilterCatalog(products, next)
}

// FilterCatalog keeps the products passing every active constraint, in
// catalog order. With no active constraint it returns products itself.
func FilterCatalog(products []api.Product, f ProductFilter) []api.Product {
	if !f.Active() {
		return products
	}

	filtered := products
	if f.Category != "" {
		filtered = keep(filtered, func(p api.Product) bool { return p.Category == f.Category })
	}
	if f.Culture != "" {
		filtered = keep(filtered, func(p api.Product) bool { return p.Culture == f.Culture })
	}
	if f.SearchQuery != "" {
		fold := cases.Fold()
		query := fold.String(f.SearchQuery)
		filtered = keep(filtered, func(p api.Product) bool {
			return strings.Contains(fold.String(p.Name), query) ||
				strings.Contains(fold.String(p.Description), query)
		})
	}
	return filtered
}

// FeaturedProducts returns the products flagged as featured, in catalog order.
func FeaturedProducts(products []api.Product) []api.Product {
	return keep(products, func(p api.Product) bool { return p.Featured })
}

// Cultures lists the distinct culture tags in first-seen order.
func Cultures(products []api.Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if p.Culture == "" || seen[p.Culture] {
			continue
		}
		seen[p.Culture] = true
		out = append(out, p.Culture)
	}
	return out
}

func keep(products []api.Product, pred func(api.Product) bool) []api.Product {
	out := make([]api.Product, 0, len(products))
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// FilterProducts merges the options into the current filter and recomputes
// the filtered view. Omitted fields keep their value.
func (s *Store) FilterProducts(opts ...FilterOption) Snapshot {
	update := NewFilterUpdate(opts...)
	return s.dispatch("filterProducts", func(prev Snapshot) Snapshot {
		next := prev
		next.Filter, next.FilteredProducts = ApplyFilter(prev.Products, prev.Filter, update)
		return next
	})
}
