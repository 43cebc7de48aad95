package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/five82/vogue/internal/api"
)

// ProductPatch is a partial product keyed by JSON field name ("name",
// "price", "size", ...). The "id" key is ignored.
type ProductPatch map[string]any

// SetProducts replaces the catalog wholesale and recomputes both derived
// views. Catalog creates and loads still in flight are discarded.
func (s *Store) SetProducts(products []api.Product) Snapshot {
	return s.dispatch("setProducts", s.replaceCatalog(cloneProducts(products)))
}

func (s *Store) replaceCatalog(catalog []api.Product) func(Snapshot) Snapshot {
	return func(prev Snapshot) Snapshot {
		s.tasks.invalidate(taskCatalog)
		s.tasks.invalidate(taskLoad)
		next := prev
		next.Products = catalog
		next.FeaturedProducts = FeaturedProducts(catalog)
		next.FilteredProducts = FilterCatalog(catalog, prev.Filter)
		return next
	}
}

// LoadProducts fetches the catalog from the backend and installs it. A later
// load, SetProducts or committed AddProduct discards the response with
// ErrSuperseded.
func (s *Store) LoadProducts(ctx context.Context) (Snapshot, error) {
	if s.backend == nil {
		return s.Snapshot(), ErrNoBackend
	}
	token := s.tasks.begin(taskLoad)
	products, err := s.backend.FetchProducts(ctx)
	if err != nil {
		s.logger.Error("catalog load failed", zap.Error(err))
		return s.Snapshot(), fmt.Errorf("load products: %w", err)
	}

	snap, applied := s.dispatchTask("loadProducts", taskLoad, token, s.replaceCatalog(cloneProducts(products)))
	if !applied {
		return snap, ErrSuperseded
	}
	s.logger.Info("catalog loaded", zap.Int("products", len(products)))
	return snap, nil
}

// AddProduct creates a product through the backend and appends the stored
// record. The filtered view only follows the catalog when no filter is
// active; an active filter keeps its current result.
func (s *Store) AddProduct(ctx context.Context, draft api.ProductDraft) (api.Product, error) {
	if s.backend == nil {
		return api.Product{}, ErrNoBackend
	}
	adminToken := s.current().Session.AdminToken
	if adminToken == "" {
		return api.Product{}, ErrNotAuthenticated
	}

	token := s.tasks.join(taskCatalog)
	created, err := s.backend.CreateProduct(ctx, adminToken, draft)
	if err != nil {
		s.logger.Error("add product failed", zap.Error(err), zap.String("name", draft.Name))
		return api.Product{}, fmt.Errorf("add product: %w", err)
	}

	stored := created.Clone()
	_, applied := s.dispatchTask("addProduct", taskCatalog, token, func(prev Snapshot) Snapshot {
		s.tasks.invalidate(taskLoad)
		next := prev
		next.Products = append(slices.Clip(prev.Products), stored)
		next.FeaturedProducts = FeaturedProducts(next.Products)
		if !prev.Filter.Active() {
			next.FilteredProducts = next.Products
		}
		return next
	})
	if !applied {
		return created, ErrSuperseded
	}
	return created, nil
}

// UpdateProduct merges patch into the catalog entry and, separately, into the
// filtered-view entry when one exists. Filtered membership is not
// re-evaluated. Fields that cannot be decoded are skipped and reported in the
// returned error; the rest are applied.
func (s *Store) UpdateProduct(productID string, patch ProductPatch) (Snapshot, error) {
	var skipped error
	snap := s.dispatch("updateProduct", func(prev Snapshot) Snapshot {
		next := prev
		next.Products, skipped = patchProducts(prev.Products, productID, patch)
		next.FeaturedProducts = FeaturedProducts(next.Products)
		next.FilteredProducts, _ = patchProducts(prev.FilteredProducts, productID, patch)
		return next
	})
	if skipped != nil {
		s.logger.Warn("product patch partially applied", zap.String("product", productID), zap.Error(skipped))
	}
	return snap, skipped
}

// DeleteProduct removes the product from the catalog, both derived views and
// the cart in one transition.
func (s *Store) DeleteProduct(productID string) Snapshot {
	drop := func(p api.Product) bool { return p.ID == productID }
	return s.dispatch("deleteProduct", func(prev Snapshot) Snapshot {
		next := prev
		next.Products = slices.DeleteFunc(slices.Clone(prev.Products), drop)
		next.FeaturedProducts = FeaturedProducts(next.Products)
		next.FilteredProducts = slices.DeleteFunc(slices.Clone(prev.FilteredProducts), drop)
		next.Cart = RemoveFromCart(prev.Cart, productID)
		return next
	})
}

func patchProducts(products []api.Product, productID string, patch ProductPatch) ([]api.Product, error) {
	i := indexOfProduct(products, productID)
	if i < 0 {
		return products, nil
	}
	merged, err := MergeProduct(products[i], patch)
	next := slices.Clone(products)
	next[i] = merged
	return next, err
}

// MergeProduct returns p with the fields named in patch replaced. Values are
// decoded loosely (numbers from strings, decimals from floats). Keys that fail
// to decode are left unchanged and listed in the error.
func MergeProduct(p api.Product, patch ProductPatch) (api.Product, error) {
	merged := p.Clone()

	keys := make([]string, 0, len(patch))
	for key := range patch {
		if strings.EqualFold(key, "id") {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		candidate := merged.Clone()
		switch strings.ToLower(key) {
		case "size":
			candidate.Sizes = nil
		case "tags":
			candidate.Tags = nil
		}
		if err := decodeInto(&candidate, key, patch[key]); err != nil {
			errs = append(errs, fmt.Errorf("field %q: %w", key, err))
			continue
		}
		merged = candidate
	}
	merged.ID = p.ID
	return merged, errors.Join(errs...)
}

func decodeInto(dst *api.Product, key string, value any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decimalHook,
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(map[string]any{key: value})
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

func decimalHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	}
	return nil, fmt.Errorf("cannot use %T as a price", data)
}
