package state

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/five82/vogue/internal/api"
)

// CartItem is one line of the cart. Quantity is always at least 1.
type CartItem struct {
	Product  api.Product
	Quantity int
}

// Subtotal is the line price.
func (c CartItem) Subtotal() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// AddToCart accumulates quantity onto the line for product, appending a new
// line when none exists. A non-positive quantity adds nothing.
func AddToCart(cart []CartItem, product api.Product, quantity int) []CartItem {
	if quantity <= 0 {
		return cart
	}
	i := indexOfCartItem(cart, product.ID)
	if i < 0 {
		next := make([]CartItem, len(cart), len(cart)+1)
		copy(next, cart)
		return append(next, CartItem{Product: product, Quantity: quantity})
	}

	next := slices.Clone(cart)
	next[i].Quantity += quantity
	return next
}

// UpdateCartItemQuantity sets the line quantity to exactly quantity. A
// quantity of zero or less removes the line; an absent id is a no-op.
func UpdateCartItemQuantity(cart []CartItem, productID string, quantity int) []CartItem {
	if quantity <= 0 {
		return RemoveFromCart(cart, productID)
	}
	i := indexOfCartItem(cart, productID)
	if i < 0 {
		return cart
	}
	next := slices.Clone(cart)
	next[i].Quantity = quantity
	return next
}

// RemoveFromCart drops the line for productID, if any.
func RemoveFromCart(cart []CartItem, productID string) []CartItem {
	if indexOfCartItem(cart, productID) < 0 {
		return cart
	}
	return slices.DeleteFunc(slices.Clone(cart), func(item CartItem) bool {
		return item.Product.ID == productID
	})
}

// CartTotal sums every line.
func CartTotal(cart []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range cart {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CartCount is the number of units across all lines.
func CartCount(cart []CartItem) int {
	n := 0
	for _, item := range cart {
		n += item.Quantity
	}
	return n
}

// CartTotal sums the snapshot's cart.
func (s Snapshot) CartTotal() decimal.Decimal { return CartTotal(s.Cart) }

// CartCount counts units in the snapshot's cart.
func (s Snapshot) CartCount() int { return CartCount(s.Cart) }

func indexOfCartItem(cart []CartItem, productID string) int {
	return slices.IndexFunc(cart, func(item CartItem) bool { return item.Product.ID == productID })
}

func cloneCart(cart []CartItem) []CartItem {
	if cart == nil {
		return nil
	}
	dup := make([]CartItem, len(cart))
	for i, item := range cart {
		dup[i] = CartItem{Product: item.Product.Clone(), Quantity: item.Quantity}
	}
	return dup
}

// AddToCart merges quantity units of product into the cart.
func (s *Store) AddToCart(product api.Product, quantity int) Snapshot {
	return s.dispatch("addToCart", func(prev Snapshot) Snapshot {
		next := prev
		next.Cart = AddToCart(prev.Cart, product.Clone(), quantity)
		return next
	})
}

// UpdateCartItemQuantity replaces the quantity of one line.
func (s *Store) UpdateCartItemQuantity(productID string, quantity int) Snapshot {
	return s.dispatch("updateCartItemQuantity", func(prev Snapshot) Snapshot {
		next := prev
		next.Cart = UpdateCartItemQuantity(prev.Cart, productID, quantity)
		return next
	})
}

// RemoveFromCart drops one line unconditionally.
func (s *Store) RemoveFromCart(productID string) Snapshot {
	return s.dispatch("removeFromCart", func(prev Snapshot) Snapshot {
		next := prev
		next.Cart = RemoveFromCart(prev.Cart, productID)
		return next
	})
}

// ClearCart empties the cart and discards any checkout still in flight.
func (s *Store) ClearCart() Snapshot {
	return s.dispatch("clearCart", func(prev Snapshot) Snapshot {
		s.tasks.invalidate(taskCheckout)
		next := prev
		next.Cart = nil
		return next
	})
}

// Checkout submits the cart as a transaction and, on success, removes the
// submitted quantities. Items added while the request is in flight stay in
// the cart. A failure leaves the cart untouched.
func (s *Store) Checkout(ctx context.Context) (api.TransactionReceipt, error) {
	if s.backend == nil {
		return api.TransactionReceipt{}, ErrNoBackend
	}
	snap := s.current()
	if len(snap.Cart) == 0 {
		return api.TransactionReceipt{}, ErrEmptyCart
	}

	token := s.tasks.begin(taskCheckout)
	req := api.TransactionRequest{
		Items: make([]api.TransactionLine, 0, len(snap.Cart)),
		Total: CartTotal(snap.Cart),
	}
	for _, item := range snap.Cart {
		req.Items = append(req.Items, api.TransactionLine{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
		})
	}

	receipt, err := s.backend.CreateTransaction(ctx, snap.Session.AdminToken, req)
	if err != nil {
		s.logger.Error("checkout failed", zap.Error(err), zap.Int("lines", len(req.Items)))
		return api.TransactionReceipt{}, fmt.Errorf("checkout: %w", err)
	}

	_, applied := s.dispatchTask("checkout", taskCheckout, token, func(prev Snapshot) Snapshot {
		next := prev
		next.Cart = removeSubmitted(prev.Cart, req.Items)
		return next
	})
	if !applied {
		return receipt, ErrSuperseded
	}
	s.logger.Info("checkout complete", zap.String("transaction", receipt.ID), zap.String("total", req.Total.StringFixed(2)))
	return receipt, nil
}

// removeSubmitted subtracts each submitted line's quantity from the cart. A
// line whose remainder is not positive is removed.
func removeSubmitted(cart []CartItem, lines []api.TransactionLine) []CartItem {
	for _, line := range lines {
		i := indexOfCartItem(cart, line.ProductID)
		if i < 0 {
			continue
		}
		cart = UpdateCartItemQuantity(cart, line.ProductID, cart[i].Quantity-line.Quantity)
	}
	if len(cart) == 0 {
		return nil
	}
	return cart
}
