package state

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/five82/vogue/internal/api"
	"github.com/five82/vogue/internal/session"
)

// fakeBackend answers each route with the configured func.
type fakeBackend struct {
	fetch       func(ctx context.Context) ([]api.Product, error)
	create      func(ctx context.Context, token string, draft api.ProductDraft) (api.Product, error)
	login       func(ctx context.Context, creds api.Credentials) (string, error)
	signup      func(ctx context.Context, data api.SignupData) (string, error)
	transaction func(ctx context.Context, token string, req api.TransactionRequest) (api.TransactionReceipt, error)
}

var _ api.Backend = (*fakeBackend)(nil)

func (f *fakeBackend) FetchProducts(ctx context.Context) ([]api.Product, error) {
	return f.fetch(ctx)
}

func (f *fakeBackend) CreateProduct(ctx context.Context, token string, draft api.ProductDraft) (api.Product, error) {
	return f.create(ctx, token, draft)
}

func (f *fakeBackend) Login(ctx context.Context, creds api.Credentials) (string, error) {
	return f.login(ctx, creds)
}

func (f *fakeBackend) Signup(ctx context.Context, data api.SignupData) (string, error) {
	return f.signup(ctx, data)
}

func (f *fakeBackend) CreateTransaction(ctx context.Context, token string, req api.TransactionRequest) (api.TransactionReceipt, error) {
	return f.transaction(ctx, token, req)
}

func newTestStore(t *testing.T, backend api.Backend, storage session.Storage) *Store {
	t.Helper()
	if storage == nil {
		storage = session.NewMemoryStore()
	}
	s, err := New(Options{Storage: storage, Backend: backend, Logger: zap.NewNop()})
	require.NoError(t, err)
	return s
}

func product(id string, category api.Category, featured bool) api.Product {
	return api.Product{
		ID:          id,
		Name:        "Product " + id,
		Category:    category,
		Price:       decimal.NewFromInt(10),
		Description: "description of " + id,
		Featured:    featured,
	}
}

func ids(products []api.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func cartLines(cart []CartItem) map[string]int {
	out := make(map[string]int, len(cart))
	for _, item := range cart {
		out[item.Product.ID] = item.Quantity
	}
	return out
}
