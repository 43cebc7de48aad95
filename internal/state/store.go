package state

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/five82/vogue/internal/api"
	"github.com/five82/vogue/internal/session"
)

// Errors reported by store actions.
var (
	ErrSuperseded       = errors.New("request superseded by a later action")
	ErrNoBackend        = errors.New("no storefront backend configured")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Snapshot is one complete value of the application state.
type Snapshot struct {
	// Version increases by one with every accepted action.
	Version uint64

	Products         []api.Product
	FeaturedProducts []api.Product
	FilteredProducts []api.Product
	Filter           ProductFilter

	Cart    []CartItem
	Session session.Session
	Chat    []ChatMessage
	Panels  Panels
}

// Panels holds the open/closed flags of the storefront's side panels.
type Panels struct {
	CartOpen       bool
	ChatOpen       bool
	AdminPanelOpen bool
}

// Product looks up a catalog entry by id.
func (s Snapshot) Product(id string) (api.Product, bool) {
	i := indexOfProduct(s.Products, id)
	if i < 0 {
		return api.Product{}, false
	}
	return s.Products[i], true
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	dup := s
	dup.Products = cloneProducts(s.Products)
	dup.FeaturedProducts = cloneProducts(s.FeaturedProducts)
	dup.FilteredProducts = cloneProducts(s.FilteredProducts)
	dup.Cart = cloneCart(s.Cart)
	dup.Chat = cloneChat(s.Chat)
	return dup
}

// Options configure a Store.
type Options struct {
	Storage session.Storage // nil keeps the session in memory only
	Backend api.Backend     // nil makes network-backed actions fail with ErrNoBackend
	Logger  *zap.Logger
	NodeID  int64            // snowflake node for chat ids
	Clock   func() time.Time // nil uses time.Now
}

// Store owns the current snapshot. Every action computes a new snapshot from
// the previous one and publishes it to subscribers before returning.
//
// Subscribers run while the action still holds the dispatch lock, so they may
// read Snapshot but must not invoke actions synchronously.
type Store struct {
	dispatchMu sync.Mutex // serializes transitions and their publication

	mu   sync.RWMutex
	snap Snapshot

	subsMu  sync.Mutex
	subs    []subscriber
	nextSub uint64

	storage session.Storage
	backend api.Backend
	logger  *zap.Logger
	ids     *snowflake.Node
	now     func() time.Time
	tasks   taskRegistry
}

type subscriber struct {
	id uint64
	fn func(Snapshot)
}

// New builds a store and seeds the session once from storage.
func New(opts Options) (*Store, error) {
	node, err := snowflake.NewNode(opts.NodeID)
	if err != nil {
		return nil, fmt.Errorf("init chat id node: %w", err)
	}

	s := &Store{
		storage: opts.Storage,
		backend: opts.Backend,
		logger:  opts.Logger,
		ids:     node,
		now:     opts.Clock,
	}
	if s.storage == nil {
		s.storage = session.NewMemoryStore()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}

	seeded, err := s.storage.Load()
	if err != nil {
		s.logger.Warn("session load failed, starting anonymous", zap.Error(err))
		seeded = session.Session{}
	}
	s.snap.Session = seeded
	return s, nil
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Subscribe registers fn to receive every new snapshot. The returned func
// removes the registration; calling it more than once is harmless.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subsMu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			defer s.subsMu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
		})
	}
}

// dispatch applies one transition and publishes the result.
func (s *Store) dispatch(action string, apply func(Snapshot) Snapshot) Snapshot {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	return s.transition(action, apply)
}

// dispatchTask applies the transition only when token is still current for kind.
func (s *Store) dispatchTask(action string, kind taskKind, token taskToken, apply func(Snapshot) Snapshot) (Snapshot, bool) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	if !s.tasks.valid(kind, token) {
		s.logger.Info("discarding late response", zap.String("action", action), zap.String("task", string(kind)))
		return s.current().Clone(), false
	}
	return s.transition(action, apply), true
}

// transition must be called with dispatchMu held.
func (s *Store) transition(action string, apply func(Snapshot) Snapshot) Snapshot {
	s.mu.Lock()
	next := apply(s.snap)
	next.Version = s.snap.Version + 1
	s.snap = next
	s.mu.Unlock()

	s.logger.Debug("state transition", zap.String("action", action), zap.Uint64("version", next.Version))
	s.publish(next)
	return next.Clone()
}

func (s *Store) current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Store) publish(snap Snapshot) {
	s.subsMu.Lock()
	subs := slices.Clone(s.subs)
	s.subsMu.Unlock()

	for _, sub := range subs {
		sub.fn(snap.Clone())
	}
}

func cloneProducts(items []api.Product) []api.Product {
	if items == nil {
		return nil
	}
	dup := make([]api.Product, len(items))
	for i, p := range items {
		dup[i] = p.Clone()
	}
	return dup
}

func indexOfProduct(products []api.Product, id string) int {
	return slices.IndexFunc(products, func(p api.Product) bool { return p.ID == id })
}
