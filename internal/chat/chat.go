// Package chat produces the storefront assistant's replies. The Local
// responder answers from the catalog already held by the store, so the chat
// works without a completion backend.
package chat

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/five82/vogue/internal/api"
	"github.com/five82/vogue/internal/state"
)

// ErrEmptyMessage is returned for blank user input.
var ErrEmptyMessage = errors.New("message is empty")

const defaultLimit = 3

// Reply is one bot turn.
type Reply struct {
	Text     string
	Products []api.Product
}

// Responder turns a user message into a bot reply.
type Responder interface {
	Respond(ctx context.Context, snap state.Snapshot, text string) (Reply, error)
}

// Local suggests catalog products whose category, culture, name or
// description match words of the message.
type Local struct {
	Limit int // zero uses 3
}

var _ Responder = Local{}

var categoryWords = map[string]api.Category{
	"music":       api.CategoryMusic,
	"instrument":  api.CategoryMusic,
	"instruments": api.CategoryMusic,
	"drum":        api.CategoryMusic,
	"drums":       api.CategoryMusic,
	"clothing":    api.CategoryClothing,
	"clothes":     api.CategoryClothing,
	"shirt":       api.CategoryClothing,
	"shirts":      api.CategoryClothing,
	"dress":       api.CategoryClothing,
	"accessories": api.CategoryAccessories,
	"accessory":   api.CategoryAccessories,
	"jewelry":     api.CategoryAccessories,
	"jewellery":   api.CategoryAccessories,
}

var greetings = []string{"hi", "hello", "hey", "howdy"}

// Respond implements Responder.
func (l Local) Respond(ctx context.Context, snap state.Snapshot, text string) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	words := tokenize(text)
	if len(words) == 0 {
		return Reply{}, ErrEmptyMessage
	}
	if len(snap.Products) == 0 {
		return Reply{Text: "The catalog is still loading. Try again in a moment."}, nil
	}

	matches := l.match(snap, words)
	if len(matches) == 0 {
		if slices.Contains(greetings, words[0]) {
			return Reply{
				Text:     "Hello! Ask me about music, clothing or accessories. Here is what we are featuring:",
				Products: l.limit(snap.FeaturedProducts),
			}, nil
		}
		return Reply{Text: "I couldn't find anything matching that. Try a category like music, clothing or accessories."}, nil
	}

	noun := "item"
	if len(matches) > 1 {
		noun = "items"
	}
	return Reply{
		Text:     fmt.Sprintf("I found %d %s you might like:", len(matches), noun),
		Products: matches,
	}, nil
}

func (l Local) match(snap state.Snapshot, words []string) []api.Product {
	cultures := make(map[string]string)
	fold := cases.Fold()
	for _, c := range state.Cultures(snap.Products) {
		cultures[fold.String(c)] = c
	}

	seen := make(map[string]bool)
	var matches []api.Product
	add := func(products []api.Product) {
		for _, p := range products {
			if !seen[p.ID] {
				seen[p.ID] = true
				matches = append(matches, p)
			}
		}
	}

	for _, w := range words {
		if c, ok := categoryWords[w]; ok {
			add(state.FilterCatalog(snap.Products, state.ProductFilter{Category: c}))
		}
		if culture, ok := cultures[w]; ok {
			add(state.FilterCatalog(snap.Products, state.ProductFilter{Culture: culture}))
		}
		if len(w) >= 3 {
			add(state.FilterCatalog(snap.Products, state.ProductFilter{SearchQuery: w}))
		}
	}

	// Featured first, otherwise catalog order.
	slices.SortStableFunc(matches, func(a, b api.Product) int {
		switch {
		case a.Featured == b.Featured:
			return 0
		case a.Featured:
			return -1
		default:
			return 1
		}
	})
	return l.limit(matches)
}

func (l Local) limit(products []api.Product) []api.Product {
	n := l.Limit
	if n <= 0 {
		n = defaultLimit
	}
	if len(products) > n {
		products = products[:n]
	}
	return slices.Clone(products)
}

func tokenize(text string) []string {
	fold := cases.Fold()
	fields := strings.FieldsFunc(fold.String(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return fields
}

// Converse records the user turn, asks r for a reply and records the bot
// turn. The stored bot message is returned.
func Converse(ctx context.Context, store *state.Store, r Responder, text string) (state.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return state.ChatMessage{}, ErrEmptyMessage
	}
	store.AddChatMessage(text, state.SenderUser)

	reply, err := r.Respond(ctx, store.Snapshot(), text)
	if err != nil {
		return state.ChatMessage{}, fmt.Errorf("chat reply: %w", err)
	}
	return store.AddChatMessage(reply.Text, state.SenderBot, reply.Products...), nil
}
