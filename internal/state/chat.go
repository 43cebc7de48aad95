package state

import (
	"time"

	"github.com/five82/vogue/internal/api"
)

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is one turn of the in-memory transcript.
type ChatMessage struct {
	ID        string
	Text      string
	Sender    Sender
	Timestamp time.Time
	Products  []api.Product // suggestions attached to bot turns
}

// AddChatMessage assigns an id and appends the message, returning it as stored.
func (s *Store) AddChatMessage(text string, sender Sender, products ...api.Product) ChatMessage {
	suggestions := cloneProducts(products)
	var msg ChatMessage
	s.dispatch("addChatMessage", func(prev Snapshot) Snapshot {
		msg = ChatMessage{
			ID:        s.ids.Generate().String(),
			Text:      text,
			Sender:    sender,
			Timestamp: s.now(),
			Products:  suggestions,
		}
		next := prev
		chat := make([]ChatMessage, len(prev.Chat), len(prev.Chat)+1)
		copy(chat, prev.Chat)
		next.Chat = append(chat, msg)
		return next
	})
	return cloneMessage(msg)
}

// ClearChatMessages empties the transcript.
func (s *Store) ClearChatMessages() Snapshot {
	return s.dispatch("clearChatMessages", func(prev Snapshot) Snapshot {
		next := prev
		next.Chat = nil
		return next
	})
}

func cloneMessage(m ChatMessage) ChatMessage {
	m.Products = cloneProducts(m.Products)
	return m
}

func cloneChat(chat []ChatMessage) []ChatMessage {
	if chat == nil {
		return nil
	}
	dup := make([]ChatMessage, len(chat))
	for i, m := range chat {
		dup[i] = cloneMessage(m)
	}
	return dup
}
