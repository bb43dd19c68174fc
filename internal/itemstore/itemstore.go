// Package itemstore owns the bounded, ordered list of items and keeps it in
// sync with a key-value store. Every successful add or delete rewrites the
// whole list under a single key.
//
// Invalid requests (blank text, text too long, a full list, an unknown id)
// are not errors: the list is left unchanged and the caller is told nothing
// happened. Errors are reserved for the storage itself.
package itemstore

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/idilsaglam/nottodo/internal/model"
	"github.com/idilsaglam/nottodo/internal/store"
)

// Decline says why an add would be refused.
type Decline int

const (
	Accepted Decline = iota
	DeclineEmpty
	DeclineTooLong
	DeclineFull
)

func (d Decline) String() string {
	switch d {
	case Accepted:
		return "accepted"
	case DeclineEmpty:
		return "text is empty"
	case DeclineTooLong:
		return fmt.Sprintf("text is longer than %d characters", model.MaxTextLen)
	case DeclineFull:
		return fmt.Sprintf("Maximum %d items reached. Delete an item to add more.", model.MaxItems)
	}
	return "unknown"
}

type Store struct {
	kv    store.KV
	key   string
	clock clockwork.Clock
	log   *zap.Logger

	items  []model.Item
	lastID int64
}

type Option func(*Store)

// WithKey overrides the storage key (default model.StorageKey).
func WithKey(key string) Option { return func(s *Store) { s.key = key } }

func WithClock(c clockwork.Clock) Option { return func(s *Store) { s.clock = c } }

func WithLogger(l *zap.Logger) Option { return func(s *Store) { s.log = l } }

// Open builds a Store over kv and loads the persisted list once.
// Missing or unreadable data yields an empty list; only a failing kv is an error.
func Open(ctx context.Context, kv store.KV, opts ...Option) (*Store, error) {
	s := &Store{
		kv:    kv,
		key:   model.StorageKey,
		clock: clockwork.NewRealClock(),
		log:   zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.key, err)
	}
	s.items = nil
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}

	var items []model.Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warn("error loading items, starting empty",
			zap.String("key", s.key), zap.Error(err))
		return nil
	}
	kept := slices.DeleteFunc(items, func(it model.Item) bool {
		return strings.TrimSpace(it.Text) == ""
	})
	if dropped := len(items) - len(kept); dropped > 0 {
		s.log.Warn("dropped items without text",
			zap.String("key", s.key), zap.Int("dropped", dropped))
	}
	s.items = kept
	for _, it := range kept {
		s.lastID = max(s.lastID, it.ID)
	}
	s.log.Debug("items loaded", zap.String("key", s.key), zap.Int("count", len(kept)))
	return nil
}

// Items returns a copy of the list in insertion order.
func (s *Store) Items() []model.Item { return slices.Clone(s.items) }

func (s *Store) Len() int { return len(s.items) }

func (s *Store) Full() bool { return len(s.items) >= model.MaxItems }

// Remaining is how many more items fit.
func (s *Store) Remaining() int { return max(model.MaxItems-len(s.items), 0) }

// Find returns the item with id, if present.
func (s *Store) Find(id int64) (model.Item, bool) {
	i := slices.IndexFunc(s.items, func(it model.Item) bool { return it.ID == id })
	if i < 0 {
		return model.Item{}, false
	}
	return s.items[i], true
}

// Check reports whether Add(text) would go through, and if not, why.
func (s *Store) Check(text string) Decline {
	text = clean(text)
	switch {
	case text == "":
		return DeclineEmpty
	case utf8.RuneCountInString(text) > model.MaxTextLen:
		return DeclineTooLong
	case s.Full():
		return DeclineFull
	}
	return Accepted
}

func (s *Store) CanAdd(text string) bool { return s.Check(text) == Accepted }

// clean trims text and replaces invalid UTF-8, so the stored JSON and the
// in-memory item hold the same string.
func clean(text string) string {
	return strings.ToValidUTF8(strings.TrimSpace(text), "\uFFFD")
}

// Add appends trimmed text as a new item and persists the list.
// added is false, with a nil error, when Check declines the text.
func (s *Store) Add(ctx context.Context, text string) (it model.Item, added bool, err error) {
	if d := s.Check(text); d != Accepted {
		s.log.Debug("add declined", zap.Stringer("reason", d))
		return model.Item{}, false, nil
	}

	now := s.clock.Now()
	id := now.UnixMilli()
	if id <= s.lastID {
		// same millisecond as the newest item
		id = s.lastID + 1
	}
	it = model.Item{
		ID:        id,
		Text:      clean(text),
		CreatedAt: model.FormatTime(now),
	}

	next := append(slices.Clone(s.items), it)
	if err := s.persist(ctx, next); err != nil {
		return model.Item{}, false, err
	}
	s.items = next
	s.lastID = id
	s.log.Debug("item added", zap.Int64("id", id), zap.Int("count", len(next)))
	return it, true, nil
}

// Delete removes the item with id and persists the list.
// removed is false, with a nil error, when no item has that id.
func (s *Store) Delete(ctx context.Context, id int64) (removed bool, err error) {
	next := slices.DeleteFunc(slices.Clone(s.items), func(it model.Item) bool { return it.ID == id })
	if len(next) == len(s.items) {
		return false, nil
	}
	if err := s.persist(ctx, next); err != nil {
		return false, err
	}
	s.items = next
	s.log.Debug("item deleted", zap.Int64("id", id), zap.Int("count", len(next)))
	return true, nil
}

// persist overwrites the stored list with items. The in-memory list is only
// replaced by callers after this succeeds.
func (s *Store) persist(ctx context.Context, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}
