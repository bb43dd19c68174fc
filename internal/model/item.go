package model

import "time"

const (
	// MaxItems bounds the collection. Adds past this are declined.
	MaxItems = 3
	// MaxTextLen is the longest item text, in runes, after trimming.
	MaxTextLen = 100
	// StorageKey is the default key the collection is persisted under.
	StorageKey = "notTodoItems"
)

// isoLayout mirrors JavaScript's Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// Item is a single thing not to do.
type Item struct {
	ID        int64  `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

// FormatTime renders t the way createdAt is stored (UTC, millisecond precision).
func FormatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// Created parses CreatedAt. Zero time if it is malformed.
func (it Item) Created() time.Time {
	t, err := time.Parse(time.RFC3339Nano, it.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
