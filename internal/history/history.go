// Package history keeps a bounded record of generated recipes.
package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/temirov/llm-recipes/internal/recipe"
)

// DefaultLimit bounds the history when no positive limit is configured.
const DefaultLimit = 10

// ErrNotFound reports that no entry matched a lookup reference.
var ErrNotFound = errors.New("history entry not found")

// ErrAmbiguous reports that a lookup reference matched more than one entry.
var ErrAmbiguous = errors.New("history reference is ambiguous")

// Entry is one persisted generation.
type Entry struct {
	Title     string        `json:"title"`
	Timestamp time.Time     `json:"timestamp"`
	Recipe    recipe.Result `json:"recipe"`
}

// NewEntry wraps a result for persistence.
func NewEntry(result recipe.Result) Entry {
	return Entry{Title: result.Title, Timestamp: result.CreatedAt, Recipe: result}
}

// Sink accepts finished generations.
type Sink interface {
	Append(ctx context.Context, entry Entry) error
}

// Store is a Sink that can also be browsed and cleared. Entries are listed
// oldest first.
type Store interface {
	Sink
	List(ctx context.Context) ([]Entry, error)
	Clear(ctx context.Context) error
}

// LimitFunc reports the current capacity. It is consulted on every append
// so a changed setting takes effect without reopening the store.
type LimitFunc func() int

func (limit LimitFunc) resolve() int {
	if limit == nil {
		return DefaultLimit
	}
	if value := limit(); value > 0 {
		return value
	}
	return DefaultLimit
}

// Discard drops every entry.
type Discard struct{}

func (Discard) Append(context.Context, Entry) error { return nil }

// Find returns the newest entry whose recipe identifier equals reference or
// starts with it.
func Find(ctx context.Context, store Store, reference string) (Entry, error) {
	entries, err := store.List(ctx)
	if err != nil {
		return Entry{}, err
	}
	return findEntry(entries, reference)
}

func findEntry(entries []Entry, reference string) (Entry, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return Entry{}, ErrNotFound
	}
	var matches []Entry
	for index := len(entries) - 1; index >= 0; index-- {
		identifier := entries[index].Recipe.ID
		if identifier == reference {
			return entries[index], nil
		}
		if strings.HasPrefix(identifier, reference) {
			matches = append(matches, entries[index])
		}
	}
	switch len(matches) {
	case 0:
		return Entry{}, ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return Entry{}, ErrAmbiguous
	}
}

func trimOldest(entries []Entry, limit int) []Entry {
	if len(entries) <= limit {
		return entries
	}
	return entries[len(entries)-limit:]
}
