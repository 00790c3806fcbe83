package translation

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Entry is a resolved translation stored in the cache.
type Entry struct {
	OriginalText   string
	TranslatedText string
}

// ToggleResult reports what a Toggle call did.
type ToggleResult int

const (
	// Removed: the key had a resolved entry and it was discarded. The next
	// toggle for the key re-fetches.
	Removed ToggleResult = iota

	// InFlight: a request for the key is already outstanding; the call was
	// a no-op.
	InFlight

	// Fetched: the key was absent, the translator was invoked, and the
	// result is now cached.
	Fetched
)

// WordKey builds a word-level cache key from the word and its sentence
// context. Word and sentence keys live in separate Cache instances, so a
// word key can never collide with a sentence line index.
func WordKey(word, sentenceContext string) string {
	return word + "|" + sentenceContext
}

// Cache memoizes translation requests keyed by caller-chosen strings and
// exposes show/hide toggle semantics. At most one request per key is ever
// outstanding: a toggle while the key is pending is a no-op, and concurrent
// fetches of the same key share a single translator call.
//
// A failed fetch leaves the key absent; the error is returned to the caller
// of that one toggle and the rest of the cache is unaffected.
//
// Safe for concurrent use.
type Cache struct {
	translator Translator
	log        *slog.Logger

	group singleflight.Group

	mu      sync.Mutex
	entries map[string]Entry
	pending map[string]struct{}
}

// NewCache creates an empty Cache backed by translator.
func NewCache(translator Translator, logger *slog.Logger) *Cache {
	return &Cache{
		translator: translator,
		log:        logger,
		entries:    make(map[string]Entry),
		pending:    make(map[string]struct{}),
	}
}

// Toggle implements the show/hide contract for key:
//
//   - resolved entry present → remove it and return Removed
//   - key pending → no-op, return InFlight
//   - otherwise → fetch via the translator; on success the entry is stored
//     and Fetched is returned, on failure the key stays absent and the
//     translator's error is returned.
func (c *Cache) Toggle(ctx context.Context, key string, req TranslateRequest) (ToggleResult, error) {
	c.mu.Lock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.mu.Unlock()
		return Removed, nil
	}
	if _, ok := c.pending[key]; ok {
		c.mu.Unlock()
		return InFlight, nil
	}
	c.pending[key] = struct{}{}
	c.mu.Unlock()

	translated, err, _ := c.group.Do(key, func() (any, error) {
		return c.translator.Translate(ctx, req)
	})

	c.mu.Lock()
	delete(c.pending, key)
	if err == nil {
		c.entries[key] = Entry{
			OriginalText:   req.Text,
			TranslatedText: translated.(string),
		}
	}
	c.mu.Unlock()

	if err != nil {
		c.log.WarnContext(ctx, "translation failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return Fetched, err
	}
	return Fetched, nil
}

// Get returns the resolved entry for key, if present.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

// Len returns the number of resolved entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear discards all resolved entries. Pending fetches complete but their
// results still land in the cache; call Clear only after the owning session
// has stopped issuing toggles.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
}
