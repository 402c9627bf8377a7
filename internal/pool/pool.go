// Package pool builds the flat set of content cards and deals them into
// conveyor columns.
package pool

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/olivier-w/conveyor/internal/media"
)

var (
	ErrEmptyPool    = errors.New("pool has no items")
	ErrDuplicateKey = errors.New("duplicate item key")
)

// Source is an item record as read from a pool file, playlist or directory.
// Key is optional; Build assigns one when it is empty.
type Source struct {
	Key         string `yaml:"key"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Media       string `yaml:"media"`
}

// Item is an immutable content card.
type Item struct {
	Key         string
	Title       string
	Description string
	Media       string
	Kind        media.Kind
}

// Label is the one-line text used by the info rail.
func (it Item) Label() string {
	parts := make([]string, 0, 2)
	if it.Title != "" {
		parts = append(parts, it.Title)
	}
	if it.Description != "" {
		parts = append(parts, it.Description)
	}
	if len(parts) == 0 {
		return "Untitled"
	}
	return strings.Join(parts, " — ")
}

// Pool is the ordered set of items built from sources.
type Pool struct {
	items []Item
}

// Build turns sources into items, assigning keys to sources without one.
func Build(sources []Source, rng *rand.Rand, now time.Time) (*Pool, error) {
	if len(sources) == 0 {
		return nil, ErrEmptyPool
	}
	items := make([]Item, 0, len(sources))
	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		key := strings.TrimSpace(s.Key)
		if key == "" {
			key = MakeKey(rng, now)
			for seen[key] {
				key = MakeKey(rng, now)
			}
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}
		seen[key] = true
		items = append(items, Item{
			Key:         key,
			Title:       strings.TrimSpace(s.Title),
			Description: strings.TrimSpace(s.Description),
			Media:       s.Media,
			Kind:        media.KindOf(s.Media),
		})
	}
	return &Pool{items: items}, nil
}

// MakeKey returns a fresh "k_" key from a random part and the timestamp.
func MakeKey(rng *rand.Rand, now time.Time) string {
	return "k_" + strconv.FormatUint(rng.Uint64()>>12, 36) + strconv.FormatInt(now.UnixMilli(), 36)
}

// Len returns the number of items.
func (p *Pool) Len() int {
	return len(p.items)
}

// Items returns a copy of the items in build order.
func (p *Pool) Items() []Item {
	out := make([]Item, len(p.items))
	copy(out, p.items)
	return out
}

// Distribute shuffles the items and deals them round-robin into n columns.
// Columns shorter than minPer are topped up with clones of items they do not
// already hold, so a key may repeat across columns but never within one.
func (p *Pool) Distribute(n, minPer int, rng *rand.Rand) [][]Item {
	if n <= 0 {
		return nil
	}
	shuffled := p.Items()
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cols := make([][]Item, n)
	for i, it := range shuffled {
		cols[i%n] = append(cols[i%n], it)
	}

	if minPer > len(shuffled) {
		minPer = len(shuffled)
	}
	next := 0
	for c := range cols {
		held := make(map[string]bool, len(cols[c]))
		for _, it := range cols[c] {
			held[it.Key] = true
		}
		for tries := 0; len(cols[c]) < minPer && tries < len(shuffled); tries++ {
			it := shuffled[next%len(shuffled)]
			next++
			if held[it.Key] {
				continue
			}
			held[it.Key] = true
			cols[c] = append(cols[c], it)
		}
	}
	return cols
}
