package bmfont

import "container/list"

// glyphCache is a bounded LRU of decoded glyphs keyed by code point.
// Callers hold Font.mu around every method.
type glyphCache struct {
	limit int
	order *list.List
	byKey map[rune]*list.Element
}

type cacheEntry struct {
	key   rune
	glyph *Glyph
}

func newGlyphCache(limit int) *glyphCache {
	return &glyphCache{
		limit: limit,
		order: list.New(),
		byKey: make(map[rune]*list.Element, limit),
	}
}

// get returns the cached glyph for key and marks it most recently used,
// or nil on a miss.
func (c *glyphCache) get(key rune) *Glyph {
	el, ok := c.byKey[key]
	if !ok {
		return nil
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).glyph
}

// add stores a glyph for key, evicting the least recently used entry when
// the cache is full.
func (c *glyphCache) add(key rune, g *Glyph) {
	if el, ok := c.byKey[key]; ok {
		c.order.MoveToFront(el)
		el.Value.(*cacheEntry).glyph = g
		return
	}
	for c.order.Len() >= c.limit {
		last := c.order.Back()
		c.order.Remove(last)
		delete(c.byKey, last.Value.(*cacheEntry).key)
	}
	c.byKey[key] = c.order.PushFront(&cacheEntry{key: key, glyph: g})
}

// len returns the number of cached glyphs.
func (c *glyphCache) len() int {
	return c.order.Len()
}
