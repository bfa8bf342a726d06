package domain

import (
	"fmt"
	"strings"
)

// ItemCatalog is an immutable, row-ordered view of all items known to the
// content dataset. Row order is the tie-break order used by every ranker,
// so it must match the embedding store built from the same load.
type ItemCatalog struct {
	items      []Item
	rowByID    map[string]int
	rowByTitle map[string]int
}

// NewItemCatalog builds a catalog from items in load order.
// Duplicate item IDs fail loudly; duplicate normalized titles are allowed
// (re-editions) and resolve to the first row.
func NewItemCatalog(items []Item) (*ItemCatalog, error) {
	c := &ItemCatalog{
		items:      items,
		rowByID:    make(map[string]int, len(items)),
		rowByTitle: make(map[string]int, len(items)),
	}
	for row, item := range items {
		if _, dup := c.rowByID[item.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %q at row %d", item.ID, row)
		}
		c.rowByID[item.ID] = row
		title := NormalizeTitle(item.Title)
		if _, seen := c.rowByTitle[title]; !seen {
			c.rowByTitle[title] = row
		}
	}
	return c, nil
}

// Len returns the number of catalog rows.
func (c *ItemCatalog) Len() int {
	return len(c.items)
}

// At returns the item at the given row.
func (c *ItemCatalog) At(row int) Item {
	return c.items[row]
}

// RowOf resolves an item ID to its row index.
func (c *ItemCatalog) RowOf(itemID string) (int, bool) {
	row, ok := c.rowByID[itemID]
	return row, ok
}

// TitleOf resolves an item ID to its raw title.
func (c *ItemCatalog) TitleOf(itemID string) (string, bool) {
	row, ok := c.rowByID[itemID]
	if !ok {
		return "", false
	}
	return c.items[row].Title, true
}

// ResolveTitle resolves a title to a catalog row. Exact normalized match
// first, then a containment fallback over normalized titles (closest to the
// source's fuzzy lookup without pulling in edit-distance machinery).
func (c *ItemCatalog) ResolveTitle(title string) (int, bool) {
	normalized := NormalizeTitle(title)
	if row, ok := c.rowByTitle[normalized]; ok {
		return row, true
	}
	if normalized == "" {
		return 0, false
	}
	for row, item := range c.items {
		if strings.Contains(NormalizeTitle(item.Title), normalized) {
			return row, true
		}
	}
	return 0, false
}

// VerifyAlignment checks that every catalog row maps to the same row in the
// embedding store. The two are loaded from the same dataset snapshot; any
// divergence means a stale mapping and must fail loudly.
func (c *ItemCatalog) VerifyAlignment(store *EmbeddingStore) error {
	if store.Len() != c.Len() {
		return fmt.Errorf("%w: catalog has %d rows, store has %d",
			ErrMisalignedStore, c.Len(), store.Len())
	}
	for row, item := range c.items {
		storeRow, ok := store.RowOf(item.ID)
		if !ok || storeRow != row {
			return fmt.Errorf("%w: item %q at catalog row %d not at store row %d",
				ErrMisalignedStore, item.ID, row, row)
		}
	}
	return nil
}
