package domain

import "strings"

// Item represents a catalog entry that can be recommended.
type Item struct {
	ID    string
	Title string
}

// Rating is a single explicit or implicit user rating.
// A Value of 0 means implicit feedback and is excluded from the
// explicit rated set.
type Rating struct {
	UserID string
	ItemID string
	Value  float64
}

// IsExplicit reports whether the rating carries an explicit value.
func (r Rating) IsExplicit() bool {
	return r.Value > 0
}

// NormalizeTitle canonicalizes a title for edition-level deduplication.
// Different item IDs (editions, ISBNs) of the same logical work are
// expected to collapse onto the same normalized title.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
