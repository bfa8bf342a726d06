package recommend

// ScoredItem pairs a catalog item with a channel score. The meaning of the
// score depends on the producing stage: a predicted rating for the
// collaborative ranker, a cosine similarity for the content ranker, or a
// blended value in [0,1] after fusion.
type ScoredItem struct {
	ItemID string
	Title  string
	Score  float64
}

// rowScore is an internal (embedding row, score) pair used while scores are
// still aligned to the item universe.
type rowScore struct {
	row   int
	score float64
}
