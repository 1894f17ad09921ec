package domain

// ReindexEvent asks the indexer to refresh one entity's derived vector
// record. Deleted means the record must be removed instead.
type ReindexEvent struct {
	Kind    Kind     `json:"kind"`
	ID      EntityID `json:"id"`
	Deleted bool     `json:"deleted,omitempty"`
}
