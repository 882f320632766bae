package qdrant

// VectorConfig defines vector dimension and distance metric for a collection.
type VectorConfig struct {
	Size     int    `json:"size"`     // embedding dimension
	Distance string `json:"distance"` // "Cosine", "Euclid", "Dot"
}

// Point is one vector with its payload. Qdrant only accepts UUID or
// uint64 point ids; note ids are mapped through a deterministic UUID
// before they get here.
type Point struct {
	ID      string                 `json:"id"`
	Vector  []float32              `json:"vector"`
	Payload map[string]interface{} `json:"payload"`
}

// SearchRequest is the request for semantic search.
type SearchRequest struct {
	Vector      []float32              `json:"vector"`
	Limit       int                    `json:"limit"`
	WithPayload bool                   `json:"with_payload"`
	Filter      map[string]interface{} `json:"filter,omitempty"`
}

// ScoredPoint is a search hit with its similarity score.
type ScoredPoint struct {
	ID      string                 `json:"id"`
	Score   float64                `json:"score"`
	Payload map[string]interface{} `json:"payload"`
}

// Wire envelopes; callers only see the flattened forms.

type createCollectionRequest struct {
	Vectors VectorConfig `json:"vectors"`
}

type upsertPointsRequest struct {
	Points []Point `json:"points"`
}

type searchResponse struct {
	Result []ScoredPoint `json:"result"`
}
