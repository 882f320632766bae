package related

// Match is one related-note candidate.
type Match struct {
	NoteID      string
	Title       string
	MatchScore  float64
	MatchReason string
}

// criteria is the search input derived from a trigger's content.
type criteria struct {
	query    string
	tags     []string
	keywords []string
}
