package domain

// KeyPrefix namespaces every key docqa writes to the store.
const KeyPrefix = "docqa:"

// IndexRecord is the persisted unit of retrieval: one embedded chunk plus
// the metadata needed for source attribution. Written once, never mutated.
type IndexRecord struct {
	ID       string
	Vector   []float32
	Content  string
	Filename string
}

// Match is a single retrieval hit, ordered descending by Score.
type Match struct {
	Content  string
	Filename string
	Score    float64
}

// Source is the attribution-bearing context handed to the prompt assembler.
type Source struct {
	Content  string
	Filename string
}

// Answer is the outcome of one question. When Unavailable is true, Text
// carries a user-facing message instead of a model answer.
type Answer struct {
	Text        string
	Sources     []Source
	Unavailable bool
}
