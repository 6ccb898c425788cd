package types

// Match is one line of a scanned file that contains the search term.
// Line is 1-based; Text has trailing line terminators and whitespace removed.
type Match struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Text string `json:"text"`
}
