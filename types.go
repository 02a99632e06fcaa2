package journalfmt

import "github.com/alnah/go-journalfmt/docmodel"

// Input carries one manuscript and the journal to restyle it against.
type Input struct {
	// Document is the parsed manuscript. Mutated in place by Format.
	Document *docmodel.Document

	// JournalID selects the target journal record, e.g. "ieee".
	JournalID string
}

// Warning is one non-fatal problem reported by a pipeline step.
type Warning struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// Report summarizes one formatting run: every step's counters (zero
// when the step had nothing to do or was skipped) plus the warnings in
// the order they were raised.
type Report struct {
	Journal  string         `json:"journal"`
	Warnings []Warning      `json:"warnings"`
	Stats    map[string]int `json:"stats"`
}

// JournalInfo describes one registry entry for listing purposes.
type JournalInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// formatterConfig holds construction-time settings.
type formatterConfig struct {
	journalDir string
}

// Option customizes a Formatter at construction time.
type Option func(*formatterConfig)

// WithJournalDir loads journal records from dir instead of the built-in
// set. The directory holds one <id>.yaml record per journal.
func WithJournalDir(dir string) Option {
	return func(c *formatterConfig) {
		c.journalDir = dir
	}
}
