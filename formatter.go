package journalfmt

import (
	"context"
	"fmt"

	"github.com/alnah/go-journalfmt/internal/pipeline"
	"github.com/alnah/go-journalfmt/internal/spec"
	"github.com/alnah/go-journalfmt/internal/yamlutil"
)

// Formatter restyles manuscripts against journal records. Construct
// once with NewFormatter; safe for concurrent use across distinct
// documents, since the registry is immutable and each Format call runs
// its own pipeline.
type Formatter struct {
	registry *spec.Registry
}

// NewFormatter creates a Formatter backed by the built-in journal set,
// or by a custom directory when WithJournalDir is given. Returns an
// error if any journal record fails to load or validate.
func NewFormatter(opts ...Option) (*Formatter, error) {
	var cfg formatterConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		registry *spec.Registry
		err      error
	)
	if cfg.journalDir != "" {
		registry, err = spec.Load(cfg.journalDir)
	} else {
		registry, err = builtinRegistry()
	}
	if err != nil {
		return nil, fmt.Errorf("loading journal registry: %w", err)
	}
	return &Formatter{registry: registry}, nil
}

// Journals lists the available journal records sorted by id.
func (f *Formatter) Journals() []JournalInfo {
	records := f.registry.List()
	out := make([]JournalInfo, 0, len(records))
	for _, j := range records {
		out = append(out, JournalInfo{ID: j.ID, Name: j.Name, Description: j.Description})
	}
	return out
}

// DumpJournal renders the resolved journal record named by id as YAML,
// with load-time defaults already applied. Useful for inspecting what
// a journal id actually resolves to before formatting against it.
func (f *Formatter) DumpJournal(id string) ([]byte, error) {
	journal, err := f.registry.Resolve(id)
	if err != nil {
		return nil, err
	}
	return yamlutil.Marshal(journal)
}

// Format restyles input.Document in place against the record named by
// input.JournalID and returns the run report. An unknown journal id or
// a nil document is a hard error raised before any step runs; problems
// inside individual steps never fail the run, they surface as report
// warnings instead.
func (f *Formatter) Format(ctx context.Context, input Input) (*Report, error) {
	if input.Document == nil {
		return nil, ErrNilDocument
	}
	journal, err := f.registry.Resolve(input.JournalID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := pipeline.New().Run(input.Document, journal)
	if err != nil {
		return nil, err
	}

	report := &Report{Journal: journal.ID, Stats: result.Stats}
	for _, w := range result.Warnings {
		report.Warnings = append(report.Warnings, Warning{Step: w.Step, Message: w.Message})
	}
	return report, nil
}
