// Package pipeline implements the manuscript restyling pipeline.
//
// A run executes fourteen transformers in one fixed order. Every
// transformer that detects content by heading text (title page,
// abstract, keywords, sections, citations, references, appendix) is
// placed before the headings transformer, because heading numbering is
// the one mutation that breaks exact heading-text matching. The
// ordering lives in the step list below and nowhere else.
//
// Transformers never abort a run: a panic inside one step is recovered
// at the orchestrator boundary, recorded as a warning naming the step,
// and the remaining steps still execute.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/alnah/go-journalfmt/docmodel"
	"github.com/alnah/go-journalfmt/internal/spec"
)

// ErrNilDocument indicates a pipeline run was started without a document.
var ErrNilDocument = errors.New("nil document")

// Step names, in execution order.
const (
	StepLayout     = "layout"
	StepFonts      = "fonts"
	StepFootnotes  = "footnotes"
	StepTitlePage  = "title_page"
	StepAbstract   = "abstract"
	StepKeywords   = "keywords"
	StepSections   = "sections"
	StepCitations  = "citations"
	StepReferences = "references"
	StepHeadings   = "headings"
	StepAppendix   = "appendix"
	StepTables     = "tables"
	StepFigures    = "figures"
	StepEquations  = "equations"
)

// Warning is one user-facing, non-fatal diagnostic tied to a step.
type Warning struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// Result accumulates warnings and statistics across one run. Stats
// holds every step's metrics, pre-seeded to zero so skipped and failed
// steps still appear in the final report.
type Result struct {
	Warnings []Warning      `json:"warnings"`
	Stats    map[string]int `json:"stats"`
}

func (r *Result) warnf(step, format string, a ...any) {
	r.Warnings = append(r.Warnings, Warning{Step: step, Message: fmt.Sprintf(format, a...)})
}

// step binds a name to its transformer and the metric keys it owns.
// The keys are pre-seeded to zero before the run and reset to zero when
// the step panics, so a faulty step never leaves partial counts behind.
type step struct {
	name  string
	stats []string
	apply func(doc *docmodel.Document, j *spec.Journal, res *Result)
}

func defaultSteps() []step {
	return []step{
		{StepLayout, []string{"layout_paragraphs"}, applyLayout},
		{StepFonts, []string{"fonts_paragraphs", "fonts_runs"}, applyFonts},
		{StepFootnotes, []string{"footnotes_found"}, applyFootnotes},
		{StepTitlePage, []string{"title_page_found"}, applyTitlePage},
		{StepAbstract, []string{"abstract_words"}, applyAbstract},
		{StepKeywords, []string{"keywords_count"}, applyKeywords},
		{StepSections, []string{"sections_found", "sections_misordered"}, applySections},
		{StepCitations, []string{"citations_found", "citations_reformatted"}, applyCitations},
		{StepReferences, []string{"references_found", "references_reformatted"}, applyReferences},
		{StepHeadings, []string{"headings_formatted", "headings_numbered"}, applyHeadings},
		{StepAppendix, []string{"appendices_found"}, applyAppendix},
		{StepTables, []string{"tables_found", "tables_captions"}, applyTables},
		{StepFigures, []string{"figures_found"}, applyFigures},
		{StepEquations, []string{"equations_found"}, applyEquations},
	}
}

// State of one pipeline run.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	}
	return "unknown"
}

// Pipeline runs the fixed transformer sequence over one document.
// A Pipeline tracks the state of a single run; construct one per run.
type Pipeline struct {
	steps []step
	state State
}

// New returns an idle pipeline with the standard step order.
func New() *Pipeline {
	return &Pipeline{steps: defaultSteps(), state: StateIdle}
}

// State reports the run state.
func (p *Pipeline) State() State {
	return p.state
}

// Run executes every step in order against doc and the resolved journal
// record. The document is mutated in place. Run only fails before the
// first step executes (nil document or journal); once running, step
// faults are isolated and the report always covers all steps.
func (p *Pipeline) Run(doc *docmodel.Document, journal *spec.Journal) (*Result, error) {
	if doc == nil {
		p.state = StateAborted
		return nil, ErrNilDocument
	}
	if journal == nil {
		p.state = StateAborted
		return nil, fmt.Errorf("%w: no journal specification", spec.ErrJournalNotFound)
	}

	res := &Result{Stats: make(map[string]int)}
	for _, s := range p.steps {
		for _, k := range s.stats {
			res.Stats[k] = 0
		}
	}

	p.state = StateRunning
	for _, s := range p.steps {
		p.runStep(s, doc, journal, res)
	}
	p.state = StateCompleted
	return res, nil
}

func (p *Pipeline) runStep(s step, doc *docmodel.Document, j *spec.Journal, res *Result) {
	defer func() {
		if r := recover(); r != nil {
			res.warnf(s.name, "step failed and was skipped: %v", r)
			for _, k := range s.stats {
				res.Stats[k] = 0
			}
		}
	}()
	s.apply(doc, j, res)
}
