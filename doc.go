// Package journalfmt restyles manuscript documents against
// publisher-specific journal formatting rules.
//
// # Quick Start
//
// Create a formatter, load a manuscript, and format it:
//
//	fmtr, err := journalfmt.NewFormatter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := journalfmt.ReadDocument("manuscript.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := fmtr.Format(ctx, journalfmt.Input{
//	    Document:  doc,
//	    JournalID: "ieee",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	journalfmt.WriteDocument(doc, "manuscript.docx", "manuscript.ieee.docx")
//
// The report carries per-step counters (citations found, headings
// numbered, ...) and the warnings raised along the way. A warning never
// fails the run: each pipeline step is isolated, so a problem in one
// step leaves the others applied.
//
// # Formatting Pipeline
//
// Format runs a fixed sequence of steps against the document:
//
//  1. Page layout, body fonts, footnote checks
//  2. Title page, abstract, keywords, section order
//  3. Citations and references (grammar detection and rewriting)
//  4. Headings, appendices, tables, figures, equations
//
// Every step reads one sub-record of the journal specification. A
// journal that omits a sub-record opts out of that step entirely.
//
// # Journal Records
//
// Journals are YAML records, one file per journal. A built-in set ships
// with the library; point WithJournalDir at a directory to replace it:
//
//	fmtr, err := journalfmt.NewFormatter(
//	    journalfmt.WithJournalDir("/etc/journalfmt/journals"),
//	)
//
// List the loaded records with Journals(). Unknown journal ids fail
// with ErrJournalNotFound; records with tokens outside the enum
// vocabulary fail the load with ErrInvalidSpec.
//
// # Input Formats
//
// ReadDocument accepts .docx containers and markdown manuscripts
// (.md). Markdown headings become styled heading paragraphs, so a
// draft written in markdown goes through the same pipeline and comes
// out as a .docx. Legacy .doc files are not supported and fail with
// ErrNotDocx.
package journalfmt
