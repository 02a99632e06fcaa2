package main

import (
	"errors"
	"os"

	journalfmt "github.com/alnah/go-journalfmt"
	"github.com/alnah/go-journalfmt/internal/fileutil"
)

// Exit codes for the journalfmt CLI.
// Unix conventions: 0=success, 1=general, 2=usage, custom codes < 126.
const (
	ExitSuccess = 0 // all inputs formatted
	ExitGeneral = 1 // general/unexpected error, or any input failed
	ExitUsage   = 2 // invalid flags or journal configuration
	ExitIO      = 3 // input not found, unreadable, or unwritable
)

// Sentinel errors for CLI validation.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrNoJournal       = errors.New("no journal specified (use --journal)")
	ErrOutputWithBatch = errors.New("--output requires a single input")
	ErrBadReportFormat = errors.New("unsupported report format")
)

// exitCodeFor maps an error to an exit code via errors.Is, so callers
// must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrNoManuscripts) ||
		errors.Is(err, journalfmt.ErrNotDocx) {
		return ExitIO
	}

	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoJournal) ||
		errors.Is(err, ErrOutputWithBatch) ||
		errors.Is(err, ErrBadReportFormat) ||
		errors.Is(err, journalfmt.ErrJournalNotFound) ||
		errors.Is(err, journalfmt.ErrInvalidSpec) {
		return ExitUsage
	}

	return ExitGeneral
}
