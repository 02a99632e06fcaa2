package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all parsed command-line flags.
type cliFlags struct {
	journal      string
	journalsDir  string
	listJournals bool
	dumpJournal  bool
	output       string
	report       string
	workers      int
	quiet        bool
	verbose      bool
	version      bool

	inputs []string
}

// parseFlags parses argv into cliFlags. Returns the flag set for usage
// printing on error.
func parseFlags(argv []string) (*cliFlags, *flag.FlagSet, error) {
	flags := &cliFlags{}
	fs := flag.NewFlagSet("journalfmt", flag.ContinueOnError)

	fs.StringVarP(&flags.journal, "journal", "j", "", "target journal id (required unless --list-journals)")
	fs.StringVar(&flags.journalsDir, "journals-dir", "", "directory of journal records replacing the built-in set")
	fs.BoolVar(&flags.listJournals, "list-journals", false, "list available journals and exit")
	fs.BoolVar(&flags.dumpJournal, "dump-journal", false, "print the resolved journal record as YAML and exit")
	fs.StringVarP(&flags.output, "output", "o", "", "output path (single input only)")
	fs.StringVar(&flags.report, "report", "", "report format: json")
	fs.IntVar(&flags.workers, "workers", 0, "concurrent workers for batch input (0 = auto)")
	fs.BoolVarP(&flags.quiet, "quiet", "q", false, "suppress progress output")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose progress output")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: journalfmt [flags] <manuscript.docx|draft.md|directory>...\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(argv[1:]); err != nil {
		return nil, fs, err
	}
	flags.inputs = fs.Args()
	return flags, fs, nil
}

// validate checks flag combinations that parse cannot.
func (f *cliFlags) validate() error {
	if f.version || f.listJournals {
		return nil
	}
	if f.dumpJournal {
		if f.journal == "" {
			return ErrNoJournal
		}
		return nil
	}
	if len(f.inputs) == 0 {
		return ErrNoInput
	}
	if f.journal == "" {
		return ErrNoJournal
	}
	if f.output != "" && len(f.inputs) > 1 {
		return ErrOutputWithBatch
	}
	if f.report != "" && f.report != "json" {
		return fmt.Errorf("%w: %q", ErrBadReportFormat, f.report)
	}
	return nil
}
