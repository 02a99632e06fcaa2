package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	journalfmt "github.com/alnah/go-journalfmt"
	"github.com/alnah/go-journalfmt/internal/fileutil"
)

// run executes the CLI and returns the error that determines the exit
// code. Output goes to stdout, progress and errors to stderr.
func run(argv []string, stdout, stderr io.Writer) error {
	flags, fs, err := parseFlags(argv)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	if flags.version {
		fmt.Fprintf(stdout, "journalfmt %s\n", Version)
		return nil
	}
	if err := flags.validate(); err != nil {
		fs.Usage()
		return err
	}

	var opts []journalfmt.Option
	if flags.journalsDir != "" {
		opts = append(opts, journalfmt.WithJournalDir(flags.journalsDir))
	}
	fmtr, err := journalfmt.NewFormatter(opts...)
	if err != nil {
		return err
	}

	if flags.listJournals {
		return listJournals(fmtr, stdout)
	}
	if flags.dumpJournal {
		return dumpJournal(fmtr, flags.journal, stdout)
	}

	files, err := fileutil.DiscoverManuscripts(flags.inputs)
	if err != nil {
		return err
	}
	if flags.verbose {
		fmt.Fprintf(stderr, "Formatting %d manuscript(s) for %s\n", len(files), flags.journal)
	}

	results := formatBatch(context.Background(), fmtr, files, flags)

	if flags.report == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	} else if !flags.quiet {
		printSummary(results, stdout)
	}

	return firstError(results)
}

func listJournals(fmtr *journalfmt.Formatter, w io.Writer) error {
	for _, j := range fmtr.Journals() {
		if j.Description != "" {
			fmt.Fprintf(w, "%-10s %s - %s\n", j.ID, j.Name, j.Description)
		} else {
			fmt.Fprintf(w, "%-10s %s\n", j.ID, j.Name)
		}
	}
	return nil
}

func dumpJournal(fmtr *journalfmt.Formatter, id string, w io.Writer) error {
	data, err := fmtr.DumpJournal(id)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func printSummary(results []fileResult, w io.Writer) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "FAIL  %s: %v\n", r.Input, r.Err)
			continue
		}
		fmt.Fprintf(w, "OK    %s -> %s (%d warning(s), %s)\n",
			r.Input, r.Output, len(r.Report.Warnings), r.Duration.Round(time.Millisecond))
		for _, warn := range r.Report.Warnings {
			fmt.Fprintf(w, "      [%s] %s\n", warn.Step, warn.Message)
		}
	}
}

// firstError returns the first per-file failure, so a batch with any
// failed input exits non-zero.
func firstError(results []fileResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
