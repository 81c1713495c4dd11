// Command xs-check lexes, parses and type-checks XS scripts, printing
// diagnostics for each file given on the command line. Control flow mirrors
// the teacher project's single-file compiler CLI, generalized to multiple
// input files and colorized diagnostic output.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Divy1211/xs-check/internal/diag"
	"github.com/Divy1211/xs-check/internal/history"
	"github.com/Divy1211/xs-check/internal/pipeline"
	"github.com/fatih/color"
)

var version = "0.1.0"

func main() {
	var (
		showVersion  bool
		ignoresFlag  string
		includeDirs  includeDirsFlag
		extraPrelude string
		noHistory    bool
	)

	flag.BoolVar(&showVersion, "v", false, "print version and exit")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&ignoresFlag, "i", "", "comma-separated warning names to ignore")
	flag.StringVar(&ignoresFlag, "ignores", "", "comma-separated warning names to ignore")
	flag.Var(&includeDirs, "I", "directory to search for includes (repeatable)")
	flag.Var(&includeDirs, "include-dirs", "directory to search for includes (repeatable)")
	flag.StringVar(&extraPrelude, "e", "", "path to an additional prelude file")
	flag.StringVar(&extraPrelude, "extra-prelude-path", "", "path to an additional prelude file")
	flag.BoolVar(&noHistory, "no-history", false, "do not record this run in the local run-history database")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: xs-check [flags] <file.xs> [file.xs ...]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Println("xs-check", version)
		return
	}

	if flag.NArg() < 1 {
		flag.Usage()
		return
	}

	ignores, err := parseIgnores(ignoresFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	pl, err := pipeline.New([]string(includeDirs), extraPrelude)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}

	var store *history.Store
	if !noHistory {
		dbPath := history.DefaultPath(os.Getenv("XDG_STATE_HOME"), os.TempDir())
		if err := os.MkdirAll(dbPath[:strings.LastIndex(dbPath, "/")], 0755); err == nil {
			if s, err := history.Open(dbPath); err == nil {
				store = s
			}
		}
	}

	hadError := false
	for _, path := range flag.Args() {
		if runFile(pl, store, path, ignores) {
			hadError = true
		}
	}

	if hadError {
		os.Exit(1)
	}
}

// runFile checks one file and prints its diagnostics, returning true if any
// error-severity diagnostic was reported.
func runFile(pl *pipeline.Pipeline, store *history.Store, path string, ignores map[int]bool) bool {
	started := time.Now()

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return true
	}

	diags, _, err := pl.Check(path, src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return true
	}

	errorCount, warningCount := 0, 0
	for _, d := range diags {
		if d.Severity == diag.Warning {
			if ignores[int(d.Code)] {
				continue
			}
			warningCount++
			printDiagnostic(path, d, color.New(color.FgYellow))
		} else {
			errorCount++
			printDiagnostic(path, d, color.New(color.FgRed))
		}
	}

	if store != nil {
		_ = store.Record(history.AnalysisRun{
			FilePath:     path,
			StartedAt:    started,
			DurationMs:   time.Since(started).Milliseconds(),
			ErrorCount:   errorCount,
			WarningCount: warningCount,
		})
	}

	return errorCount > 0
}

func printDiagnostic(path string, d diag.Diagnostic, c *color.Color) {
	c.Fprintf(os.Stdout, "%s:%d: %s\n", path, d.Span.Start, d.String())
}

// parseIgnores resolves a comma-separated list of warning names (e.g.
// "interval-range,duplicate-rule-option") to their stable codes, mirroring
// the original's WarningKind::from_str. An unrecognized name is a usage
// error, not a silently-ignored no-op.
func parseIgnores(raw string) (map[int]bool, error) {
	ignores := map[int]bool{}
	if raw == "" {
		return ignores, nil
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, ok := diag.WarningCodeFromString(part)
		if !ok {
			return nil, fmt.Errorf("unknown warning name %q in -ignores", part)
		}
		ignores[int(code)] = true
	}
	return ignores, nil
}

// includeDirsFlag accumulates repeated -I/-include-dirs flag occurrences.
type includeDirsFlag []string

func (f *includeDirsFlag) String() string { return strings.Join(*f, ",") }

func (f *includeDirsFlag) Set(value string) error {
	*f = append(*f, value)
	return nil
}
