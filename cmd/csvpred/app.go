// Command csvpred filters the rows of a CSV file with a predicate
// query and prints the matching rows as a JSON array.
//
// Example:
//
//	csvpred -i people.csv -q '.age >= 30 AND .city == "Lisbon"'
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/csvtools/csvpred"
	"github.com/csvtools/csvpred/internal/csvio"
)

type arguments struct {
	inputFile    string
	query        string
	fieldNames   string
	noSkipHeader bool
	debugAST     bool
	workers      int
	skipBadRows  bool
}

func parseArguments(args []string, stderr io.Writer) (*arguments, error) {
	fs := flag.NewFlagSet("csvpred", flag.ContinueOnError)
	fs.SetOutput(stderr)

	a := &arguments{}
	fs.StringVar(&a.inputFile, "i", "", "path to the input CSV file; reads stdin when omitted")
	fs.StringVar(&a.inputFile, "input-file", "", "path to the input CSV file; reads stdin when omitted")
	fs.StringVar(&a.query, "q", "", "query predicate to apply to each row (required)")
	fs.StringVar(&a.query, "query", "", "query predicate to apply to each row (required)")
	fs.StringVar(&a.fieldNames, "f", "", "alternative column names, comma separated (example: col1,col2,col3)")
	fs.StringVar(&a.fieldNames, "fieldnames", "", "alternative column names, comma separated (example: col1,col2,col3)")
	fs.BoolVar(&a.noSkipHeader, "n", false, "do not skip the header line")
	fs.BoolVar(&a.noSkipHeader, "no-skip-header", false, "do not skip the header line")
	fs.BoolVar(&a.debugAST, "debug-ast", false, "print the AST to stderr")
	fs.IntVar(&a.workers, "workers", 0, "concurrent row evaluations; 0 uses the number of CPUs")
	fs.BoolVar(&a.skipBadRows, "skip-bad-rows", false, "skip rows that fail to evaluate instead of aborting")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if a.query == "" {
		fmt.Fprintln(stderr, "csvpred: the -q/--query flag is required")
		fs.Usage()
		return nil, errors.New("missing query")
	}
	return a, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a, err := parseArguments(args, stderr)
	if err != nil {
		return 2
	}

	query, err := csvpred.Compile(a.query)
	if err != nil {
		reportSyntaxError(stderr, a.query, err)
		return 1
	}

	if a.debugAST {
		fmt.Fprint(stderr, query.DumpAST())
	}

	input := stdin
	if a.inputFile != "" {
		f, err := os.Open(a.inputFile)
		if err != nil {
			fmt.Fprintf(stderr, "csvpred: %v\n", err)
			return 1
		}
		defer f.Close()
		input = f
	}

	opts := csvio.Options{}
	if a.fieldNames != "" {
		opts.FieldNames = strings.Split(a.fieldNames, ",")
		opts.SkipHeader = !a.noSkipHeader
	}

	reader, err := csvio.NewReader(input, opts)
	if err != nil {
		fmt.Fprintf(stderr, "csvpred: %v\n", err)
		return 1
	}

	policy := csvpred.FailFast
	if a.skipBadRows {
		policy = csvpred.SkipRows
	}
	runner := csvpred.NewRunner(query, csvpred.RunnerConfig{
		Workers:   a.workers,
		RowErrors: policy,
		Logger:    slog.New(slog.NewTextHandler(stderr, nil)),
	})

	matched, _, err := runner.Run(context.Background(), reader)
	if err != nil {
		fmt.Fprintf(stderr, "csvpred: %v\n", err)
		return 1
	}

	if err := writeJSON(stdout, matched); err != nil {
		// The downstream consumer closed the pipe; not a failure.
		if errors.Is(err, syscall.EPIPE) {
			return 0
		}
		fmt.Fprintf(stderr, "csvpred: %v\n", err)
		return 1
	}
	return 0
}

// reportSyntaxError renders the error, the offending query, and a caret
// under the failing column, matching the shape:
//
//	syntax error at line 1 col 6: ...
//	> .avg = 0.5
//	       ^
func reportSyntaxError(stderr io.Writer, query string, err error) {
	fmt.Fprintln(stderr, err)

	var syntaxErr *csvpred.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return
	}
	fmt.Fprintf(stderr, "> %s\n", syntaxErr.SourceLine)
	fmt.Fprintf(stderr, "  %s\n", syntaxErr.Caret())
}

// writeJSON emits the matched rows as a single JSON array. An empty
// result is the empty array, never null.
func writeJSON(w io.Writer, rows []csvpred.Row) error {
	if rows == nil {
		rows = []csvpred.Row{}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(rows)
}
