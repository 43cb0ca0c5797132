// internal/app/app.go
package app

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"laview-core/dazzdb"
	"laview-core/filter"
	"laview-core/las"
	"laview-core/ranges"
	"laview/internal/cli"
	"laview/internal/cmdutil"
	"laview/internal/output"
	"laview/internal/pipeline"
	"laview/internal/render"
	"laview/internal/version"
)

// Run parses argv, opens the databases and the overlap stream, and
// drives the select-and-render loop. Exit code 0 on success (including
// zero accepted records), 1 on any fatal error.
func Run(argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("laview")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		return flushCode(outw, stderr, 1)
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return flushCode(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return flushCode(outw, stderr, 1)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "laview version %s\n", version.Version)
		return flushCode(outw, stderr, 0)
	}

	log := cmdutil.NewLogger(opts.Verbose)
	defer func() { _ = log.Sync() }()

	set, err := ranges.Compile(opts.Ranges)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}

	dbA, dbB, err := openDatabases(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}

	r, err := las.Open(opts.LasPath)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = r.Close() }()

	log.Info("opened overlap stream",
		zap.String("file", opts.LasPath),
		zap.Int64("records", r.Count()),
		zap.Int32("trace_spacing", r.TraceSpacing()),
		zap.Bool("small_trace", r.Small()))

	if opts.Output != cli.OutputM4 {
		if err := output.WriteHeader(outw, lasRoot(opts.LasPath), r.Count()); err != nil {
			return writeFail(outw, stderr, err)
		}
	}

	rend := render.New(opts, r.TraceSpacing(), dbA, dbB)
	accepted, err := pipeline.ForEachOverlap(r, ranges.NewCursor(set), predicates(opts), func(o *las.Overlap) error {
		return rend.Render(outw, o)
	})
	if err != nil {
		if output.IsBrokenPipe(err) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}

	log.Info("selection complete",
		zap.Int64("scanned", r.Count()),
		zap.Int("accepted", accepted))

	return flushCode(outw, stderr, 0)
}

func predicates(opts cli.Options) []filter.Predicate {
	var preds []filter.Predicate
	if opts.TrueOverlap {
		preds = append(preds, filter.TrueOverlap())
	}
	if opts.SeedFilter {
		preds = append(preds, filter.SeedLimits(int32(opts.SeedMin)))
	}
	if opts.FullLength {
		preds = append(preds, filter.FullLength())
	}
	return preds
}

// openDatabases loads the a-side database and, when a second path was
// given, the b-side one; with a single database both sides share it.
// Modes that never touch sequences skip loading entirely.
func openDatabases(opts cli.Options) (dbA, dbB *dazzdb.DB, err error) {
	if opts.Output != cli.OutputAlign {
		return nil, nil, nil
	}
	dbA, err = dazzdb.Open(opts.DBPaths[0])
	if err != nil {
		return nil, nil, err
	}
	dbA.Trim()
	dbB = dbA
	if len(opts.DBPaths) == 2 {
		dbB, err = dazzdb.Open(opts.DBPaths[1])
		if err != nil {
			return nil, nil, err
		}
		dbB.Trim()
	}
	return dbA, dbB, nil
}

func lasRoot(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".las")
}

func flushCode(outw *bufio.Writer, stderr io.Writer, code int) int {
	if err := outw.Flush(); output.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	return code
}

func writeFail(outw *bufio.Writer, stderr io.Writer, err error) int {
	if output.IsBrokenPipe(err) {
		return 0
	}
	_, _ = fmt.Fprintln(stderr, err)
	return 1
}
