// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"laview/internal/version"
)

// Output modes
const (
	OutputListing = "listing"
	OutputM4      = "m4"
	OutputCartoon = "cartoon"
	OutputAlign   = "align"
)

// Options holds all CLI flags and arguments, built once and passed
// down; no component reads global state.
type Options struct {
	// Positional arguments
	DBPaths []string // 1 or 2 FASTA databases (a side, optional b side)
	LasPath string   // binary overlap file
	Ranges  []string // read-index range tokens: N, N-M, N-#

	// Output
	Output    string
	Reference bool // reference-style rendering in align mode
	Uppercase bool
	Indent    int
	Width     int
	Border    int

	// Filters
	TrueOverlap bool
	SeedFilter  bool
	SeedMin     int
	FullLength  bool

	Verbose bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: display overlap records from a .las alignment file

Version: %s

Usage: %s [flags] [<db.fasta> [<db2.fasta>]] <overlaps.las> [<range> ...]

Ranges select 1-based a-read indices: N, N-M, or N-# (to the end).

`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Output, "output", OutputListing, "output mode: listing | m4 | cartoon | align [listing]")
	fs.BoolVar(&opt.Reference, "reference", false, "reference-style rendering (align mode) [false]")
	fs.BoolVar(&opt.Uppercase, "uppercase", false, "fold alignment rows to uppercase [false]")
	fs.IntVar(&opt.Indent, "indent", 4, "indent for cartoon/alignment blocks [4]")
	fs.IntVar(&opt.Width, "width", 100, "alignment columns per row [100]")
	fs.IntVar(&opt.Border, "border", 10, "unaligned context bases at alignment ends [10]")

	fs.BoolVar(&opt.TrueOverlap, "overlap", false, "keep only true overlaps (alignment reaches a read end on both sides) [false]")
	fs.BoolVar(&opt.SeedFilter, "seed", false, "keep only seed-worthy overlaps (ends within 1000bp of a read boundary) [false]")
	fs.IntVar(&opt.SeedMin, "seed-min", 8000, "minimum a-read length for --seed (bp) [8000]")
	fs.BoolVar(&opt.FullLength, "full-length", false, "keep only full-length-to-full-length overlaps [false]")

	fs.BoolVar(&opt.Verbose, "verbose", false, "log selection diagnostics to stderr [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	if err := splitPositionals(&opt, fs.Args()); err != nil {
		return opt, err
	}

	// Validation
	switch opt.Output {
	case OutputListing, OutputM4, OutputCartoon, OutputAlign:
	default:
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	if opt.Reference && opt.Output != OutputAlign {
		return opt, errors.New("--reference requires --output align")
	}
	if opt.Output == OutputAlign && len(opt.DBPaths) == 0 {
		return opt, errors.New("align output requires a sequence database")
	}
	if opt.Indent < 0 {
		return opt, errors.New("--indent must be ≥ 0")
	}
	if opt.Width < 1 {
		return opt, errors.New("--width must be ≥ 1")
	}
	if opt.Border < 0 {
		return opt, errors.New("--border must be ≥ 0")
	}
	if opt.SeedMin < 1 {
		return opt, errors.New("--seed-min must be ≥ 1")
	}
	return opt, nil
}

// splitPositionals divides the positional arguments around the .las
// file: databases before it, range tokens after it.
func splitPositionals(opt *Options, args []string) error {
	las := -1
	for i, a := range args {
		if strings.HasSuffix(a, ".las") {
			las = i
			break
		}
	}
	if las < 0 {
		return errors.New("an overlap file (.las) is required")
	}
	if las > 2 {
		return errors.New("at most two sequence databases may precede the .las file")
	}
	opt.DBPaths = args[:las]
	opt.LasPath = args[las]
	opt.Ranges = args[las+1:]
	return nil
}
