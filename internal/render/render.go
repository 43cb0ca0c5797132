// internal/render/render.go
package render

import (
	"fmt"
	"io"

	"laview-core/align"
	"laview-core/dazzdb"
	"laview-core/las"
	"laview/internal/cli"
	"laview/internal/output"
)

// Renderer routes accepted overlap records to one of the output modes.
// dbA serves a-read sequences and dbB b-read sequences; they are the
// same database unless the run named two. Sequence buffers are sized
// once from the databases and reused for every record.
type Renderer struct {
	opt     cli.Options
	spacing int32
	dbA     *dazzdb.DB
	dbB     *dazzdb.DB
	ws      *align.Workspace
	aBuf    []byte
	bBuf    []byte
}

// New builds a Renderer. dbA/dbB may be nil for modes that never load
// sequences (listing, m4, cartoon).
func New(opt cli.Options, spacing int32, dbA, dbB *dazzdb.DB) *Renderer {
	r := &Renderer{opt: opt, spacing: spacing, dbA: dbA, dbB: dbB}
	if opt.Output == cli.OutputAlign {
		r.ws = align.NewWorkspace()
		r.aBuf = make([]byte, 0, dbA.MaxReadLen())
		r.bBuf = make([]byte, 0, dbB.MaxReadLen())
	}
	return r
}

// Render writes one accepted record in the configured mode.
func (r *Renderer) Render(w io.Writer, o *las.Overlap) error {
	tps := align.TracePoints(o.Path.ABPos, o.Path.AEPos, r.spacing)

	switch r.opt.Output {
	case cli.OutputM4:
		return output.WriteM4(w, o)

	case cli.OutputListing:
		if err := output.WriteCoords(w, o); err != nil {
			return err
		}
		return output.WriteTrailer(w, o, tps, '<')

	case cli.OutputCartoon:
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := output.WriteCoords(w, o); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  (%s trace pts)\n\n", output.Number(int64(tps), 3)); err != nil {
			return err
		}
		return align.PrintCartoon(w, o, r.opt.Indent)

	case cli.OutputAlign:
		return r.renderAlignment(w, o, tps)
	}
	return fmt.Errorf("render: unknown output mode %q", r.opt.Output)
}

func (r *Renderer) renderAlignment(w io.Writer, o *las.Overlap, tps int32) error {
	var err error
	r.aBuf, err = r.dbA.Load(int(o.AIndex), r.aBuf, false)
	if err != nil {
		return err
	}
	r.bBuf, err = r.dbB.Load(int(o.BIndex), r.bBuf, false)
	if err != nil {
		return err
	}
	if o.Complemented() {
		dazzdb.Complement(r.bBuf)
	}
	aln, err := r.ws.ComputeTraceAlignment(r.aBuf, r.bBuf, o, r.spacing)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := output.WriteCoords(w, o); err != nil {
		return err
	}
	if err := output.WriteTrailer(w, o, tps, '='); err != nil {
		return err
	}

	ropt := align.RenderOptions{
		Indent:    r.opt.Indent,
		Width:     r.opt.Width,
		Border:    r.opt.Border,
		Uppercase: r.opt.Uppercase,
	}
	if r.opt.Reference {
		return align.PrintReference(w, aln, o, r.aBuf, r.bBuf, ropt)
	}
	return align.PrintAlignment(w, aln, o, r.aBuf, r.bBuf, ropt)
}
