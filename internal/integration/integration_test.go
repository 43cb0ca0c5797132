// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"laview-core/las"
	"laview/internal/app"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeLas(t *testing.T, name string, spacing int32, ovls []las.Overlap) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer func() { _ = fh.Close() }()
	w, err := las.NewWriter(fh, int64(len(ovls)), spacing)
	if err != nil {
		t.Fatalf("las header: %v", err)
	}
	for i := range ovls {
		if err := w.WriteRecord(&ovls[i]); err != nil {
			t.Fatalf("las record: %v", err)
		}
	}
	return path
}

func fixture(t *testing.T) string {
	ovls := []las.Overlap{
		{AIndex: 0, BIndex: 1, ALen: 60, BLen: 60,
			Path: las.Path{ABPos: 0, AEPos: 60, BBPos: 0, BEPos: 60, Diffs: 0, Trace: []uint16{0, 60}}},
		{AIndex: 1, BIndex: 0, ALen: 60, BLen: 40,
			Path: las.Path{ABPos: 10, AEPos: 50, BBPos: 0, BEPos: 40, Diffs: 2, Trace: []uint16{2, 40}}},
		{AIndex: 2, BIndex: 1, ALen: 60, BLen: 60,
			Path: las.Path{ABPos: 30, AEPos: 60, BBPos: 0, BEPos: 30, Diffs: 1, Trace: []uint16{1, 30}}},
	}
	return writeLas(t, "ovl.las", 100, ovls)
}

func TestListingEndToEnd(t *testing.T) {
	lasPath := fixture(t)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{lasPath}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}
	s := out.String()
	if !strings.Contains(s, "ovl: 3 records") {
		t.Errorf("missing banner: %q", s)
	}
	if got := strings.Count(s, "diffs"); got != 3 {
		t.Errorf("want 3 record lines, got %d: %q", got, s)
	}
}

func TestRangeSelectsSecondRecord(t *testing.T) {
	lasPath := fixture(t)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{lasPath, "2"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}
	s := out.String()
	if got := strings.Count(s, "diffs"); got != 1 {
		t.Errorf("want exactly 1 record line, got %d: %q", got, s)
	}
	// Second record in stream order: a-read 2 (1-based), b-read 1.
	if !strings.Contains(s, "         2") {
		t.Errorf("wrong record selected: %q", s)
	}
}

func TestM4EndToEnd(t *testing.T) {
	lasPath := fixture(t)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--output", "m4", lasPath}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 m4 lines, got %d", len(lines))
	}
	if strings.Contains(out.String(), "records") {
		t.Errorf("m4 output must not carry the banner: %q", out.String())
	}
	// Record 2: b (40bp) shorter than a (60bp), aligned end to end.
	if !strings.Contains(lines[1], "contains") {
		t.Errorf("record 2 should classify as contains: %q", lines[1])
	}
}

func TestCartoonEndToEnd(t *testing.T) {
	lasPath := fixture(t)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--output", "cartoon", lasPath, "1"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}
	s := out.String()
	if !strings.Contains(s, "trace pts") || !strings.Contains(s, "=") {
		t.Errorf("cartoon output malformed: %q", s)
	}
}

func TestAlignEndToEnd(t *testing.T) {
	seq := strings.Repeat("acgtacgtag", 6) // 60 bases
	fa := writeFile(t, "reads.fasta", ">r0\n"+seq+"\n>r1\n"+seq+"\n>r2\n"+seq+"\n")
	ovls := []las.Overlap{
		{AIndex: 0, BIndex: 1, ALen: 60, BLen: 60,
			Path: las.Path{ABPos: 0, AEPos: 60, BBPos: 0, BEPos: 60, Diffs: 0, Trace: []uint16{0, 60}}},
	}
	lasPath := writeLas(t, "aln.las", 100, ovls)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--output", "align", "--width", "40", fa, lasPath}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}
	s := out.String()
	if !strings.Contains(s, "|") {
		t.Errorf("alignment gutter missing: %q", s)
	}
	if !strings.Contains(s, "acgtacgtag") {
		t.Errorf("sequence rows missing: %q", s)
	}
}

func TestZeroAcceptedStillSucceeds(t *testing.T) {
	lasPath := fixture(t)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{lasPath, "500-600"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("zero accepted records must exit 0, got %d: %s", code, errBuf.String())
	}
}

func TestFatalErrorsExitOne(t *testing.T) {
	lasPath := fixture(t)

	var out, errBuf bytes.Buffer
	if code := app.Run([]string{"missing.las"}, &out, &errBuf); code != 1 {
		t.Errorf("unopenable file: want exit 1, got %d", code)
	}

	out.Reset()
	errBuf.Reset()
	if code := app.Run([]string{lasPath, "5-2"}, &out, &errBuf); code != 1 {
		t.Errorf("malformed range: want exit 1, got %d", code)
	}
	if !strings.Contains(errBuf.String(), "5-2") {
		t.Errorf("error should name the offending token: %q", errBuf.String())
	}

	out.Reset()
	errBuf.Reset()
	if code := app.Run([]string{"--output", "nope", lasPath}, &out, &errBuf); code != 1 {
		t.Errorf("bad flag value: want exit 1, got %d", code)
	}
}

func TestTruncatedStreamExitOne(t *testing.T) {
	lasPath := fixture(t)
	raw, err := os.ReadFile(lasPath)
	if err != nil {
		t.Fatal(err)
	}
	cut := writeFile(t, "cut.las", string(raw[:len(raw)-10]))

	var out, errBuf bytes.Buffer
	if code := app.Run([]string{cut}, &out, &errBuf); code != 1 {
		t.Errorf("truncated stream: want exit 1, got %d", code)
	}
	if errBuf.Len() == 0 {
		t.Errorf("truncation should be reported to stderr")
	}
}

func TestVersion(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := app.Run([]string{"--version"}, &out, &errBuf); code != 0 {
		t.Fatalf("version exit %d", code)
	}
	if !strings.Contains(out.String(), "laview version") {
		t.Errorf("bad version output %q", out.String())
	}
}
