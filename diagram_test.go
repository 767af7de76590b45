package brandpdf

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fakeRenderer implements DiagramRenderer for tests. failOn holds block
// indexes that should fail.
type fakeRenderer struct {
	calls  int
	failOn map[int]bool
}

func (f *fakeRenderer) Render(_ context.Context, block DiagramBlock, _ ThemeParameters) (string, error) {
	f.calls++
	if f.failOn[block.Index] {
		return "", fmt.Errorf("%w: boom", ErrDiagramRender)
	}
	return fmt.Sprintf("/scratch/diagram-%d.svg", block.Index), nil
}

func newTestSubstituter(mermaid, dot DiagramRenderer) *DiagramSubstituter {
	return NewDiagramSubstituter("", false,
		WithMermaidRenderer(mermaid),
		WithDotRenderer(dot),
	)
}

// ---------------------------------------------------------------------------
// TestFindDiagramBlocks - Forward scan over immutable text
// ---------------------------------------------------------------------------

func TestFindDiagramBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []DiagramBlock
	}{
		{
			name:    "no blocks",
			content: "# Title\n\nplain text\n",
			want:    nil,
		},
		{
			name:    "plain code fence is not a diagram",
			content: "```go\nfunc main() {}\n```\n",
			want:    nil,
		},
		{
			name:    "single mermaid block",
			content: "before\n```mermaid\ngraph TD;\nA-->B\n```\nafter\n",
			want: []DiagramBlock{
				{Index: 0, Kind: "mermaid", Source: "graph TD;\nA-->B\n"},
			},
		},
		{
			name:    "mixed kinds in document order",
			content: "```mermaid\nfirst\n```\n\ntext\n\n```dot\ndigraph G {}\n```\n\n```graphviz\ndigraph H {}\n```\n",
			want: []DiagramBlock{
				{Index: 0, Kind: "mermaid", Source: "first\n"},
				{Index: 1, Kind: "dot", Source: "digraph G {}\n"},
				{Index: 2, Kind: "graphviz", Source: "digraph H {}\n"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FindDiagramBlocks(tt.content)
			if len(got) != len(tt.want) {
				t.Fatalf("found %d blocks, want %d", len(got), len(tt.want))
			}
			for i, block := range got {
				if block.Index != tt.want[i].Index || block.Kind != tt.want[i].Kind || block.Source != tt.want[i].Source {
					t.Errorf("block %d = {%d %q %q}, want {%d %q %q}",
						i, block.Index, block.Kind, block.Source,
						tt.want[i].Index, tt.want[i].Kind, tt.want[i].Source)
				}
				// Offsets must slice the original text back to the full fence.
				span := tt.content[block.Start:block.End]
				if !strings.HasPrefix(span, "```"+block.Kind) || !strings.HasSuffix(span, "```") {
					t.Errorf("block %d offsets [%d:%d] slice %q, not a full fence", i, block.Start, block.End, span)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSubstituteNoOpFastPath - Zero blocks, zero renderer calls
// ---------------------------------------------------------------------------

func TestSubstituteNoOpFastPath(t *testing.T) {
	t.Parallel()

	mermaid := &fakeRenderer{}
	dot := &fakeRenderer{}
	sub := newTestSubstituter(mermaid, dot)

	content := "# Doc\n\n```go\ncode, not a diagram\n```\n"
	got := sub.Substitute(context.Background(), content, nil)

	if got != content {
		t.Error("output differs from input for a diagram-free document")
	}
	if mermaid.calls != 0 || dot.calls != 0 {
		t.Errorf("renderer calls = %d/%d, want 0/0", mermaid.calls, dot.calls)
	}
}

// ---------------------------------------------------------------------------
// TestSubstituteGracefulDegradation - Failed block keeps its source
// ---------------------------------------------------------------------------

func TestSubstituteGracefulDegradation(t *testing.T) {
	t.Parallel()

	content := "intro\n" +
		"```mermaid\nfirst\n```\n" +
		"middle\n" +
		"```mermaid\nsecond\n```\n" +
		"more\n" +
		"```mermaid\nthird\n```\n" +
		"outro\n"

	mermaid := &fakeRenderer{failOn: map[int]bool{1: true}}
	sub := newTestSubstituter(mermaid, &fakeRenderer{})

	got := sub.Substitute(context.Background(), content, nil)

	if mermaid.calls != 3 {
		t.Errorf("renderer calls = %d, want 3", mermaid.calls)
	}
	for _, want := range []string{
		"![diagram 1](/scratch/diagram-0.svg)",
		"```mermaid\nsecond\n```",
		"![diagram 3](/scratch/diagram-2.svg)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
	for _, absent := range []string{"```mermaid\nfirst", "```mermaid\nthird", "![diagram 2]"} {
		if strings.Contains(got, absent) {
			t.Errorf("output unexpectedly contains %q", absent)
		}
	}
	// Prose around the blocks survives untouched.
	for _, want := range []string{"intro\n", "middle\n", "more\n", "outro\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing surrounding text %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestSubstituteRepeatedLiteralBlocks - Identical sources don't drift
// ---------------------------------------------------------------------------

func TestSubstituteRepeatedLiteralBlocks(t *testing.T) {
	t.Parallel()

	// Two byte-identical blocks: a re-scan-after-mutation strategy would
	// corrupt offsets here; the single forward scan must not.
	content := "```mermaid\nsame\n```\nbetween\n```mermaid\nsame\n```\n"

	mermaid := &fakeRenderer{failOn: map[int]bool{0: true}}
	sub := newTestSubstituter(mermaid, &fakeRenderer{})

	got := sub.Substitute(context.Background(), content, nil)

	if want := "```mermaid\nsame\n```\nbetween\n![diagram 2](/scratch/diagram-1.svg)\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestMermaidRenderer - Structured subprocess invocation
// ---------------------------------------------------------------------------

// fakeRunner records the invocation instead of executing it.
type fakeRunner struct {
	lastName string
	lastDir  string
	lastArgs []string
	stderr   string
	err      error
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) (string, string, error) {
	f.lastName = name
	f.lastDir = dir
	f.lastArgs = args
	return "", f.stderr, f.err
}

func TestMermaidRenderer(t *testing.T) {
	t.Parallel()

	block := DiagramBlock{Index: 0, Kind: "mermaid", Source: "graph TD;\nA-->B\n"}
	theme := DeriveDiagramTheme(DefaultBrand().Colors)

	t.Run("invokes mmdc with argument list", func(t *testing.T) {
		t.Parallel()

		scratch := t.TempDir()
		runner := &fakeRunner{}
		r := NewMermaidRenderer(scratch, false)
		r.Runner = runner

		out, err := r.Render(context.Background(), block, theme)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if runner.lastName != "mmdc" {
			t.Errorf("command = %q, want mmdc", runner.lastName)
		}
		if runner.lastDir != scratch {
			t.Errorf("dir = %q, want scratch %q", runner.lastDir, scratch)
		}
		if out != filepath.Join(scratch, "diagram-0.svg") {
			t.Errorf("output path = %q", out)
		}
		joined := strings.Join(runner.lastArgs, " ")
		for _, want := range []string{"-i ", "-o ", "-c "} {
			if !strings.Contains(joined, want) {
				t.Errorf("args %q missing %q", joined, want)
			}
		}
		if strings.Contains(joined, "-p ") {
			t.Errorf("args %q carry a puppeteer config without sandbox disabled", joined)
		}
	})

	t.Run("no-sandbox adds puppeteer config", func(t *testing.T) {
		t.Parallel()

		runner := &fakeRunner{}
		r := NewMermaidRenderer(t.TempDir(), true)
		r.Runner = runner

		if _, err := r.Render(context.Background(), block, theme); err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !strings.Contains(strings.Join(runner.lastArgs, " "), "-p ") {
			t.Error("args missing puppeteer config flag")
		}
	})

	t.Run("missing mmdc maps to ErrRendererNotFound", func(t *testing.T) {
		t.Parallel()

		r := NewMermaidRenderer(t.TempDir(), false)
		r.Runner = &fakeRunner{err: exec.ErrNotFound}

		_, err := r.Render(context.Background(), block, theme)
		if !errors.Is(err, ErrRendererNotFound) {
			t.Errorf("err = %v, want ErrRendererNotFound", err)
		}
	})

	t.Run("renderer failure maps to ErrDiagramRender", func(t *testing.T) {
		t.Parallel()

		r := NewMermaidRenderer(t.TempDir(), false)
		r.Runner = &fakeRunner{stderr: "parse error", err: errors.New("exit status 1")}

		_, err := r.Render(context.Background(), block, theme)
		if !errors.Is(err, ErrDiagramRender) {
			t.Errorf("err = %v, want ErrDiagramRender", err)
		}
		if !strings.Contains(err.Error(), "parse error") {
			t.Errorf("err %q missing renderer stderr", err)
		}
	})

	t.Run("expired context maps to ErrDiagramTimeout", func(t *testing.T) {
		t.Parallel()

		r := NewMermaidRenderer(t.TempDir(), false)
		r.Timeout = time.Nanosecond
		r.Runner = &fakeRunner{err: context.DeadlineExceeded}

		_, err := r.Render(context.Background(), block, theme)
		if !errors.Is(err, ErrDiagramTimeout) {
			t.Errorf("err = %v, want ErrDiagramTimeout", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestThemeDotSource - Defaults injected, explicit attributes preserved
// ---------------------------------------------------------------------------

func TestThemeDotSource(t *testing.T) {
	t.Parallel()

	theme := DeriveDiagramTheme(DefaultBrand().Colors)
	source := "digraph G {\n  a -> b [color=red];\n}\n"

	got := themeDotSource(source, theme)

	if !strings.Contains(got, `bgcolor="transparent"`) {
		t.Error("themed source missing background default")
	}
	if !strings.Contains(got, theme["primaryColor"]) {
		t.Error("themed source missing node fill color")
	}
	if !strings.Contains(got, "a -> b [color=red];") {
		t.Error("explicit edge attributes were lost")
	}
	if before := strings.Index(got, "node ["); before > strings.Index(got, "a -> b") {
		t.Error("defaults must come before the graph body")
	}

	// Source with no opening brace passes through untouched.
	if got := themeDotSource("not dot", theme); got != "not dot" {
		t.Errorf("malformed source mutated: %q", got)
	}
}
