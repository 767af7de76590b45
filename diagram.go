package brandpdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"
	"github.com/rs/zerolog"

	"github.com/alnah/go-brandpdf/internal/process"
)

// diagramTimeout bounds a single diagram render. Exceeding it fails that
// block only; the document continues.
const diagramTimeout = 120 * time.Second

// diagramPattern matches fenced diagram blocks. The (?s) flag lets the lazy
// body group span lines; (?m) anchors the fences to line boundaries.
var diagramPattern = regexp.MustCompile("(?sm)^```(mermaid|dot|graphviz)[ \t]*\n(.*?)^```[ \t]*$")

// DiagramBlock is a located fenced diagram span within a source document.
// Offsets are relative to the original, unmutated text.
type DiagramBlock struct {
	Index  int
	Kind   string
	Source string
	Start  int
	End    int
}

// DiagramRenderer renders one diagram block to an SVG file and returns its
// absolute path.
type DiagramRenderer interface {
	Render(ctx context.Context, block DiagramBlock, theme ThemeParameters) (string, error)
}

// Compile-time interface checks.
var (
	_ DiagramRenderer = (*MermaidRenderer)(nil)
	_ DiagramRenderer = (*DotRenderer)(nil)
)

// DiagramSubstituter replaces fenced diagram blocks with image references.
type DiagramSubstituter struct {
	mermaid DiagramRenderer
	dot     DiagramRenderer
	logger  zerolog.Logger
}

// SubstituterOption configures a DiagramSubstituter.
type SubstituterOption func(*DiagramSubstituter)

// WithMermaidRenderer overrides the mermaid renderer (e.g., by tests).
func WithMermaidRenderer(r DiagramRenderer) SubstituterOption {
	return func(s *DiagramSubstituter) { s.mermaid = r }
}

// WithDotRenderer overrides the DOT renderer.
func WithDotRenderer(r DiagramRenderer) SubstituterOption {
	return func(s *DiagramSubstituter) { s.dot = r }
}

// WithSubstituterLogger sets the progress logger.
func WithSubstituterLogger(logger zerolog.Logger) SubstituterOption {
	return func(s *DiagramSubstituter) { s.logger = logger }
}

// NewDiagramSubstituter creates a substituter writing intermediate diagram
// artifacts into scratchDir. When noSandbox is true the mermaid CLI's
// browser runs without a sandbox (required inside containers).
func NewDiagramSubstituter(scratchDir string, noSandbox bool, opts ...SubstituterOption) *DiagramSubstituter {
	s := &DiagramSubstituter{
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.mermaid == nil {
		s.mermaid = NewMermaidRenderer(scratchDir, noSandbox)
	}
	if s.dot == nil {
		s.dot = NewDotRenderer(scratchDir)
	}
	return s
}

// FindDiagramBlocks scans content for fenced diagram blocks in document
// order. Offsets are computed against the original text in a single forward
// pass; they stay valid because the scan never re-reads mutated output.
func FindDiagramBlocks(content string) []DiagramBlock {
	matches := diagramPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return nil
	}

	blocks := make([]DiagramBlock, 0, len(matches))
	for i, m := range matches {
		blocks = append(blocks, DiagramBlock{
			Index:  i,
			Kind:   content[m[2]:m[3]],
			Source: content[m[4]:m[5]],
			Start:  m[0],
			End:    m[1],
		})
	}
	return blocks
}

// Substitute replaces every renderable diagram block with an image
// reference to its rendered SVG. A block whose render fails keeps its
// original fenced source; failures are counted and logged, never fatal.
// A document with no diagram blocks is returned untouched with zero
// renderer calls.
func (s *DiagramSubstituter) Substitute(ctx context.Context, content string, theme ThemeParameters) string {
	blocks := FindDiagramBlocks(content)
	if len(blocks) == 0 {
		return content
	}

	// Build the output by copying unmatched spans from the immutable input
	// and splicing replacements at the recorded offsets.
	var out strings.Builder
	out.Grow(len(content))

	var rendered, failed int
	last := 0
	for _, block := range blocks {
		out.WriteString(content[last:block.Start])
		last = block.End

		path, err := s.render(ctx, block, theme)
		if err != nil {
			failed++
			s.logger.Warn().Err(err).Int("block", block.Index).Str("kind", block.Kind).
				Msg("diagram render failed, keeping source")
			out.WriteString(content[block.Start:block.End])
			continue
		}

		rendered++
		s.logger.Debug().Int("block", block.Index).Str("kind", block.Kind).Msg("diagram rendered")
		fmt.Fprintf(&out, "![diagram %d](%s)", block.Index+1, path)
	}
	out.WriteString(content[last:])

	s.logger.Info().Int("rendered", rendered).Int("failed", failed).Msg("diagram substitution done")
	return out.String()
}

// render dispatches a block to the renderer for its language tag.
func (s *DiagramSubstituter) render(ctx context.Context, block DiagramBlock, theme ThemeParameters) (string, error) {
	switch block.Kind {
	case "mermaid":
		return s.mermaid.Render(ctx, block, theme)
	case "dot", "graphviz":
		return s.dot.Render(ctx, block, theme)
	default:
		return "", fmt.Errorf("%w: unknown diagram kind %q", ErrDiagramRender, block.Kind)
	}
}

// CommandRunner abstracts subprocess execution to enable testing without
// real subprocesses. Arguments are passed as a list; nothing is shell
// interpreted.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// Run executes name with args in dir, killing the whole process group if
// the context expires. The mermaid CLI spawns a browser child, so a plain
// Process.Kill would leave it behind.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	process.SetGroup(cmd)
	cmd.Cancel = func() error {
		process.KillGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// MermaidRenderer renders mermaid blocks by invoking the mermaid CLI
// (mmdc) as a structured subprocess.
type MermaidRenderer struct {
	Runner     CommandRunner
	ScratchDir string
	NoSandbox  bool
	Timeout    time.Duration
}

// NewMermaidRenderer creates a MermaidRenderer with a real command runner
// and the default per-block timeout.
func NewMermaidRenderer(scratchDir string, noSandbox bool) *MermaidRenderer {
	return &MermaidRenderer{
		Runner:     &ExecRunner{},
		ScratchDir: scratchDir,
		NoSandbox:  noSandbox,
		Timeout:    diagramTimeout,
	}
}

// Render writes the block source and theme config into the scratch
// directory, invokes mmdc once, and returns the SVG path. The invocation is
// bounded by the per-block timeout.
func (m *MermaidRenderer) Render(ctx context.Context, block DiagramBlock, theme ThemeParameters) (string, error) {
	srcPath := filepath.Join(m.ScratchDir, fmt.Sprintf("diagram-%d.mmd", block.Index))
	outPath := filepath.Join(m.ScratchDir, fmt.Sprintf("diagram-%d.svg", block.Index))
	cfgPath := filepath.Join(m.ScratchDir, fmt.Sprintf("diagram-%d.json", block.Index))

	if err := os.WriteFile(srcPath, []byte(block.Source), 0o600); err != nil {
		return "", fmt.Errorf("%w: writing diagram source: %v", ErrDiagramRender, err)
	}

	cfg, err := MarshalMermaidConfig(theme)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiagramRender, err)
	}
	if err := os.WriteFile(cfgPath, cfg, 0o600); err != nil {
		return "", fmt.Errorf("%w: writing theme config: %v", ErrDiagramRender, err)
	}

	args := []string{"-i", srcPath, "-o", outPath, "-c", cfgPath, "-b", "transparent"}
	if m.NoSandbox {
		pptrPath := filepath.Join(m.ScratchDir, "puppeteer.json")
		if err := os.WriteFile(pptrPath, []byte(`{"args":["--no-sandbox"]}`), 0o600); err != nil {
			return "", fmt.Errorf("%w: writing puppeteer config: %v", ErrDiagramRender, err)
		}
		args = append(args, "-p", pptrPath)
	}

	timeout := m.Timeout
	if timeout <= 0 {
		timeout = diagramTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, stderrOut, err := m.Runner.Run(runCtx, m.ScratchDir, "mmdc", args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: mmdc not on PATH", ErrRendererNotFound)
		}
		if runCtx.Err() != nil {
			return "", fmt.Errorf("%w: after %s", ErrDiagramTimeout, timeout)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrDiagramRender, strings.TrimSpace(stderrOut), err)
	}

	return outPath, nil
}

// DotRenderer renders DOT/graphviz blocks in-process via go-graphviz.
type DotRenderer struct {
	ScratchDir string
}

// NewDotRenderer creates a DotRenderer writing SVGs into scratchDir.
func NewDotRenderer(scratchDir string) *DotRenderer {
	return &DotRenderer{ScratchDir: scratchDir}
}

// Render lays out the graph with brand-themed default attributes and writes
// the resulting SVG into the scratch directory.
func (d *DotRenderer) Render(ctx context.Context, block DiagramBlock, theme ThemeParameters) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: init graphviz: %v", ErrDiagramRender, err)
	}
	defer gv.Close()

	themed := themeDotSource(block.Source, theme)
	graph, err := graphviz.ParseBytes([]byte(themed))
	if err != nil {
		return "", fmt.Errorf("%w: parse DOT: %v", ErrDiagramRender, err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.SVG, &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDiagramRender, err)
	}

	outPath := filepath.Join(d.ScratchDir, fmt.Sprintf("diagram-%d.svg", block.Index))
	if err := os.WriteFile(outPath, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("%w: writing SVG: %v", ErrDiagramRender, err)
	}
	return outPath, nil
}

// themeDotSource injects brand-colored default attributes right after the
// opening brace. Defaults only: attributes written in the diagram source
// still win.
func themeDotSource(source string, theme ThemeParameters) string {
	idx := strings.Index(source, "{")
	if idx == -1 {
		return source
	}

	defaults := fmt.Sprintf(
		"\n  bgcolor=\"transparent\";\n"+
			"  node [shape=box, style=\"rounded,filled\", fillcolor=%q, color=%q, fontcolor=%q];\n"+
			"  edge [color=%q, fontcolor=%q];\n",
		theme["primaryColor"], theme["primaryBorderColor"], theme["primaryTextColor"],
		theme["lineColor"], theme["textColor"])

	return source[:idx+1] + defaults + source[idx+1:]
}
