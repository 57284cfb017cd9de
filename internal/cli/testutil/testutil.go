// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/habittracker/structlint/internal/cli/output"
	"github.com/habittracker/structlint/pkg/syntax"
	"github.com/habittracker/structlint/pkg/syntax/syntaxtest"
)

// SetupTestProject creates a temporary project with a structlint.yaml and a
// trees/ directory holding JSON tree documents:
//
//	trees/model/Plan.java.json      entity with an unannotated field (PR01, ST01)
//	trees/model/Habit.java.json     clean entity
//	trees/test/PlanTest.java.json   test class using assertEquals (TS01)
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	dirs := []string{
		filepath.Join(tmpDir, "trees", "model"),
		filepath.Join(tmpDir, "trees", "test"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "structlint.yaml"),
		[]byte("trees_dir: trees\n"), 0644); err != nil {
		t.Fatalf("failed to create structlint.yaml: %v", err)
	}

	plan := syntaxtest.Class(3, "Plan", syntaxtest.Annotations(syntaxtest.Annotation(2, "Entity")),
		syntaxtest.Field(5, "Long", "id", syntaxtest.Annotation(4, "Id")),
		syntaxtest.Field(7, "String", "title"),
	)
	habit := syntaxtest.Class(3, "Habit", syntaxtest.Annotations(
		syntaxtest.Annotation(1, "Entity"),
		syntaxtest.Annotation(2, "Data"),
	),
		syntaxtest.Field(5, "String", "name", syntaxtest.Annotation(4, "Column", "name")),
	)
	planTest := syntaxtest.Class(1, "PlanTest", nil,
		syntaxtest.Method(3, "savesPlan", syntaxtest.Annotations(syntaxtest.Annotation(2, "Test")),
			syntaxtest.Call(4, "assertEquals"),
			syntaxtest.Call(5, "assertThat"),
		),
	)

	WriteTree(t, filepath.Join(tmpDir, "trees", "model", "Plan.java.json"), syntaxtest.File(plan))
	WriteTree(t, filepath.Join(tmpDir, "trees", "model", "Habit.java.json"), syntaxtest.File(habit))
	WriteTree(t, filepath.Join(tmpDir, "trees", "test", "PlanTest.java.json"), syntaxtest.File(planTest))

	return tmpDir
}

// WriteTree encodes root as a tree document in the format implied by path.
func WriteTree(t *testing.T, path string, root *syntax.Node) {
	t.Helper()

	format, err := syntax.FormatFromPath(path)
	if err != nil {
		t.Fatalf("unsupported tree document %s: %v", path, err)
	}
	var buf bytes.Buffer
	if err := syntax.Encode(&buf, root, format); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererAuto creates a new test renderer with auto mode detection.
// In tests, non-TTY defaults to markdown output.
func NewTestRendererAuto() *TestRenderer {
	return NewTestRenderer(output.ModeAuto, false)
}

// NewTestRendererText creates a new test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the combined stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// Reset clears both output buffers.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertContains checks that the string contains the expected substring.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("string %q does not contain expected %q", s, expected)
	}
}

// AssertNotContains checks that the string does not contain the substring.
func AssertNotContains(t *testing.T, s, unexpected string) {
	t.Helper()
	if strings.Contains(s, unexpected) {
		t.Errorf("string %q unexpectedly contains %q", s, unexpected)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and basic structure.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	// Check for balanced code fences
	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	// Check that headers have content
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}

// AssertOutputMode checks that the renderer output matches expected mode characteristics.
func AssertOutputMode(t *testing.T, tr *TestRenderer, expectedMode output.OutputMode) {
	t.Helper()

	combinedOutput := tr.Output() + tr.ErrorOutput()

	switch expectedMode {
	case output.ModeMarkdown:
		AssertNoANSI(t, combinedOutput)
		// Markdown mode should not contain ANSI codes
	case output.ModeText:
		// Text mode may contain ANSI codes if TTY
		// No specific assertion needed
	case output.ModeJSON:
		AssertNoANSI(t, combinedOutput)
		// JSON mode should not contain ANSI codes
	}
}
