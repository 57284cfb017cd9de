package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habittracker/structlint/internal/cli/testutil"
	"github.com/habittracker/structlint/pkg/lint"
)

func runRulesCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRulesCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestNewRulesCommand(t *testing.T) {
	cmd := NewRulesCommand()

	assert.Equal(t, "rules [rule-id]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"group", "verbose", "format"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRulesCommand_ListAll(t *testing.T) {
	out, err := runRulesCommand(t, "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Lint Rules (3)")
	assert.Contains(t, out, "Persistence")
	assert.Contains(t, out, "Structure")
	assert.Contains(t, out, "Testing")
	for _, id := range []string{"PR01", "ST01", "TS01"} {
		assert.Contains(t, out, id)
	}
}

func TestRulesCommand_FilterByGroup(t *testing.T) {
	out, err := runRulesCommand(t, "--format", "markdown", "--group", "Structure")
	require.NoError(t, err)

	assert.Contains(t, out, "**ST01**")
	assert.NotContains(t, out, "PR01")
	assert.NotContains(t, out, "TS01")

	_, err = runRulesCommand(t, "--group", "naming")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rules in group")
}

func TestRulesCommand_ShowSpecificRule(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{format: "text", want: []string{"PR01 - persistence.column_annotation", "Bad Example", "entity_annotations"}},
		{format: "markdown", want: []string{"# PR01 - persistence.column_annotation", "```java", "## How to Fix"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := runRulesCommand(t, "--format", tt.format, "pr01")
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}

	t.Run("json", func(t *testing.T) {
		out, err := runRulesCommand(t, "--format", "json", "TS01")
		require.NoError(t, err)

		var info lint.RuleInfo
		require.NoError(t, json.Unmarshal([]byte(out), &info))
		assert.Equal(t, "TS01", info.ID)
		assert.Equal(t, "testing", info.Group)
		assert.Equal(t, lint.SeverityWarning, info.DefaultSeverity)
		assert.Equal(t, []string{"MethodCall", "ClassDeclaration"}, info.Kinds)
	})
}

func TestRulesCommand_NotFound(t *testing.T) {
	_, err := runRulesCommand(t, "INVALID99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRulesCommand_JSON(t *testing.T) {
	out, err := runRulesCommand(t, "--format", "json")
	require.NoError(t, err)

	var result RulesJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 3, result.Count.Total)
	assert.Equal(t, map[string]int{"persistence": 1, "structure": 1, "testing": 1}, result.Count.ByGroup)
	require.Len(t, result.Rules, 3)
	assert.Equal(t, "PR01", result.Rules[0].ID)
}

func TestRulesCommand_Markdown(t *testing.T) {
	out, err := runRulesCommand(t, "--format", "markdown", "--verbose")
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Lint Rules")
	assert.Contains(t, out, "## Persistence")
	assert.Contains(t, out, "(`warning`)")
}

func TestTruncateOneLine(t *testing.T) {
	assert.Equal(t, "a b", truncateOneLine("a\n  b", 10))
	assert.Equal(t, "abcd...", truncateOneLine("abcdefghij", 7))
}
