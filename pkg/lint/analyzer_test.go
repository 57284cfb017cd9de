package lint_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habittracker/structlint/pkg/lint"
	"github.com/habittracker/structlint/pkg/syntax"
	"github.com/habittracker/structlint/pkg/syntax/syntaxtest"
)

// kindRule reports every visited node of the given kinds.
func kindRule(id string, sev lint.Severity, kinds ...syntax.Kind) lint.Rule {
	return lint.WrapRuleDef(lint.RuleDef{
		ID:       id,
		Severity: sev,
		Kinds:    kinds,
		Visit: func(n *syntax.Node, sink lint.Sink) {
			sink.Report(lint.Diagnostic{Line: n.Line, Message: n.Kind.String()})
		},
	})
}

func sampleTree() *syntax.Node {
	return syntaxtest.File(
		syntaxtest.Class(1, "Order", nil,
			syntaxtest.Field(2, "String", "name"),
			syntaxtest.Method(3, "run", nil, syntaxtest.Call(4, "assertEquals")),
		),
	)
}

func TestAnalyzer_DispatchesByKind(t *testing.T) {
	rules := []lint.Rule{
		kindRule("AA01", lint.SeverityWarning, syntax.KindFieldDeclaration),
		kindRule("BB01", lint.SeverityError, syntax.KindClassDeclaration, syntax.KindMethodCall),
	}

	analyzer, err := lint.NewAnalyzerWithRules(lint.NewConfig(), rules)
	require.NoError(t, err)

	diags := analyzer.Analyze(sampleTree())
	require.Len(t, diags, 3)

	// Pre-order: class, field, call.
	assert.Equal(t, "BB01", diags[0].RuleID)
	assert.Equal(t, "ClassDeclaration", diags[0].Message)
	assert.Equal(t, 1, diags[0].Line)
	assert.Equal(t, lint.SeverityError, diags[0].Severity)

	assert.Equal(t, "AA01", diags[1].RuleID)
	assert.Equal(t, 2, diags[1].Line)
	assert.Equal(t, lint.SeverityWarning, diags[1].Severity)

	assert.Equal(t, "BB01", diags[2].RuleID)
	assert.Equal(t, "MethodCall", diags[2].Message)
	assert.Equal(t, 4, diags[2].Line)
}

func TestAnalyzer_NilTree(t *testing.T) {
	analyzer, err := lint.NewAnalyzerWithRules(nil, []lint.Rule{
		kindRule("AA01", lint.SeverityWarning, syntax.KindOther),
	})
	require.NoError(t, err)
	assert.Empty(t, analyzer.Analyze(nil))
}

func TestConfig_DisableRule(t *testing.T) {
	cfg := lint.NewConfig().Disable("AA01")

	analyzer, err := lint.NewAnalyzerWithRules(cfg, []lint.Rule{
		kindRule("AA01", lint.SeverityWarning, syntax.KindFieldDeclaration),
		kindRule("BB01", lint.SeverityWarning, syntax.KindFieldDeclaration),
	})
	require.NoError(t, err)
	require.Len(t, analyzer.Rules(), 1)

	diags := analyzer.Analyze(sampleTree())
	require.Len(t, diags, 1)
	assert.Equal(t, "BB01", diags[0].RuleID, "disabled rule should not produce diagnostics")
}

func TestConfig_EnableOnly(t *testing.T) {
	cfg := lint.NewConfig().EnableOnly("BB01")

	assert.True(t, cfg.IsDisabled("AA01"))
	assert.False(t, cfg.IsDisabled("BB01"))

	analyzer, err := lint.NewAnalyzerWithRules(cfg, []lint.Rule{
		kindRule("AA01", lint.SeverityWarning, syntax.KindFieldDeclaration),
		kindRule("BB01", lint.SeverityWarning, syntax.KindFieldDeclaration),
	})
	require.NoError(t, err)

	diags := analyzer.Analyze(sampleTree())
	require.Len(t, diags, 1)
	assert.Equal(t, "BB01", diags[0].RuleID)
}

func TestConfig_SeverityOverride(t *testing.T) {
	cfg := lint.NewConfig().SetSeverity("AA01", lint.SeverityHint)

	analyzer, err := lint.NewAnalyzerWithRules(cfg, []lint.Rule{
		kindRule("AA01", lint.SeverityError, syntax.KindFieldDeclaration),
	})
	require.NoError(t, err)

	diags := analyzer.Analyze(sampleTree())
	require.Len(t, diags, 1)
	assert.Equal(t, lint.SeverityHint, diags[0].Severity)
}

func TestConfig_NilConfig(t *testing.T) {
	var cfg *lint.Config

	assert.False(t, cfg.IsDisabled("ANY"))
	assert.Equal(t, lint.SeverityInfo, cfg.GetSeverity("ANY", lint.SeverityInfo))
	assert.Nil(t, cfg.GetRuleOptions("ANY"))
}

func TestAnalyzer_RuleOptions(t *testing.T) {
	configurable := lint.WrapRuleDef(lint.RuleDef{
		ID:    "CF01",
		Kinds: []syntax.Kind{syntax.KindClassDeclaration},
		Visit: func(n *syntax.Node, sink lint.Sink) {
			sink.Report(lint.Diagnostic{Line: n.Line, Message: "default"})
		},
		Configure: func(opts map[string]any) (lint.VisitFunc, error) {
			var tables struct {
				Message string `option:"message"`
			}
			if err := lint.DecodeOptions(opts, &tables); err != nil {
				return nil, err
			}
			return func(n *syntax.Node, sink lint.Sink) {
				sink.Report(lint.Diagnostic{Line: n.Line, Message: tables.Message})
			}, nil
		},
	})

	t.Run("options applied", func(t *testing.T) {
		cfg := lint.NewConfig().SetRuleOptions("CF01", map[string]any{"message": "configured"})
		analyzer, err := lint.NewAnalyzerWithRules(cfg, []lint.Rule{configurable})
		require.NoError(t, err)

		diags := analyzer.Analyze(sampleTree())
		require.Len(t, diags, 1)
		assert.Equal(t, "configured", diags[0].Message)
	})

	t.Run("unknown option key", func(t *testing.T) {
		cfg := lint.NewConfig().SetRuleOptions("CF01", map[string]any{"mesage": "typo"})
		_, err := lint.NewAnalyzerWithRules(cfg, []lint.Rule{configurable})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mesage")
	})

	t.Run("options for unknown rule", func(t *testing.T) {
		cfg := lint.NewConfig().SetRuleOptions("XX99", map[string]any{"message": "x"})
		_, err := lint.NewAnalyzerWithRules(cfg, []lint.Rule{configurable})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "XX99")
	})
}

func TestAnalyzer_PanickingRuleIsContained(t *testing.T) {
	panicky := lint.WrapRuleDef(lint.RuleDef{
		ID:    "PN01",
		Kinds: []syntax.Kind{syntax.KindFieldDeclaration},
		Visit: func(*syntax.Node, lint.Sink) { panic("boom") },
	})

	analyzer, err := lint.NewAnalyzerWithRules(nil, []lint.Rule{
		panicky,
		kindRule("AA01", lint.SeverityWarning, syntax.KindFieldDeclaration),
	})
	require.NoError(t, err)

	var logs bytes.Buffer
	analyzer.WithLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	diags := analyzer.Analyze(sampleTree())
	require.Len(t, diags, 1)
	assert.Equal(t, "AA01", diags[0].RuleID)

	assert.Contains(t, logs.String(), "rule panicked")
	assert.Contains(t, logs.String(), "rule=PN01")
	assert.Contains(t, logs.String(), "panic=boom")
}

func TestAnalyzer_DocumentationURL(t *testing.T) {
	lint.SetDocsBaseURL("https://lint.example.test/rules/")
	t.Cleanup(lint.ResetDocsBaseURL)

	analyzer, err := lint.NewAnalyzerWithRules(nil, []lint.Rule{
		kindRule("AA01", lint.SeverityWarning, syntax.KindFieldDeclaration),
	})
	require.NoError(t, err)

	diags := analyzer.Analyze(sampleTree())
	require.Len(t, diags, 1)
	assert.Equal(t, "https://lint.example.test/rules/aa01", diags[0].DocumentationURL)
}

func TestBuildDocURL_Unset(t *testing.T) {
	lint.ResetDocsBaseURL()
	assert.Empty(t, lint.BuildDocURL("PR01"))
}

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity lint.Severity
		want     string
	}{
		{lint.SeverityError, "error"},
		{lint.SeverityWarning, "warning"},
		{lint.SeverityInfo, "info"},
		{lint.SeverityHint, "hint"},
		{lint.Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.severity.String())
		})
	}
}

func TestParseSeverity(t *testing.T) {
	for _, name := range []string{"error", "Warning", " INFO ", "hint"} {
		t.Run(name, func(t *testing.T) {
			_, ok := lint.ParseSeverity(name)
			assert.True(t, ok)
		})
	}

	sev, ok := lint.ParseSeverity("fatal")
	assert.False(t, ok)
	assert.Equal(t, lint.SeverityWarning, sev)
}

func TestSeverity_Text(t *testing.T) {
	var sev lint.Severity
	require.NoError(t, sev.UnmarshalText([]byte("hint")))
	assert.Equal(t, lint.SeverityHint, sev)

	text, err := lint.SeverityError.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "error", string(text))

	assert.Error(t, sev.UnmarshalText([]byte("fatal")))
}

func ExampleAnalyzer_Analyze() {
	rule := lint.WrapRuleDef(lint.RuleDef{
		ID:    "EX01",
		Kinds: []syntax.Kind{syntax.KindClassDeclaration},
		Visit: func(n *syntax.Node, sink lint.Sink) {
			sink.Report(lint.Diagnostic{Line: n.Line, Message: "class " + n.Name()})
		},
	})

	analyzer, _ := lint.NewAnalyzerWithRules(nil, []lint.Rule{rule})
	for _, d := range analyzer.Analyze(syntaxtest.Class(4, "Plan", nil)) {
		fmt.Printf("%s:%d %s\n", d.RuleID, d.Line, d.Message)
	}
	// Output: EX01:4 class Plan
}
