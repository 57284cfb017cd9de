package lint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habittracker/structlint/pkg/syntax"
)

// mockRule implements Rule for testing
type mockRule struct {
	id          string
	name        string
	group       string
	description string
	severity    Severity
	configKeys  []string
	kinds       []syntax.Kind
}

func (m *mockRule) ID() string                { return m.id }
func (m *mockRule) Name() string              { return m.name }
func (m *mockRule) Group() string             { return m.group }
func (m *mockRule) Description() string       { return m.description }
func (m *mockRule) DefaultSeverity() Severity { return m.severity }
func (m *mockRule) ConfigKeys() []string      { return m.configKeys }
func (m *mockRule) Kinds() []syntax.Kind      { return m.kinds }

// Documentation methods (return empty for mocks)
func (m *mockRule) Rationale() string   { return "" }
func (m *mockRule) BadExample() string  { return "" }
func (m *mockRule) GoodExample() string { return "" }
func (m *mockRule) Fix() string         { return "" }

func (m *mockRule) Visit(_ *syntax.Node, _ Sink) {}

func TestGetRuleInfo(t *testing.T) {
	rule := &mockRule{
		id:          "TST01",
		name:        "test-rule",
		group:       "testing",
		description: "A test rule",
		severity:    SeverityWarning,
		configKeys:  []string{"opt1"},
		kinds:       []syntax.Kind{syntax.KindClassDeclaration, syntax.KindMethodCall},
	}

	info := GetRuleInfo(rule)

	assert.Equal(t, "TST01", info.ID)
	assert.Equal(t, "test-rule", info.Name)
	assert.Equal(t, "testing", info.Group)
	assert.Equal(t, "A test rule", info.Description)
	assert.Equal(t, SeverityWarning, info.DefaultSeverity)
	assert.Equal(t, []string{"opt1"}, info.ConfigKeys)
	assert.Equal(t, []string{"ClassDeclaration", "MethodCall"}, info.Kinds)
}

func TestWrapRuleDef(t *testing.T) {
	def := RuleDef{
		ID:          "WRAP01",
		Name:        "wrapped-rule",
		Group:       "wrapper",
		Description: "A wrapped rule",
		Severity:    SeverityInfo,
		ConfigKeys:  []string{"key1", "key2"},
		Kinds:       []syntax.Kind{syntax.KindFieldDeclaration},
		Rationale:   "because",
		Visit: func(n *syntax.Node, sink Sink) {
			sink.Report(Diagnostic{Line: n.Line, Message: "test"})
		},
	}

	wrapped := WrapRuleDef(def)

	// Test all methods
	assert.Equal(t, "WRAP01", wrapped.ID())
	assert.Equal(t, "wrapped-rule", wrapped.Name())
	assert.Equal(t, "wrapper", wrapped.Group())
	assert.Equal(t, "A wrapped rule", wrapped.Description())
	assert.Equal(t, SeverityInfo, wrapped.DefaultSeverity())
	assert.Equal(t, []string{"key1", "key2"}, wrapped.ConfigKeys())
	assert.Equal(t, []syntax.Kind{syntax.KindFieldDeclaration}, wrapped.Kinds())
	assert.Equal(t, "because", wrapped.Rationale())

	// Visit delegates to the wrapped function
	var got Collector
	wrapped.Visit(syntax.New(syntax.KindFieldDeclaration, 7), &got)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].Line)
	assert.Equal(t, "test", got[0].Message)
}

func TestWrapRuleDef_NilVisit(t *testing.T) {
	wrapped := WrapRuleDef(RuleDef{ID: "NIL01"})

	var got Collector
	wrapped.Visit(syntax.New(syntax.KindOther, 1), &got)
	assert.Empty(t, got)
}

func TestWrapRuleDef_WithOptions(t *testing.T) {
	report := func(msg string) VisitFunc {
		return func(n *syntax.Node, sink Sink) {
			sink.Report(Diagnostic{Line: n.Line, Message: msg})
		}
	}

	def := RuleDef{
		ID:    "OPT01",
		Kinds: []syntax.Kind{syntax.KindClassDeclaration},
		Visit: report("default"),
		Configure: func(opts map[string]any) (VisitFunc, error) {
			msg, _ := opts["message"].(string)
			if msg == "" {
				return nil, errors.New("message must be a non-empty string")
			}
			return report(msg), nil
		},
	}
	base := WrapRuleDef(def)
	node := syntax.New(syntax.KindClassDeclaration, 3)

	t.Run("no options returns the receiver", func(t *testing.T) {
		r, err := base.WithOptions(nil)
		require.NoError(t, err)
		assert.Same(t, base, r)
	})

	t.Run("options rebuild the visit callback", func(t *testing.T) {
		r, err := base.WithOptions(map[string]any{"message": "custom"})
		require.NoError(t, err)

		var got Collector
		r.Visit(node, &got)
		require.Len(t, got, 1)
		assert.Equal(t, "custom", got[0].Message)

		// The original rule keeps its default tables.
		var orig Collector
		base.Visit(node, &orig)
		require.Len(t, orig, 1)
		assert.Equal(t, "default", orig[0].Message)
	})

	t.Run("configure error is wrapped", func(t *testing.T) {
		_, err := base.WithOptions(map[string]any{"message": 42})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid options for rule OPT01")
	})

	t.Run("rule without Configure rejects options", func(t *testing.T) {
		_, err := WrapRuleDef(RuleDef{ID: "FIX01"}).WithOptions(map[string]any{"x": 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "accepts no options")
	})
}

func TestRegistry(t *testing.T) {
	clearRegistry()
	t.Cleanup(clearRegistry)

	Register(RuleDef{ID: "REG02", Name: "second", Group: "testing"})
	RegisterRule(&mockRule{id: "REG01", name: "first", group: "testing"})
	RegisterRule(&mockRule{id: "REG03", name: "other", group: "structure"})

	assert.Len(t, GetAllRules(), 3)

	// Test GetAllRules is sorted by ID
	rules := GetAllRules()
	require.Len(t, rules, 3)
	assert.Equal(t, "REG01", rules[0].ID())
	assert.Equal(t, "REG02", rules[1].ID())
	assert.Equal(t, "REG03", rules[2].ID())

	// Test AllRules metadata
	infos := AllRules()
	require.Len(t, infos, 3)
	assert.Equal(t, "second", infos[1].Name)

	// Test GetRuleByID
	found, ok := GetRuleByID("REG02")
	require.True(t, ok)
	assert.Equal(t, "second", found.Name())

	_, ok = GetRuleByID("NOTEXIST")
	assert.False(t, ok)

	// Re-registering replaces
	RegisterRule(&mockRule{id: "REG01", name: "replaced"})
	found, _ = GetRuleByID("REG01")
	assert.Equal(t, "replaced", found.Name())
	assert.Len(t, GetAllRules(), 3)

	clearRegistry()
	assert.Empty(t, GetAllRules())
}

func clearRegistry() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules = make(map[string]Rule)
}
