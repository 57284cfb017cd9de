package testcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habittracker/structlint/pkg/lint"
	"github.com/habittracker/structlint/pkg/syntax"
	"github.com/habittracker/structlint/pkg/syntax/syntaxtest"
)

func TestIsTestClass(t *testing.T) {
	check := NewAssertionStyleCheck(DefaultAssertionStyleTables())

	lifecycle := func(name string) *syntax.Node {
		return syntaxtest.Method(3, "setUp", syntaxtest.Annotations(syntaxtest.Annotation(3, name)))
	}

	assert.True(t, check.isTestClass(syntaxtest.Class(1, "A", nil, lifecycle("BeforeEach"))))
	assert.True(t, check.isTestClass(syntaxtest.Class(1, "A", syntaxtest.Annotations(syntaxtest.Annotation(1, "Test")))))
	assert.False(t, check.isTestClass(syntaxtest.Class(1, "A", nil, lifecycle("Override"))))
	assert.False(t, check.isTestClass(syntaxtest.Class(1, "A", nil)))

	// Methods of nested classes are not direct members.
	nested := syntaxtest.Class(2, "Inner", nil, lifecycle("Test"))
	assert.False(t, check.isTestClass(syntaxtest.Class(1, "Outer", nil, nested)))
}

func TestCheckLifecycleAnnotations_Message(t *testing.T) {
	// Reachable only in isolation: checkClass gates on isTestClass first.
	check := NewAssertionStyleCheck(DefaultAssertionStyleTables())

	var got lint.Collector
	check.checkLifecycleAnnotations(syntaxtest.Class(7, "Plan", nil), &got)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].Line)
	assert.Equal(t, "Class does not contain test lifecycle annotations; add appropriate JUnit annotations", got[0].Message)

	got = nil
	check.checkClass(syntaxtest.Class(7, "Plan", nil), &got)
	assert.Empty(t, got)
}
