package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseline_Filter(t *testing.T) {
	plan := Finding{Path: "Plan.java.json", RuleID: "PR01", Message: "m", Line: 4}
	moved := plan
	moved.Line = 9
	other := Finding{Path: "Plan.java.json", RuleID: "ST01", Message: "s", Line: 1}

	tests := []struct {
		name           string
		baseline       *Baseline
		current        []Finding
		wantKept       []Finding
		wantSuppressed int
	}{
		{
			name:     "nil baseline keeps everything",
			baseline: nil,
			current:  []Finding{plan, other},
			wantKept: []Finding{plan, other},
		},
		{
			name:           "line changes are still matched",
			baseline:       NewBaseline("r1", []Finding{plan}),
			current:        []Finding{moved, other},
			wantKept:       []Finding{other},
			wantSuppressed: 1,
		},
		{
			name:           "each recorded finding suppresses once",
			baseline:       NewBaseline("r1", []Finding{plan}),
			current:        []Finding{plan, moved},
			wantKept:       []Finding{moved},
			wantSuppressed: 1,
		},
		{
			name:           "fully covered",
			baseline:       NewBaseline("r1", []Finding{plan, other}),
			current:        []Finding{other, plan},
			wantKept:       nil,
			wantSuppressed: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, suppressed := tt.baseline.Filter(tt.current)
			assert.Equal(t, tt.wantKept, kept)
			assert.Equal(t, tt.wantSuppressed, suppressed)
		})
	}
}

func TestBaseline_FilterDoesNotConsume(t *testing.T) {
	f := Finding{Path: "A.json", RuleID: "TS01", Message: "m"}
	b := NewBaseline("r1", []Finding{f})

	_, first := b.Filter([]Finding{f})
	_, second := b.Filter([]Finding{f})
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, b.Len())
}
