// Package state persists lint runs in SQLite so that later runs can be
// compared against a recorded baseline.
//
// A baseline is the set of findings of the most recent recorded run.
// Findings are matched by path, rule ID and message; line numbers are
// ignored so that unrelated edits above a finding do not resurface it.
package state

import (
	"context"
	"errors"
	"time"
)

// ErrNoBaseline is returned when no run has been recorded yet.
var ErrNoBaseline = errors.New("no baseline recorded")

// Finding is a persisted diagnostic.
type Finding struct {
	Path     string
	RuleID   string
	Severity string
	Message  string
	Line     int
}

// Run is a recorded lint run.
type Run struct {
	ID            string
	StartedAt     time.Time
	FilesAnalyzed int
	Findings      int
}

// Store records runs and serves baselines.
type Store interface {
	RecordRun(ctx context.Context, filesAnalyzed int, findings []Finding) (*Run, error)
	LatestRun(ctx context.Context) (*Run, error)
	LatestBaseline(ctx context.Context) (*Baseline, error)
	Close() error
}

type fingerprint struct {
	path, ruleID, message string
}

func fingerprintOf(f Finding) fingerprint {
	return fingerprint{path: f.Path, ruleID: f.RuleID, message: f.Message}
}

// Baseline is a multiset of recorded findings.
type Baseline struct {
	RunID  string
	counts map[fingerprint]int
}

// NewBaseline builds a baseline from findings.
func NewBaseline(runID string, findings []Finding) *Baseline {
	b := &Baseline{RunID: runID, counts: make(map[fingerprint]int, len(findings))}
	for _, f := range findings {
		b.counts[fingerprintOf(f)]++
	}
	return b
}

// Len returns the number of recorded findings.
func (b *Baseline) Len() int {
	if b == nil {
		return 0
	}
	n := 0
	for _, c := range b.counts {
		n += c
	}
	return n
}

// Filter returns the findings not covered by the baseline and the number
// suppressed. Each recorded finding suppresses at most one current finding.
func (b *Baseline) Filter(findings []Finding) (kept []Finding, suppressed int) {
	if b == nil || len(b.counts) == 0 {
		return findings, 0
	}
	remaining := make(map[fingerprint]int, len(b.counts))
	for k, v := range b.counts {
		remaining[k] = v
	}
	for _, f := range findings {
		key := fingerprintOf(f)
		if remaining[key] > 0 {
			remaining[key]--
			suppressed++
			continue
		}
		kept = append(kept, f)
	}
	return kept, suppressed
}
