package evalsrvc_test

import (
	"testing"

	"github.com/programme-lv/contest/evalsrvc"
	"github.com/stretchr/testify/assert"
)

func verdictsOf(outcomes ...evalsrvc.Outcome) []evalsrvc.TestVerdict {
	res := make([]evalsrvc.TestVerdict, len(outcomes))
	for i, o := range outcomes {
		res[i] = evalsrvc.TestVerdict{Outcome: o}
	}
	return res
}

func TestScore(t *testing.T) {
	const (
		ac = evalsrvc.OutcomeAccepted
		wa = evalsrvc.OutcomeWrongAnswer
		re = evalsrvc.OutcomeRuntimeError
		te = evalsrvc.OutcomeTransportError
	)
	tests := []struct {
		name     string
		verdicts []evalsrvc.TestVerdict
		marks    int
		want     int
	}{
		{"all accepted", verdictsOf(ac, ac, ac), 100, 100},
		{"none accepted", verdictsOf(wa, re, te), 100, 0},
		{"half of twenty", verdictsOf(ac, wa), 20, 10},
		{"third rounds down", verdictsOf(ac, wa, wa), 10, 3},
		{"two thirds rounds up", verdictsOf(ac, ac, wa), 10, 7},
		{"exact half rounds up", verdictsOf(ac, wa), 1, 1},
		{"transport error is zero credit", verdictsOf(ac, te), 50, 25},
		{"no verdicts", nil, 100, 0},
		{"one of three with one mark rounds to zero", verdictsOf(ac, wa, wa), 1, 0},
		{"two of three with one mark rounds to full", verdictsOf(ac, ac, wa), 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalsrvc.Score(tt.verdicts, tt.marks)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, tt.marks)
		})
	}
}
