package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimSubmission(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(c *Cell)
	}{
		{"fresh", func(c *Cell) {}},
		{"cleared", func(c *Cell) { c.TransitionToCleared(2) }},
		{"flagged", func(c *Cell) { c.TransitionToFlagged() }},
		{"with evidence", func(c *Cell) {
			c.RecordSafeNeighbor()
			c.RecordMineNeighbor()
			c.TransitionToCleared(1)
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := NewCell(8)
			test.prepare(&c)
			assert.True(t, c.ClaimSubmission())
			for range 5 {
				assert.False(t, c.ClaimSubmission())
			}
		})
	}
}

func TestTransitions(t *testing.T) {
	c := NewCell(8)
	assert.Equal(t, Unknown, c.State())

	c.TransitionToCleared(3)
	assert.Equal(t, Cleared, c.State())
	assert.Equal(t, 3, c.RequiredMines())

	c.TransitionToFlagged()
	assert.Equal(t, Cleared, c.State(), "cleared is terminal")
	assert.Equal(t, NoSignal, c.TransitionToCleared(0))
	assert.Equal(t, 3, c.RequiredMines())

	f := NewCell(3)
	f.TransitionToFlagged()
	assert.Equal(t, Flagged, f.State())
	assert.Equal(t, NoSignal, f.TransitionToCleared(0))
	assert.Equal(t, Flagged, f.State(), "flagged is terminal")
}

func TestZeroCertifiesSafe(t *testing.T) {
	c := NewCell(8)
	assert.Equal(t, CertifySafe, c.TransitionToCleared(0))
}

func TestMineCountComplete(t *testing.T) {
	c := NewCell(8)
	assert.Equal(t, NoSignal, c.TransitionToCleared(2))
	assert.Equal(t, NoSignal, c.RecordMineNeighbor())
	assert.Equal(t, CertifySafe, c.RecordMineNeighbor())
	assert.Equal(t, 2, c.KnownMineNeighbors())
}

func TestSafeCountLeavesOnlyMines(t *testing.T) {
	c := NewCell(5)
	assert.Equal(t, NoSignal, c.TransitionToCleared(2))
	assert.Equal(t, NoSignal, c.RecordSafeNeighbor())
	assert.Equal(t, NoSignal, c.RecordSafeNeighbor())
	assert.Equal(t, CertifyMine, c.RecordSafeNeighbor())
	assert.Equal(t, 3, c.KnownSafeNeighbors())
}

func TestEvidenceBeforeClear(t *testing.T) {
	c := NewCell(3)
	assert.Equal(t, NoSignal, c.RecordSafeNeighbor(), "unknown cells draw no conclusions")
	assert.Equal(t, NoSignal, c.RecordSafeNeighbor())
	assert.Equal(t, CertifyMine, c.TransitionToCleared(1))

	m := NewCell(3)
	assert.Equal(t, NoSignal, m.RecordMineNeighbor())
	assert.Equal(t, CertifySafe, m.TransitionToCleared(1))
}

func TestSignalsFireOnce(t *testing.T) {
	c := NewCell(8)
	assert.Equal(t, CertifySafe, c.TransitionToCleared(0))
	for range 3 {
		assert.Equal(t, NoSignal, c.RecordMineNeighbor())
	}

	m := NewCell(2)
	assert.Equal(t, NoSignal, m.TransitionToCleared(1))
	assert.Equal(t, CertifyMine, m.RecordSafeNeighbor())
	assert.Equal(t, NoSignal, m.RecordSafeNeighbor())
	assert.Equal(t, CertifySafe, m.RecordMineNeighbor())
	assert.Equal(t, NoSignal, m.RecordMineNeighbor())
}
