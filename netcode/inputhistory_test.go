package netcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSequenceIsMonotonic(t *testing.T) {
	h := NewInputHistory()

	assert.Equal(t, uint64(1), h.NextSequence())
	assert.Equal(t, uint64(2), h.NextSequence())
	assert.Equal(t, uint64(3), h.NextSequence())
}

func TestPruneAckedBySequenceOnly(t *testing.T) {
	h := NewInputHistory()
	for i := 1; i <= 5; i++ {
		h.Push(PendingInput{Sequence: uint64(i), Timestamp: int64(i * 16)})
	}

	h.PruneAcked(3)

	remaining := h.Unacked(0)
	require.Len(t, remaining, 2)
	assert.Equal(t, uint64(4), remaining[0].Sequence)
	assert.Equal(t, uint64(5), remaining[1].Sequence)
}

func TestUnackedSkipsAckedEntries(t *testing.T) {
	h := NewInputHistory()
	for i := 1; i <= 4; i++ {
		h.Push(PendingInput{Sequence: uint64(i)})
	}

	assert.Len(t, h.Unacked(2), 2)
	assert.Len(t, h.Unacked(4), 0)
	assert.Len(t, h.Unacked(10), 0)
}

func TestPushRejectsOutOfOrderSequence(t *testing.T) {
	h := NewInputHistory()
	h.Push(PendingInput{Sequence: 5})
	h.Push(PendingInput{Sequence: 5})
	h.Push(PendingInput{Sequence: 4})

	assert.Equal(t, 1, h.Len())
}

func TestHistoryBoundsPendingBacklog(t *testing.T) {
	h := NewInputHistory()
	for i := 1; i <= maxPendingInputs+50; i++ {
		h.Push(PendingInput{Sequence: uint64(i)})
	}

	assert.Equal(t, maxPendingInputs, h.Len())
	assert.Equal(t, uint64(51), h.Unacked(0)[0].Sequence)
}
