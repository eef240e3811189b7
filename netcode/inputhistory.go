package netcode

import "github.com/mtomcal/stick-rumble-client/shared/messages"

// maxPendingInputs bounds the history so a stalled server cannot grow the
// replay list without limit. At 60 inputs per second this is over four
// seconds of backlog; a server that far behind is already unplayable.
const maxPendingInputs = 256

// PendingInput is one locally applied input awaiting server acknowledgment.
type PendingInput struct {
	Sequence  uint64
	Input     messages.InputState
	Timestamp int64 // Unix ms when the input was sampled
}

// InputHistory is an ordered-by-sequence deque of inputs the server has not
// yet acknowledged, plus the monotonic sequence counter for new inputs.
// Pruning is strictly by sequence number, never by wall clock, so an input
// is only discarded once the server has confirmed processing it.
type InputHistory struct {
	pending []PendingInput
	lastSeq uint64
}

// NewInputHistory returns an empty history. The first sequence issued is 1;
// zero is reserved to mean "no input processed yet".
func NewInputHistory() *InputHistory {
	return &InputHistory{}
}

// NextSequence increments and returns the session's input sequence counter.
func (h *InputHistory) NextSequence() uint64 {
	h.lastSeq++
	return h.lastSeq
}

// Push appends an input to the history. Entries must arrive in ascending
// sequence order; Push drops anything at or below the newest stored entry.
func (h *InputHistory) Push(in PendingInput) {
	if n := len(h.pending); n > 0 && in.Sequence <= h.pending[n-1].Sequence {
		return
	}
	h.pending = append(h.pending, in)
	if len(h.pending) > maxPendingInputs {
		h.pending = h.pending[len(h.pending)-maxPendingInputs:]
	}
}

// PruneAcked removes every entry with sequence <= acked.
func (h *InputHistory) PruneAcked(acked uint64) {
	i := 0
	for i < len(h.pending) && h.pending[i].Sequence <= acked {
		i++
	}
	if i > 0 {
		h.pending = h.pending[i:]
	}
}

// Unacked returns the entries with sequence > acked, in ascending order.
// The returned slice aliases internal storage and is only valid until the
// next Push or PruneAcked.
func (h *InputHistory) Unacked(acked uint64) []PendingInput {
	i := 0
	for i < len(h.pending) && h.pending[i].Sequence <= acked {
		i++
	}
	return h.pending[i:]
}

// Len returns the number of unacknowledged inputs held.
func (h *InputHistory) Len() int {
	return len(h.pending)
}
