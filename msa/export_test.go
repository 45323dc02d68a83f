package msa

// Test-only bridges into session internals, for white-box checks that
// need a hand-built alignment state without running a full pipeline.

// SetStateForTest installs a unique-level alignment and the options the
// refinement engine would normally inherit from the last align call,
// then publishes it. Rows must carry the same residue counts as the
// session's class sequences.
func (m *Multiple) SetStateForTest(rows [][]string, o AlignOptions) {
	m.opts = o
	m.publish(cloneRows(rows))
}

// SwapCandidatesForTest exposes candidate-window detection.
var SwapCandidatesForTest = swapCandidates
