package circuits

import "errors"

// Circuit-layer sentinel errors, spec.md §7: every circuit contract is a
// verifier first and a relabeling function second, so each assertion it
// performs fails closed with one of these rather than silently trusting
// its witness.
var (
	// ErrRootMismatch is returned when a root reconstructed from a witness's
	// recorded proof path does not match the root the witness claims.
	ErrRootMismatch = errors.New("circuits: reconstructed root does not match witness")
	// ErrChainMismatch is returned by TxAgg when the two child proofs being
	// aggregated do not actually chain: either the midpoint accum_diffs
	// hash or the entire_root they were each constrained against disagree.
	ErrChainMismatch = errors.New("circuits: aggregated proofs do not chain")
)
