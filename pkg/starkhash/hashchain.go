// Copyright 2025 StarkHash Project
//
// Pedersen hash chain over a sequence of field elements.

package starkhash

// HashChain folds a sequence of field elements into one, then mixes in
// the count of elements seen. It is the accumulator the contract-hash
// engine uses for every list it folds: entry points of a given kind,
// builtins, and bytecode, and for the outer chain tying those results
// together.
//
// The empty chain finalizes to Pedersen(0, 0); an n-element chain
// finalizes to Pedersen(accumulator, n).
type HashChain struct {
	acc   FieldElement
	count uint64
}

// NewHashChain returns an empty chain equivalent to the zero value.
func NewHashChain() *HashChain {
	return &HashChain{}
}

// Update folds one more field element into the chain.
func (h *HashChain) Update(v FieldElement) {
	h.acc = Pedersen(h.acc, v)
	h.count++
}

// Finalize consumes the chain and returns Pedersen(accumulator, count).
func (h *HashChain) Finalize() FieldElement {
	return Pedersen(h.acc, FieldElementFromUint64(h.count))
}

// Count reports how many updates the chain has seen so far.
func (h *HashChain) Count() uint64 {
	return h.count
}
