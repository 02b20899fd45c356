package omegalz

import (
	"fmt"
)

// Reconstructor accumulates decoded output.  Output is append-only: once a
// symbol is emitted it never changes, so back-references may rely on it.
type Reconstructor struct {
	out []byte
}

// Len returns the number of symbols emitted so far.
func (r *Reconstructor) Len() int {
	return len(r.out)
}

// Literal appends one symbol.
func (r *Reconstructor) Literal(sym Symbol) {
	r.out = append(r.out, byte(sym))
}

// Copy appends length symbols starting offset symbols before the end of the
// output.  Symbols are copied one at a time, left to right, so a match
// whose length exceeds its offset repeats the last offset symbols
// periodically.
func (r *Reconstructor) Copy(offset, length uint64) error {
	have := uint64(len(r.out))
	if offset == 0 || offset > have {
		return fmt.Errorf("%w: match offset %d with only %d symbols of output", ErrMalformedToken, offset, have)
	}

	start := len(r.out) - int(offset)
	for i := uint64(0); i < length; i++ {
		r.out = append(r.out, r.out[start])
		start++
	}
	return nil
}

// Apply appends the output of tok.
func (r *Reconstructor) Apply(tok Token) error {
	switch tok.Kind {
	case LiteralToken:
		r.Literal(tok.Symbol)
		return nil
	case MatchToken:
		return r.Copy(tok.Offset, tok.Length)
	default:
		return fmt.Errorf("%w: unknown token kind %v", ErrMalformedToken, tok.Kind)
	}
}

// Bytes returns a copy of the output.
func (r *Reconstructor) Bytes() []byte {
	out := make([]byte, len(r.out))
	copy(out, r.out)
	return out
}

// String returns the output as text.
func (r *Reconstructor) String() string {
	return string(r.out)
}
