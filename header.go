package omegalz

import (
	"fmt"
)

// AppendHeader serializes t to b: the number of symbols, then for each
// symbol in ascending code point order its 7-bit value, the length of its
// codeword, and the codeword itself.
func AppendHeader(b *Bits, t Table) error {
	if t.Len() == 0 {
		return fmt.Errorf("%w: cannot serialize an empty code table", ErrInvalidInput)
	}

	if err := AppendOmega(b, uint64(t.Len())); err != nil {
		return err
	}
	for _, sym := range t.Symbols() {
		hc := t.codes[sym.index()]
		if hc.Size == 0 {
			return fmt.Errorf("%w: symbol %v has an empty codeword, which the header cannot express", ErrInvalidInput, sym)
		}
		b.AppendUint(uint64(sym), SymbolBits)
		if err := AppendOmega(b, uint64(hc.Size)); err != nil {
			return err
		}
		b.AppendCode(hc)
	}
	return nil
}

// ReadHeader deserializes a code table from b starting at bit pos.  It
// returns the table and the number of bits consumed; pos plus that count is
// where the token stream begins.
func ReadHeader(b Bits, pos int, opts Options) (Table, int, error) {
	maxGroup := opts.maxGroupBits()

	count, n, err := ReadOmega(b, pos, maxGroup)
	if err != nil {
		return Table{}, 0, fmt.Errorf("%w: symbol count: %w", ErrMalformedHeader, err)
	}
	if count > uint64(NumSymbols) {
		return Table{}, 0, fmt.Errorf("%w: declares %d symbols, max %d", ErrMalformedHeader, count, NumSymbols)
	}
	cursor := pos + n

	var t Table
	for i := uint64(0); i < count; i++ {
		raw, err := b.Uint(cursor, SymbolBits)
		if err != nil {
			return Table{}, 0, fmt.Errorf("%w: entry %d of %d: symbol: %w", ErrMalformedHeader, i, count, err)
		}
		sym := Symbol(raw)
		if !sym.Valid() {
			return Table{}, 0, fmt.Errorf("%w: entry %d of %d at bit %d: symbol %d is outside the alphabet", ErrMalformedHeader, i, count, cursor, raw)
		}
		if _, found := t.Lookup(sym); found {
			return Table{}, 0, fmt.Errorf("%w: entry %d of %d at bit %d: duplicate symbol %v", ErrMalformedHeader, i, count, cursor, sym)
		}
		cursor += SymbolBits

		size, n, err := ReadOmega(b, cursor, maxGroup)
		if err != nil {
			return Table{}, 0, fmt.Errorf("%w: entry %d of %d: codeword length: %w", ErrMalformedHeader, i, count, err)
		}
		if size > maxBitsPerCode {
			return Table{}, 0, fmt.Errorf("%w: entry %d of %d at bit %d: codeword of %d bits, max %d", ErrMalformedHeader, i, count, cursor, size, maxBitsPerCode)
		}
		cursor += n

		bits, err := b.Uint(cursor, int(size))
		if err != nil {
			return Table{}, 0, fmt.Errorf("%w: entry %d of %d: codeword: %w", ErrMalformedHeader, i, count, err)
		}
		cursor += int(size)

		t.set(sym, MakeCode(byte(size), bits))
	}

	if err := t.Validate(); err != nil {
		return Table{}, 0, fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}
	return t, cursor - pos, nil
}
