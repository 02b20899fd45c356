package omegalz

import (
	"bytes"
	"fmt"
	"io"
)

// Table maps each symbol of a Huffman code to its codeword.
//
// A Table is produced once, by BuildTable or ReadHeader, and is read-only
// afterward.  The zero value is an empty table.
type Table struct {
	codes   [NumSymbols]Code
	present [NumSymbols]bool
	count   int
	maxSize byte
}

// MakeTable constructs a Table from an explicit symbol → codeword mapping.
// The mapping must be non-empty, contain only valid symbols, and be
// prefix-free.
func MakeTable(codes map[Symbol]Code) (Table, error) {
	var t Table
	for sym, hc := range codes {
		if !sym.Valid() {
			return Table{}, fmt.Errorf("%w: symbol %v is outside the alphabet", ErrInvalidInput, sym)
		}
		t.set(sym, hc)
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

func (t *Table) set(sym Symbol, hc Code) {
	i := sym.index()
	if !t.present[i] {
		t.count++
	}
	t.codes[i] = hc
	t.present[i] = true
	if t.maxSize < hc.Size {
		t.maxSize = hc.Size
	}
}

// Len returns the number of symbols in the table.
func (t Table) Len() int {
	return t.count
}

// MaxSize is the bit length of the longest codeword.
func (t Table) MaxSize() byte {
	return t.maxSize
}

// Lookup returns the codeword for sym.
func (t Table) Lookup(sym Symbol) (Code, bool) {
	if !sym.Valid() {
		return Code{}, false
	}
	i := sym.index()
	return t.codes[i], t.present[i]
}

// Symbols returns the symbols in the table in ascending code point order.
func (t Table) Symbols() []Symbol {
	out := make([]Symbol, 0, t.count)
	for i := range t.present {
		if t.present[i] {
			out = append(out, MinSymbol+Symbol(i))
		}
	}
	return out
}

// Equal returns true iff both tables assign the same codewords to the same
// symbols.
func (t Table) Equal(other Table) bool {
	return t == other
}

// Validate checks that the table is non-empty and prefix-free.  A table
// with exactly one symbol may use the empty codeword.
func (t Table) Validate() error {
	if t.count == 0 {
		return fmt.Errorf("%w: empty code table", ErrInvalidInput)
	}
	if t.count == 1 {
		return nil
	}
	symbols := t.Symbols()
	for _, a := range symbols {
		ac := t.codes[a.index()]
		if ac.Size == 0 {
			return fmt.Errorf("%w: symbol %v has an empty codeword", ErrInvalidInput, a)
		}
		for _, b := range symbols {
			if a == b {
				continue
			}
			if bc := t.codes[b.index()]; bc.HasPrefix(ac) {
				return fmt.Errorf("%w: codeword %v of %v is a prefix of codeword %v of %v", ErrInvalidInput, ac, a, bc, b)
			}
		}
	}
	return nil
}

// Dump writes a programmer-readable debugging dump of the table to the
// given writer.
func (t Table) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Table{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", t.count)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	t.dumpCodes(&buf, "Lookup")
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// dumpCodes writes one "\tmethod(symbol) = code" line per symbol.
func (t Table) dumpCodes(buf *bytes.Buffer, method string) {
	for _, sym := range t.Symbols() {
		fmt.Fprintf(buf, "\t%s(%v) = %v\n", method, sym, t.codes[sym.index()])
	}
}
