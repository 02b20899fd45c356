package omegalz

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Decoder resolves literal codewords and drives the decoding of a complete
// stream.  It holds a binary trie over the codewords of its Table, so each
// lookup costs O(codeword length).
type Decoder struct {
	table Table
	nodes []trieNode
	opts  Options
}

// trieNode is a leaf when symbol != InvalidSymbol; otherwise child[bit]
// holds the index of the next node, or 0 if there is none.  Index 0 is the
// root and is never anyone's child.
type trieNode struct {
	child  [2]int32
	symbol Symbol
}

// Init initializes this Decoder for the given code table.
//
// Tables that are not prefix-free are rejected with ErrMalformedHeader.  A
// table with a single symbol may use the empty codeword, in which case
// every literal decodes to that symbol without consuming any bits.
//
func (d *Decoder) Init(t Table, opts Options) error {
	if t.Len() == 0 {
		return fmt.Errorf("%w: empty code table", ErrMalformedHeader)
	}

	// len(nodes) is bounded by 1 + the total number of codeword bits.
	numNodes := 1
	for _, sym := range t.Symbols() {
		numNodes += int(t.codes[sym.index()].Size)
	}

	nodes := make([]trieNode, 1, numNodes)
	nodes[0] = trieNode{symbol: InvalidSymbol}

	for _, sym := range t.Symbols() {
		hc := t.codes[sym.index()]
		if hc.Size == 0 && t.Len() != 1 {
			return fmt.Errorf("%w: symbol %v has an empty codeword", ErrMalformedHeader, sym)
		}

		index := int32(0)
		for i := 0; i < int(hc.Size); i++ {
			if nodes[index].symbol != InvalidSymbol {
				return fmt.Errorf("%w: codeword of %v is a prefix of codeword %v of %v", ErrMalformedHeader, nodes[index].symbol, hc, sym)
			}
			bit := hc.At(i)
			next := nodes[index].child[bit]
			if next == 0 {
				nodes = append(nodes, trieNode{symbol: InvalidSymbol})
				next = int32(len(nodes) - 1)
				nodes[index].child[bit] = next
			}
			index = next
		}

		n := &nodes[index]
		if n.symbol != InvalidSymbol || n.child[0] != 0 || n.child[1] != 0 {
			return fmt.Errorf("%w: codeword %v of %v collides with another codeword", ErrMalformedHeader, hc, sym)
		}
		n.symbol = sym
	}

	*d = Decoder{
		table: t,
		nodes: nodes,
		opts:  opts,
	}
	return nil
}

// Table returns the code table used by this Decoder.
func (d Decoder) Table() Table {
	return d.table
}

// Decode finds the unique codeword that prefixes b at bit pos.  It returns
// the symbol and the codeword length.
func (d Decoder) Decode(b Bits, pos int) (Symbol, int, error) {
	if len(d.nodes) == 0 {
		return InvalidSymbol, 0, fmt.Errorf("%w: decoder not initialized", ErrInvalidInput)
	}

	index := int32(0)
	cursor := pos
	for d.nodes[index].symbol == InvalidSymbol {
		bit, err := b.Bit(cursor)
		if err != nil {
			return InvalidSymbol, 0, fmt.Errorf("codeword at bit %d: %w", pos, err)
		}
		next := d.nodes[index].child[bit]
		if next == 0 {
			return InvalidSymbol, 0, fmt.Errorf("bits at %d match no codeword", pos)
		}
		index = next
		cursor++
	}
	return d.nodes[index].symbol, cursor - pos, nil
}

// DecodeBody decodes the body starting at bit pos and resolves every token
// into r.  It returns the number of bits consumed.
//
// A token that would grow r beyond Options.MaxOutput symbols fails with an
// error matching both ErrMalformedToken and ErrBoundsExceeded; r is left as
// it was before that token.
//
func (d Decoder) DecodeBody(b Bits, pos int, r *Reconstructor) (int, error) {
	var tr tokenReader
	if err := tr.init(b, pos, &d); err != nil {
		return 0, err
	}

	maxOutput := d.opts.maxOutput()
	for tr.remaining != 0 {
		index := tr.count - tr.remaining
		tok, err := tr.next()
		if err != nil {
			return 0, err
		}

		growth := uint64(1)
		if tok.Kind == MatchToken {
			growth = tok.Length
		}
		if have := uint64(r.Len()); have > maxOutput || growth > maxOutput-have {
			return 0, fmt.Errorf("%w: token %d of %d: %v would grow output of %d symbols past %d: %w", ErrMalformedToken, index, tr.count, tok, have, maxOutput, ErrBoundsExceeded)
		}

		if err := r.Apply(tok); err != nil {
			return 0, fmt.Errorf("token %d of %d: %w", index, tr.count, err)
		}
	}
	return tr.consumed(), nil
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.table.maxSize)
	fmt.Fprintf(&buf, "\tNodes() = %d\n", len(d.nodes))
	keys := make([]Code, 0, d.table.count)
	for _, sym := range d.table.Symbols() {
		keys = append(keys, d.table.codes[sym.index()])
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Size != keys[j].Size {
			return keys[i].Size < keys[j].Size
		}
		return keys[i].Bits < keys[j].Bits
	})
	for _, hc := range keys {
		sym, _, _ := d.Decode(codeBits(hc), 0)
		fmt.Fprintf(&buf, "\tDecode(%s) = %v\n", hc, sym)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func codeBits(hc Code) Bits {
	var b Bits
	b.AppendCode(hc)
	return b
}

// Decode decodes a complete header + body bit sequence back into text.
func Decode(b Bits, opts Options) (string, error) {
	t, n, err := ReadHeader(b, 0, opts)
	if err != nil {
		return "", err
	}

	var d Decoder
	if err := d.Init(t, opts); err != nil {
		return "", err
	}

	var r Reconstructor
	if _, err := d.DecodeBody(b, n, &r); err != nil {
		return "", err
	}
	return r.String(), nil
}
