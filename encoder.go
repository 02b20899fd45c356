package omegalz

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"
	"math"

	"github.com/chronos-tachyon/assert"
)

// BuildTable constructs the Huffman code for the given frequencies.
//
// Nodes are merged lowest frequency first.  Among nodes of equal frequency
// the most recently inserted one is taken first, where leaves are inserted
// in ascending code point order and each merged node is inserted after all
// existing nodes.  The first node taken becomes the "0" child and the second
// the "1" child.  These rules fix the exact codeword each symbol receives,
// which must match streams written by other implementations of the format.
//
// With a single distinct symbol the tree is a lone leaf and its codeword is
// empty; see Encoder for how that case is serialized.
//
func BuildTable(freqs Frequencies) (Table, error) {
	arena := make([]treeNode, 0, 2*NumSymbols)
	h := freqHeap{list: make([]nodeAndFreq, 0, NumSymbols)}

	var seq uint32
	for i, freq := range freqs {
		if freq == 0 {
			continue
		}
		arena = append(arena, treeNode{symbol: MinSymbol + Symbol(i), freq: freq, left: -1, right: -1})
		h.list = append(h.list, nodeAndFreq{node: int32(len(arena) - 1), freq: freq, seq: seq})
		seq++
	}

	if len(h.list) == 0 {
		return Table{}, fmt.Errorf("%w: cannot build a Huffman code from an empty frequency table", ErrInvalidInput)
	}

	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(nodeAndFreq)
		b := heap.Pop(&h).(nodeAndFreq)

		// Compute freqSum using saturating addition
		freqSum := a.freq + b.freq
		if freqSum < a.freq {
			freqSum = math.MaxUint64
		}

		arena = append(arena, treeNode{symbol: InvalidSymbol, freq: freqSum, left: a.node, right: b.node})
		heap.Push(&h, nodeAndFreq{node: int32(len(arena) - 1), freq: freqSum, seq: seq})
		seq++
	}

	root := heap.Pop(&h).(nodeAndFreq)

	var t Table
	assignCodes(&t, arena, root.node)
	return t, nil
}

// assignCodes walks the tree depth-first, appending "0" for each left
// branch and "1" for each right branch.  Only leaves receive codewords.
func assignCodes(t *Table, arena []treeNode, root int32) {
	type stackItem struct {
		node int32
		code Code
	}

	stack := make([]stackItem, 0, NumSymbols)
	stack = append(stack, stackItem{node: root})
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := arena[top.node]
		if n.isLeaf() {
			t.set(n.symbol, top.code)
			continue
		}

		// Push right before left so that left is visited first.
		stack = append(stack, stackItem{node: n.right, code: top.code.Append(1)})
		stack = append(stack, stackItem{node: n.left, code: top.code.Append(0)})
	}
}

// Encoder turns text plus a token stream into a complete header + body bit
// sequence.
type Encoder struct {
	table Table
}

// Init initializes this Encoder with the Huffman code for text.
//
// When text contains a single distinct symbol, BuildTable yields the empty
// codeword, which the header cannot express because Elias-omega has no code
// for zero.  Init assigns the one-bit codeword "0" instead.
//
func (e *Encoder) Init(text string) error {
	freqs, err := CountFrequencies(text)
	if err != nil {
		return err
	}

	t, err := BuildTable(freqs)
	if err != nil {
		return err
	}

	if t.Len() == 1 {
		sym := t.Symbols()[0]
		t = Table{}
		t.set(sym, MakeCode(1, 0))
	}

	*e = Encoder{table: t}
	return nil
}

// Table returns the code table used by this Encoder.
func (e Encoder) Table() Table {
	return e.table
}

// Encode serializes the header followed by the body for tokens.
func (e Encoder) Encode(tokens []Token) (Bits, error) {
	var b Bits
	if err := AppendHeader(&b, e.table); err != nil {
		return Bits{}, err
	}
	if err := AppendTokens(&b, e.table, tokens); err != nil {
		return Bits{}, err
	}
	return b, nil
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.table.maxSize)
	e.table.dumpCodes(&buf, "Encode")
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// EncodeText builds the code for text and serializes tokens with it.  The
// tokens must describe text.
func EncodeText(text string, tokens []Token) (Bits, error) {
	var e Encoder
	if err := e.Init(text); err != nil {
		return Bits{}, err
	}
	return e.Encode(tokens)
}

// Compress encodes text as a stream of literals only.
func Compress(text string) (Bits, error) {
	tokens, err := LiteralTokens(text)
	if err != nil {
		return Bits{}, err
	}
	return EncodeText(text, tokens)
}

// type treeNode {{{

// treeNode is either a leaf (left == right == -1) carrying a symbol, or an
// internal node owning the arena indices of its two children.
type treeNode struct {
	symbol Symbol
	freq   uint64
	left   int32
	right  int32
}

func (n treeNode) isLeaf() bool {
	isLeaf := n.left < 0
	assert.Assertf(isLeaf == (n.right < 0), "tree node has exactly one child: left=%d right=%d", n.left, n.right)
	return isLeaf
}

// }}}

// type nodeAndFreq + type freqHeap {{{

type nodeAndFreq struct {
	node int32
	freq uint64
	seq  uint32
}

type freqHeap struct {
	list []nodeAndFreq
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return a.seq > b.seq
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(nodeAndFreq))
}

func (h *freqHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
