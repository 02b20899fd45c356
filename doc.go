// Package omegalz implements a text codec that combines LZSS-style
// back-references with Huffman-coded literals.  Every variable-length
// integer in the format (symbol counts, codeword lengths, match offsets and
// match lengths) is written with Elias-omega universal coding, and the whole
// stream is a single bit sequence:
//
//     header := omega(numSymbols) { symbol:7 omega(codeLen) code:codeLen }...
//     body   := omega(numTokens) { 1 code | 0 omega(offset) omega(length) }...
//
// Header entries appear in ascending code point order.  There is no magic
// number or version tag; consumers must know out-of-band that a stream was
// produced by this codec.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Elias_omega_coding>
//
//     <https://en.wikipedia.org/wiki/Lempel%E2%80%93Ziv%E2%80%93Storer%E2%80%93Szymanski>
//
package omegalz
