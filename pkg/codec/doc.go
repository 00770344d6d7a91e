// Package codec defines the fixed-width record contract consumed by
// the bigvec package, plus the concrete codecs Brisinga ships.
//
// # The Contract
//
// A Codec packs one element type into a constant number of bytes and
// unpacks it again. The width must never change: vectors compute record
// offsets from it, so a codec that reported different sizes at
// different times would corrupt every buffer it touched. An
// OrderedCodec adds the strict total order sorted vectors need for
// binary search and ordered insertion.
//
// All shipped codecs use little-endian layouts, matching the vector's
// own length prefix:
//
//	U64Codec    [Value(8)]                       ordered numerically
//	EntryCodec  [ID(8)][Weight(8)][Flags(4)]     ordered by ID
//	FeeCodec    [Numerator(8)][Denominator(8)]   ordered by rate
//
// # Writing a Codec
//
// Encode and Decode always receive a buffer of exactly Size() bytes;
// implementations should still verify the width and reject anything
// else, since a record sliced at the wrong offset is the kind of bug
// that otherwise surfaces as silent corruption. Decode must tolerate
// arbitrary bit patterns (stored bytes are untrusted input) and
// either return a valid element or an error, the way FeeCodec
// re-validates decoded ratios.
package codec
