// Package huffarc implements byte-oriented Huffman coding.  It counts the
// occurrences of each byte value, merges them into a prefix tree, assigns one
// bit string per used byte value, and packs input bytes into a dense
// bitstream whose final partial byte is kept aside as a literal tail.
//
// Every operation threads its FrequencyTable and CodeTable explicitly, so
// nothing here holds state between calls.  The container formats that store
// these tables next to the packed payload live in the container package.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffarc
