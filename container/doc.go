// Package container reads and writes the two artifact formats that store a
// Huffman code table next to its packed payload.
//
// A single-file artifact (extension .hmc) looks like this:
//
//	<name>
//	<extension, including the dot, or an empty line>
//	<byteValue> <frequency> <code>      one line per used byte value, ascending
//	--
//	<packed bytes>[** <tail bits as ASCII '0'/'1'>]
//
// A folder artifact (extension .hmf) shares one code table between all of
// its members:
//
//	<folder name>
//	<member count>
//	<byteValue> <frequency> <code>
//	==
//	then, per member:
//	<member name>
//	<member extension>
//	<member bit count>
//	<packed bytes>[** <tail bits>]
//	==
//
// Text lines end in "\n"; readers also accept "\r\n".  Readers never scan
// for markers inside a payload.  The payload length comes from the header
// (the sum of frequency × code length for a single file, and the member bit
// count for a folder member), and every offset is bounds-checked before it
// is used.
package container
