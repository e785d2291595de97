// Package encoding implements the low-level codecs of the repository blob
// format: the base-64 variable-length integer, the 32-bit word-sum checksum,
// and the delta instruction stream used to store most blobs as differences
// against an ancestor.
//
// All three are wire-format codecs, not general-purpose utilities: the varint
// alphabet, the checksum word size, and the delta opcode set are fixed by the
// on-disk format and shared between the delta stream and its callers.
package encoding
