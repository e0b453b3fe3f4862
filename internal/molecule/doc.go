// Package molecule implements the Molecule binary serialization layout used by
// the resource bundle: fixed-size bytes, arrays and structs, count-prefixed
// fixvecs, offset-indexed dynvecs and tables, options, and id-tagged unions.
//
// All integers in headers are 32-bit little endian. Builders report schema
// violations as *InvariantError; readers report malformed input as errors
// wrapping ErrMalformed.
package molecule
