// Package resource holds the typed model of every game resource kind and its
// projection into the Molecule resource bundle.
//
// Records are decoded from design documents through UnmarshalJSON, which
// applies field defaults, resolves key aliases and rejects unknown keys. Each
// record projects itself with Molecule; DecodeBundle is the inverse and is
// used to verify a compiled bundle against its sources.
//
// Resource ids that point into other pools are opaque: the compiler never
// resolves or validates them.
package resource
