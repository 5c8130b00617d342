// Package subtype implements the SubtypeEngine: deciding A <: B by reducing
// to the emptiness of A ∩ ¬B, over the recursive type algebra in
// internal/types. Termination over mutually recursive nominal types is
// guaranteed by an assumption cache that treats a re-entered query as
// sound-but-negative (coinductive interpretation): see Engine.isInhabited.
package subtype
