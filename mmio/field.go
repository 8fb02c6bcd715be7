package mmio

import "golang.org/x/exp/constraints"

// Field is a named bit range of a register. Mask is unshifted (the field
// width), Shift is the position of the lowest bit.
type Field[T constraints.Unsigned] struct {
	Mask  T
	Shift uint
}

// Bits returns the in-register mask of the field.
func (f Field[T]) Bits() T { return f.Mask << f.Shift }

// Get extracts the field from a register word.
func (f Field[T]) Get(word T) T { return (word >> f.Shift) & f.Mask }

// Put returns word with the field replaced by v (truncated to the field width).
func (f Field[T]) Put(word, v T) T { return word&^f.Bits() | f.Value(v) }

// Value positions v for the field, ready to OR into a word.
func (f Field[T]) Value(v T) T { return (v & f.Mask) << f.Shift }

// Bit is a one-bit field at position n.
func Bit[T constraints.Unsigned](n uint) Field[T] { return Field[T]{Mask: 1, Shift: n} }

// Write stores v into f of r with a read-modify-write.
func (r Reg32) Write(f Field[uint32], v uint32) { r.Modify(f.Bits(), f.Value(v)) }

// Read returns the current value of f in r.
func (r Reg32) Read(f Field[uint32]) uint32 { return f.Get(r.Load()) }

// RegField is a field located in a peripheral: register byte offset plus bits.
// A zero Mask means the family has no such field.
type RegField struct {
	Off uintptr
	Field[uint32]
}

func (f RegField) Present() bool { return f.Mask != 0 }

// Read returns the value of f in the window.
func (w Window) Read(f RegField) uint32 { return w.Reg(f.Off).Read(f.Field) }

// Write sets f to v with a read-modify-write of its register.
func (w Window) Write(f RegField, v uint32) { w.Reg(f.Off).Write(f.Field, v) }

// IsSet reports whether f is non-zero.
func (w Window) IsSet(f RegField) bool { return w.Read(f) != 0 }

// BitAt is the one-bit field n of the register at off.
func BitAt(off uintptr, n uint) RegField {
	return RegField{Off: off, Field: Field[uint32]{Mask: 1, Shift: n}}
}

// FieldAt is the field (mask, shift) of the register at off.
func FieldAt(off uintptr, mask uint32, shift uint) RegField {
	return RegField{Off: off, Field: Field[uint32]{Mask: mask, Shift: shift}}
}
