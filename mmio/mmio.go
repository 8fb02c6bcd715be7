// Package mmio provides typed access to memory-mapped peripheral registers.
//
// All raw pointer access lives in the Direct bus. Everything above it works
// on Reg32 values, so a driver can run unchanged against real hardware or a
// simulated address space (see mmio/sim).
//
// Nothing here locks. A read-modify-write is only correct if no other writer
// touches the register between the read and the write; callers own that.
package mmio

// Bus performs 32-bit register accesses at absolute addresses.
// Implementations must not cache, merge or reorder accesses.
type Bus interface {
	Load32(addr uintptr) uint32
	Store32(addr uintptr, v uint32)
}

// Direct is the memory-mapped bus of the running MCU.
var Direct Bus = direct{}

// Reg32 is one 32-bit register.
type Reg32 struct {
	bus  Bus
	addr uintptr
}

// NewReg32 binds addr on bus.
func NewReg32(bus Bus, addr uintptr) Reg32 { return Reg32{bus: bus, addr: addr} }

func (r Reg32) Addr() uintptr { return r.addr }

func (r Reg32) Load() uint32 { return r.bus.Load32(r.addr) }

func (r Reg32) Store(v uint32) { r.bus.Store32(r.addr, v) }

// Modify replaces the bits selected by mask with bits, keeping every other bit
// exactly as read. One load, one store.
func (r Reg32) Modify(mask, bits uint32) {
	v := r.bus.Load32(r.addr)
	r.bus.Store32(r.addr, v&^mask|bits&mask)
}

func (r Reg32) SetBits(bits uint32)   { r.Modify(bits, bits) }
func (r Reg32) ClearBits(bits uint32) { r.Modify(bits, 0) }

// HasBits reports whether all of bits are set.
func (r Reg32) HasBits(bits uint32) bool { return r.Load()&bits == bits }

// Window is a peripheral instance: a bus plus the instance base address.
type Window struct {
	bus  Bus
	base uintptr
}

func NewWindow(bus Bus, base uintptr) Window { return Window{bus: bus, base: base} }

func (w Window) Base() uintptr { return w.base }
func (w Window) Bus() Bus      { return w.bus }

// Reg returns the register at byte offset off from the base.
func (w Window) Reg(off uintptr) Reg32 { return Reg32{bus: w.bus, addr: w.base + off} }
